package extract

import (
	"regexp"
)

// textURLRe matches absolute HTTP(S) URLs ending in a known asset
// extension, with an optional query string. Used for script bodies and
// as a raw-text fallback pass over HTML, where no structure is
// available.
var textURLRe = regexp.MustCompile(
	`(?i)https?://[^\s"'()<>` + "`" + `]+?\.(?:png|jpe?g|webp|gif|svg|ico|avif|bmp|mp4|webm|ogg|mp3|wav|woff2?|ttf|otf|css|mjs|js|map|json)(?:\?[^\s"'()<>` + "`" + `]*)?`,
)

// FromText extracts asset URLs from raw text (typically a downloaded
// script body) by pattern matching alone. Only absolute URLs with a
// known asset extension are found; relative references cannot be
// recognized without structure.
func (e *Extractor) FromText(text string) []string {
	set := make(urlSet)
	for _, u := range e.scanText(text) {
		e.add(set, u)
	}
	return set.sorted()
}

// scanText returns every raw regex match in the text.
func (e *Extractor) scanText(text string) []string {
	return textURLRe.FindAllString(text, -1)
}
