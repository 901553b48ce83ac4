package extract

import (
	"regexp"
	"strings"
)

// cssURLRe matches url(...) function calls; quoted and unquoted forms.
var cssURLRe = regexp.MustCompile(`(?i)url\(\s*([^)]+?)\s*\)`)

// cssImportRe matches @import url(...) and bare @import "..." directives.
var cssImportRe = regexp.MustCompile(`(?i)@import\s+(?:url\(\s*)?["']?([^"')\s;]+)["']?\)?`)

// FromCSS extracts asset URLs from stylesheet text: url(...) function
// calls and @import directives, quoted or unquoted. data: URIs are
// always excluded; relative references resolve against the configured
// base URL.
func (e *Extractor) FromCSS(text string) []string {
	set := make(urlSet)
	for _, u := range cssURLValues(text) {
		e.add(set, u)
	}
	return set.sorted()
}

// cssURLValues returns the raw (unquoted, trimmed) values of every
// url(...) call and @import directive in the text, data: URIs excluded.
func cssURLValues(text string) []string {
	var out []string
	for _, m := range cssImportRe.FindAllStringSubmatch(text, -1) {
		if v := trimCSSValue(m[1]); v != "" {
			out = append(out, v)
		}
	}
	for _, m := range cssURLRe.FindAllStringSubmatch(text, -1) {
		if v := trimCSSValue(m[1]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// trimCSSValue strips quotes and whitespace from a url(...) argument and
// drops data: URIs.
func trimCSSValue(v string) string {
	v = strings.Trim(strings.TrimSpace(v), `'"`)
	if strings.HasPrefix(v, "data:") {
		return ""
	}
	return v
}
