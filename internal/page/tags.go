package page

import (
	"regexp"
	"strings"
)

// TagTargets holds the expected local asset references every HTML page
// must carry. Empty fields disable the corresponding injection.
//
// Design decision: these are configuration values passed in rather than
// process-wide constants so independent runs and tests can target
// different assets.
type TagTargets struct {
	// Stylesheet is the local stylesheet href; a <link> referencing it
	// is injected before </head> when absent.
	Stylesheet string

	// EventsScript is the local events-script src; an async <script>
	// referencing it is injected before </body> when absent.
	EventsScript string

	// ModuleScript is the local versioned module-script src; a
	// type="module" <script> referencing it is injected before </body>
	// when absent.
	ModuleScript string
}

var (
	headCloseRe = regexp.MustCompile(`(?i)</head>`)
	bodyCloseRe = regexp.MustCompile(`(?i)</body>`)
)

// EnsureTags verifies the required local stylesheet and script tags are
// present in the HTML text and inserts them when missing. Presence is
// checked by the expected href/src substring only; an existing tag's
// correctness is not validated. The operation is idempotent.
//
// It returns the updated text and a note per injected tag.
func EnsureTags(text string, targets TagTargets) (string, []string) {
	var notes []string

	if targets.Stylesheet != "" && !strings.Contains(text, targets.Stylesheet) {
		tag := `<link rel="stylesheet" href="` + targets.Stylesheet + `">`
		if updated, ok := insertBefore(text, headCloseRe, tag); ok {
			text = updated
			notes = append(notes, "injected stylesheet link: "+targets.Stylesheet)
		}
	}

	if targets.EventsScript != "" && !strings.Contains(text, targets.EventsScript) {
		tag := `<script async src="` + targets.EventsScript + `"></script>`
		if updated, ok := insertBefore(text, bodyCloseRe, tag); ok {
			text = updated
			notes = append(notes, "injected events script: "+targets.EventsScript)
		}
	}

	if targets.ModuleScript != "" && !strings.Contains(text, targets.ModuleScript) {
		tag := `<script type="module" src="` + targets.ModuleScript + `"></script>`
		if updated, ok := insertBefore(text, bodyCloseRe, tag); ok {
			text = updated
			notes = append(notes, "injected module script: "+targets.ModuleScript)
		}
	}

	return text, notes
}

// insertBefore inserts the tag plus a newline immediately before the
// first match of closeRe. Documents without the closing tag are left
// untouched.
func insertBefore(text string, closeRe *regexp.Regexp, tag string) (string, bool) {
	loc := closeRe.FindStringIndex(text)
	if loc == nil {
		return text, false
	}
	return text[:loc[0]] + tag + "\n" + text[loc[0]:], true
}
