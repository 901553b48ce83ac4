package rewrite

import (
	"regexp"
	"sort"
	"strings"
)

// Apply replaces every exact occurrence of each mapped remote URL in the
// text with its local relative path.
//
// Longer keys are substituted first: when one mapped URL is a prefix of
// another, replacing the shorter one first would corrupt the longer
// occurrence. Pure function; a no-op when the mapping is empty or no
// occurrences exist.
func Apply(text string, mapping map[string]string) string {
	if len(mapping) == 0 {
		return text
	}

	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		text = strings.ReplaceAll(text, k, mapping[k])
	}
	return text
}

// cssURLRe matches url(...) calls for the CSS-aware rewrite.
var cssURLRe = regexp.MustCompile(`(?i)url\(\s*([^)]+?)\s*\)`)

// cssImportRe matches @import url(...) directives.
var cssImportRe = regexp.MustCompile(`(?i)@import\s+url\(\s*([^)]+?)\s*\)`)

// ApplyCSS rewrites url(...) and @import url(...) occurrences whose
// argument (after quote stripping) is a mapped remote URL. It catches
// quoted references that exact substring replacement alone would already
// handle, plus references whose surrounding quotes should be dropped
// together with the remote URL.
//
// Apply should be run as well for references outside url(...) syntax;
// the two passes are independent and idempotent.
func ApplyCSS(text string, mapping map[string]string) string {
	if len(mapping) == 0 {
		return text
	}

	text = cssImportRe.ReplaceAllStringFunc(text, func(m string) string {
		raw := trimValue(cssImportRe.FindStringSubmatch(m)[1])
		if local, ok := mapping[raw]; ok {
			return "@import url(" + local + ")"
		}
		return m
	})

	return cssURLRe.ReplaceAllStringFunc(text, func(m string) string {
		raw := trimValue(cssURLRe.FindStringSubmatch(m)[1])
		if local, ok := mapping[raw]; ok {
			return "url(" + local + ")"
		}
		return m
	})
}

// trimValue strips quotes and whitespace from a url(...) argument.
func trimValue(v string) string {
	return strings.Trim(strings.TrimSpace(v), `'"`)
}
