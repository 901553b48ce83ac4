package page

import (
	"path/filepath"
	"regexp"
	"strings"
)

// LinkMap maps page names to actual on-disk HTML filenames. It is built
// once per run from the root-level HTML files and used read-only during
// link normalization.
type LinkMap struct {
	// exact maps case-sensitive filename stems to filenames.
	exact map[string]string

	// lower maps lowercased stems to filenames, the fallback when the
	// exact case does not match.
	lower map[string]string
}

// BuildLinkMap constructs a LinkMap from HTML filenames. Arguments may
// carry directory components; only the base name is used.
func BuildLinkMap(filenames []string) LinkMap {
	m := LinkMap{
		exact: make(map[string]string),
		lower: make(map[string]string),
	}
	for _, name := range filenames {
		base := filepath.Base(name)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		m.exact[stem] = base
		m.lower[strings.ToLower(stem)] = base
	}
	return m
}

// Resolve returns the on-disk filename for a page name. Exact-case
// matches are preferred; lowercase matches are the fallback.
func (m LinkMap) Resolve(name string) (string, bool) {
	if file, ok := m.exact[name]; ok {
		return file, true
	}
	file, ok := m.lower[strings.ToLower(name)]
	return file, ok
}

// Len returns the number of pages in the map.
func (m LinkMap) Len() int {
	return len(m.lower)
}

// hrefRe matches double-quoted href attribute values.
var hrefRe = regexp.MustCompile(`href="([^"]*)"`)

// NormalizeLinks rewrites root-relative internal hyperlinks to the
// correct on-disk HTML filename.
//
// Only href values that, after stripping leading and trailing slashes,
// have no extension and no remaining slashes are candidates, such as
// bare page names like "/About" or "pricing/". Trailing query strings are
// preserved. Unmatched and already-qualified hrefs are left untouched.
func NormalizeLinks(text string, m LinkMap) string {
	if m.Len() == 0 {
		return text
	}

	return hrefRe.ReplaceAllStringFunc(text, func(match string) string {
		value := hrefRe.FindStringSubmatch(match)[1]

		pathPart := value
		query := ""
		if i := strings.IndexAny(value, "?#"); i >= 0 {
			pathPart, query = value[:i], value[i:]
		}

		if pathPart == "" || strings.Contains(pathPart, "://") ||
			strings.HasPrefix(pathPart, "mailto:") || strings.HasPrefix(pathPart, "tel:") {
			return match
		}

		trimmed := strings.Trim(pathPart, "/")
		if trimmed == "" || strings.Contains(trimmed, "/") || strings.Contains(trimmed, ".") {
			return match
		}

		file, ok := m.Resolve(trimmed)
		if !ok {
			return match
		}
		return `href="` + file + query + `"`
	})
}
