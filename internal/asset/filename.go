package asset

import (
	"crypto/sha1" //nolint:gosec // Digest is for filename disambiguation, not security
	"encoding/hex"
	"net/url"
	"path"
	"strings"
)

// fallbackBase is used when a URL's path yields no usable base name
// (e.g. "https://cdn.example.com/").
const fallbackBase = "file"

// digestLen is the number of hex characters of the URL digest appended
// to disambiguate query-carrying URLs.
const digestLen = 6

// LocalName derives a deterministic local filename for a remote URL.
//
// The base name is the final path segment. When the path carries no
// extension and preferExt is non-empty, preferExt is appended. When the
// URL carries a query string, a short digest of the full URL is inserted
// between stem and extension so that two URLs sharing a path but
// differing by query produce distinct local files. URLs without a query
// string keep the bare stem+extension.
//
// Design decision: cache-busting query parameters are assumed irrelevant
// to content except for the disambiguation digest. Stripping the query
// entirely would silently merge distinct variants of the same path;
// encoding the whole query into the name would produce unstable,
// unreadable filenames.
func LocalName(rawURL, preferExt string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Unparsable URLs still get a stable name from the raw string.
		return fallbackBase + "." + shortDigest(rawURL)
	}

	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		base = fallbackBase
	}

	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" && preferExt != "" {
		ext = preferExt
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
	}

	if u.RawQuery != "" {
		return stem + "." + shortDigest(rawURL) + ext
	}
	return stem + ext
}

// shortDigest returns the first digestLen hex characters of the SHA-1
// digest of s. SHA-1 matches no security requirement here; it only has
// to be stable and collision-resistant per distinct URL.
func shortDigest(s string) string {
	sum := sha1.Sum([]byte(s)) //nolint:gosec // Not used for security
	return hex.EncodeToString(sum[:])[:digestLen]
}
