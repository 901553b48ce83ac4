package asset

import (
	"net/url"
	"path"
	"strings"

	"github.com/ittijoseph/assetmirror/internal/model"
)

// Extension allow-lists per category. Recognition by trailing extension
// is deliberately conservative: anything outside these lists is not an
// asset and is never mirrored.
var (
	imageExts = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
		".gif": true, ".svg": true, ".ico": true, ".avif": true,
		".bmp": true,
	}
	mediaExts = map[string]bool{
		".mp4": true, ".webm": true, ".ogg": true, ".mp3": true,
		".wav": true,
	}
	fontExts = map[string]bool{
		".woff2": true, ".woff": true, ".ttf": true, ".otf": true,
	}
	scriptExts = map[string]bool{
		".js": true, ".map": true,
	}
)

// ExtOf returns the lowercased extension (including the leading dot) of
// the URL's final path segment, ignoring any query string or fragment.
// It returns "" when the path has no extension or the URL is unparsable.
func ExtOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(path.Base(u.Path)))
}

// FormatExt returns an extension hint derived from a format=<ext> query
// parameter, for URLs whose path carries no extension. Image CDNs use
// this form for content-negotiated images (e.g. ?scale=2&format=webp).
// Returns "" when no usable hint is present.
func FormatExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	format := strings.ToLower(u.Query().Get("format"))
	if format == "" {
		return ""
	}
	ext := "." + strings.TrimPrefix(format, ".")
	if imageExts[ext] || mediaExts[ext] || fontExts[ext] {
		return ext
	}
	return ""
}

// Categorize infers the media-type category of a URL from its trailing
// extension, falling back to a format=<ext> query parameter when the
// path has no extension. The second return value is false when the URL
// does not look like a mirrorable asset.
func Categorize(rawURL string) (model.Category, bool) {
	ext := ExtOf(rawURL)
	if ext == "" {
		ext = FormatExt(rawURL)
	}
	return categoryForExt(ext)
}

// categoryForExt maps an extension to its category.
func categoryForExt(ext string) (model.Category, bool) {
	switch {
	case ext == "":
		return "", false
	case imageExts[ext]:
		return model.CategoryImage, true
	case mediaExts[ext]:
		return model.CategoryMedia, true
	case fontExts[ext]:
		return model.CategoryFont, true
	case ext == ".css":
		return model.CategoryStylesheet, true
	case ext == ".mjs":
		return model.CategoryScriptModule, true
	case scriptExts[ext]:
		return model.CategoryScript, true
	case ext == ".json":
		return model.CategoryJSON, true
	default:
		return "", false
	}
}

// IsAssetURL reports whether the URL is an absolute HTTP(S) URL with a
// recognizable asset category.
func IsAssetURL(rawURL string) bool {
	if !IsHTTPURL(rawURL) {
		return false
	}
	_, ok := Categorize(rawURL)
	return ok
}

// IsHTTPURL reports whether the string is an absolute http or https URL
// with a host.
func IsHTTPURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
