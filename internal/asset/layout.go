package asset

import (
	"path"
	"strings"

	"github.com/ittijoseph/assetmirror/internal/model"
)

// Layout holds the asset-category directories assets are mirrored into.
// All directories are relative, forward-slash paths; rewritten documents
// reference assets below them.
//
// Design decision: the layout is an explicit value passed into the
// pipeline rather than package-level constants so that tests and
// multiple independent runs can use different targets.
type Layout struct {
	// ImagesDir receives images and audio/video media.
	ImagesDir string

	// CSSDir receives stylesheets.
	CSSDir string

	// JSDir receives plain scripts and JSON data.
	JSDir string

	// FramerJSDir receives ES modules and scripts served from Framer
	// hosts. Module basenames are preserved so import specifiers keep
	// resolving.
	FramerJSDir string

	// FontsDir receives web fonts.
	FontsDir string
}

// DefaultLayout returns the standard on-disk layout.
func DefaultLayout() Layout {
	return Layout{
		ImagesDir:   "assets/images",
		CSSDir:      "assets/css",
		JSDir:       "assets/js",
		FramerJSDir: "assets/js/framer",
		FontsDir:    "assets/fonts",
	}
}

// DirFor returns the directory an asset belongs in, based on its
// category and URL.
func (l Layout) DirFor(rawURL string, category model.Category) string {
	switch category {
	case model.CategoryImage, model.CategoryMedia:
		return l.ImagesDir
	case model.CategoryStylesheet:
		return l.CSSDir
	case model.CategoryFont:
		return l.FontsDir
	case model.CategoryScriptModule:
		return l.FramerJSDir
	case model.CategoryScript:
		// Framer runtime chunks live apart from ordinary site scripts.
		if strings.Contains(strings.ToLower(rawURL), "framer") {
			return l.FramerJSDir
		}
		return l.JSDir
	case model.CategoryJSON:
		// JSON data sits alongside the scripts that request it.
		return l.JSDir
	default:
		// Unknown assets land in the image bucket.
		return l.ImagesDir
	}
}

// LocalPath resolves the full relative local path for a URL: category
// directory plus deterministic filename. The result uses forward
// slashes and is stable across runs for the same URL.
func (l Layout) LocalPath(rawURL string, category model.Category) string {
	var preferExt string
	if ExtOf(rawURL) == "" {
		preferExt = FormatExt(rawURL)
	}
	return path.Join(l.DirFor(rawURL, category), LocalName(rawURL, preferExt))
}
