package model

// Category classifies an asset by the kind of file it refers to.
// The category decides which local directory the asset is mirrored into
// and which extraction rules apply to its downloaded body.
type Category string

// Asset categories recognized by the extractor.
const (
	// CategoryImage covers raster and vector image formats.
	CategoryImage Category = "image"

	// CategoryStylesheet covers CSS files. Downloaded stylesheets are
	// scanned again for nested url(...) references.
	CategoryStylesheet Category = "stylesheet"

	// CategoryScript covers plain JavaScript files and source maps.
	CategoryScript Category = "script"

	// CategoryScriptModule covers ES module files (.mjs). These are kept
	// under a dedicated directory because module import specifiers must
	// keep their exact basenames.
	CategoryScriptModule Category = "script-module"

	// CategoryFont covers web font formats.
	CategoryFont Category = "font"

	// CategoryMedia covers audio and video files.
	CategoryMedia Category = "media"

	// CategoryJSON covers JSON data files referenced by scripts.
	CategoryJSON Category = "json"
)

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// Asset is a single remote asset reference discovered in a document.
// Assets live only for the duration of one file's processing pass;
// they are never persisted except as rows in the run-history database.
type Asset struct {
	// URL is the absolute remote URL as it appears in the source text.
	URL string

	// Category is the inferred media-type category.
	Category Category

	// LocalPath is the forward-slash relative path the asset is mirrored
	// to. Empty until the filename resolver has run.
	LocalPath string

	// Fetched reports whether the local copy exists after the fetch
	// stage (newly downloaded, already present, or assumed in dry-run).
	Fetched bool
}

// FetchStatus describes the outcome of fetching a single asset.
type FetchStatus int

// Fetch outcomes, in rough order of desirability.
const (
	// FetchCached means the destination already existed; no network
	// access was performed.
	FetchCached FetchStatus = iota

	// FetchDownloaded means the asset was downloaded and written.
	FetchDownloaded

	// FetchWouldDownload means dry-run mode reported the intended
	// download without performing any I/O.
	FetchWouldDownload

	// FetchMissing means local-only mode found no local copy.
	FetchMissing

	// FetchFailed means the network fetch failed (transport error or
	// non-success HTTP status).
	FetchFailed
)

// String returns a short name for the fetch status.
func (s FetchStatus) String() string {
	switch s {
	case FetchCached:
		return "cached"
	case FetchDownloaded:
		return "downloaded"
	case FetchWouldDownload:
		return "would-download"
	case FetchMissing:
		return "missing"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OK reports whether the outcome allows the reference to be rewritten.
// Cached, downloaded and dry-run outcomes have (or will have) a local
// copy. A copy that is absent in local-only mode is rewritten anyway:
// the run warns and lists the path, and the page works as soon as the
// user provides the file. Only a failed fetch keeps the remote URL.
func (s FetchStatus) OK() bool {
	switch s {
	case FetchCached, FetchDownloaded, FetchWouldDownload, FetchMissing:
		return true
	default:
		return false
	}
}
