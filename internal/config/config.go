package config

import (
	"net/url"
	"time"

	"github.com/adrg/xdg"

	"github.com/ittijoseph/assetmirror/internal/asset"
	"github.com/ittijoseph/assetmirror/internal/page"
)

// Default configuration values.
const (
	// DefaultTimeout bounds each asset download. Assets on commercial
	// CDNs respond fast; 30 seconds leaves headroom for large media
	// files on slow links without letting a dead host stall the run.
	DefaultTimeout = 30 * time.Second

	// DefaultEntryHTML is the entry page always included in a run even
	// when file enumeration would miss it.
	DefaultEntryHTML = "index.html"

	// DefaultStylesheetHref is the local stylesheet every page is
	// expected to reference.
	DefaultStylesheetHref = "assets/css/framer.css"

	// DefaultEventsScriptSrc is the local copy of the CDN events
	// script; events.framer.com/script URLs are mirrored to this path.
	DefaultEventsScriptSrc = "assets/js/framer/events-script-v2.js"

	// AppName is the application name used for XDG directory paths.
	AppName = "assetmirror"
)

// DefaultKnownHosts are the CDN hosts assets are expected on. Matching
// is by exact hostname or subdomain suffix, so cdn.framer.com and
// events.framer.com are covered by framer.com.
func DefaultKnownHosts() []string {
	return []string{
		"framerusercontent.com",
		"framerstatic.com",
		"framer.com",
	}
}

// Config holds all options for one mirroring run.
// It is populated from CLI flags and the optional YAML config file and
// passed through the application by dependency injection rather than
// global state.
type Config struct {
	// Root is the directory whose files are processed. Asset
	// directories are created below it and all rewritten references
	// are relative to it.
	Root string

	// Recursive enumerates candidate files in subdirectories too.
	Recursive bool

	// IncludeCSS also scans standalone *.css files.
	IncludeCSS bool

	// DryRun previews all actions without writing or downloading.
	DryRun bool

	// LocalOnly never downloads; references are rewritten only when the
	// local copy already exists, and missing copies become warnings.
	LocalOnly bool

	// KeepRemoteEvents leaves events.framer.com script references on
	// the CDN instead of mirroring them.
	KeepRemoteEvents bool

	// RewriteLinks normalizes root-relative internal hyperlinks to
	// on-disk HTML filenames.
	RewriteLinks bool

	// EntryHTML is the entry page path, always processed.
	EntryHTML string

	// OnlyKnownHosts restricts mirroring to the KnownHosts list.
	OnlyKnownHosts bool

	// KnownHosts is the CDN host allow-list used when OnlyKnownHosts is
	// set, and for events-script recognition.
	KnownHosts []string

	// Timeout bounds each individual download request.
	Timeout time.Duration

	// BaseURL, when set, is the remote base location relative asset
	// references are resolved against before mirroring.
	BaseURL string

	// UserAgent is sent with every download request.
	UserAgent string

	// Headers are custom HTTP headers included in download requests,
	// e.g. authentication for assets behind a CDN token. Values may be
	// sensitive and are masked in log output.
	Headers map[string]string

	// LazyAttrs are additional lazy-load data attributes scanned on
	// HTML elements. Empty means the extractor defaults.
	LazyAttrs []string

	// Layout routes asset categories to local directories.
	Layout asset.Layout

	// Tags are the expected local asset tags ensured in each HTML page.
	Tags page.TagTargets

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport switches the run summary to JSON.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport switches the run summary to Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile, when set, receives the run summary instead of stdout.
	ReportFile string

	// ConfigFilePath is an explicit config file path. Empty means
	// search the working directory and then the home directory.
	ConfigFilePath string

	// SaveHistory appends the run outcome to the run-history database.
	// Dry runs never save history.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	HistoryDir string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Root:       ".",
		EntryHTML:  DefaultEntryHTML,
		KnownHosts: DefaultKnownHosts(),
		Timeout:    DefaultTimeout,
		Layout:     asset.DefaultLayout(),
		Tags: page.TagTargets{
			Stylesheet:   DefaultStylesheetHref,
			EventsScript: DefaultEventsScriptSrc,
		},
		SaveHistory: true,
		HistoryDir:  XDGDataDir(),
	}
}

// Validate checks the configuration for inconsistencies.
// It returns a sentinel error describing the first problem found.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.DryRun && c.LocalOnly {
		return ErrConflictingModes
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidBaseURL
		}
	}
	return nil
}

// ParsedBaseURL returns the parsed base URL, or nil when none is set.
// Call Validate first; an invalid base URL yields nil here.
func (c *Config) ParsedBaseURL() *url.URL {
	if c.BaseURL == "" {
		return nil
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil
	}
	return u
}

// XDGDataDir returns the XDG data directory for the application.
func XDGDataDir() string {
	return xdg.DataHome + "/" + AppName
}
