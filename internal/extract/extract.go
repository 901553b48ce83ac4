package extract

import (
	"net/url"
	"sort"
	"strings"

	"github.com/ittijoseph/assetmirror/internal/asset"
)

// DefaultLazyAttrs are data attributes commonly used by lazy-loading
// libraries to stash the real asset URL. They are checked on every
// element during the DOM pass and can be extended via configuration.
var DefaultLazyAttrs = []string{
	"data-src",
	"data-srcset",
	"data-bg",
	"data-background",
	"data-background-image",
	"data-lazy",
	"data-lazy-src",
}

// Extractor discovers absolute asset URLs in HTML, CSS, and raw text.
//
// Extraction is pure: no I/O is performed, results are deterministic for
// a given input, and duplicates are never returned. Insertion order is
// irrelevant; results are sorted for stable output.
type Extractor struct {
	// baseURL, when set, is used to resolve relative references found
	// during the DOM pass. Without it, relative references are skipped.
	baseURL *url.URL

	// allowedHosts, when non-empty, restricts extraction to URLs whose
	// hostname contains one of these suffixes.
	allowedHosts []string

	// lazyAttrs are the data attributes checked on every element.
	lazyAttrs []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBaseURL sets the document base location used to resolve relative
// references before they are considered for mirroring.
func WithBaseURL(base *url.URL) Option {
	return func(e *Extractor) {
		e.baseURL = base
	}
}

// WithAllowedHosts restricts extraction to URLs whose hostname matches
// one of the given host suffixes. An empty list allows every host.
func WithAllowedHosts(hosts []string) Option {
	return func(e *Extractor) {
		e.allowedHosts = hosts
	}
}

// WithLazyAttrs replaces the default list of lazy-load data attributes
// inspected during the DOM pass.
func WithLazyAttrs(attrs []string) Option {
	return func(e *Extractor) {
		e.lazyAttrs = attrs
	}
}

// New creates an Extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		lazyAttrs: DefaultLazyAttrs,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// urlSet collects candidate URLs with set semantics.
type urlSet map[string]bool

// add normalizes, resolves, and filters a raw candidate before keeping
// it. Only absolute HTTP(S) URLs with a recognizable asset category and
// an allowed host survive.
func (e *Extractor) add(set urlSet, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return
	}

	if !asset.IsHTTPURL(raw) {
		// Relative reference: resolve against the document base, when
		// one is configured. Join resolution, not fetch-time redirects.
		if e.baseURL == nil {
			return
		}
		ref, err := url.Parse(raw)
		if err != nil {
			return
		}
		raw = e.baseURL.ResolveReference(ref).String()
		if !asset.IsHTTPURL(raw) {
			return
		}
	}

	if !asset.IsAssetURL(raw) {
		return
	}
	if !e.hostAllowed(raw) {
		return
	}
	set[raw] = true
}

// hostAllowed reports whether the URL's hostname matches the allow list.
func (e *Extractor) hostAllowed(rawURL string) bool {
	if len(e.allowedHosts) == 0 {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, allowed := range e.allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// sorted returns the set contents as a sorted slice.
func (s urlSet) sorted() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// splitSrcset splits a srcset-style attribute value into its URLs,
// stripping the whitespace-delimited width/density descriptors.
func splitSrcset(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		fields := strings.Fields(part)
		if len(fields) > 0 {
			out = append(out, fields[0])
		}
	}
	return out
}
