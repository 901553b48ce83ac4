package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"

	"github.com/ittijoseph/assetmirror/internal/asset"
	"github.com/ittijoseph/assetmirror/internal/extract"
	"github.com/ittijoseph/assetmirror/internal/fetch"
	"github.com/ittijoseph/assetmirror/internal/model"
	"github.com/ittijoseph/assetmirror/internal/page"
	"github.com/ittijoseph/assetmirror/internal/rewrite"
	"github.com/ittijoseph/assetmirror/internal/textio"
)

// eventsScriptRe matches the CDN events script, which carries no file
// extension and is therefore invisible to extension-based extraction.
var eventsScriptRe = regexp.MustCompile(`(?i)https?://events\.framer\.com/script[^\s"'<>]*`)

// ExtractStep discovers remote asset references in the document text.
// It is pure: the document text is read, never modified.
type ExtractStep struct {
	// extractor applies the pattern rules for the document kind.
	extractor *extract.Extractor

	// eventsLocalPath, when non-empty, enables extraction of the CDN
	// events script and pins its local destination.
	eventsLocalPath string
}

// ExtractStepOption configures an ExtractStep.
type ExtractStepOption func(*ExtractStep)

// WithEventsScript enables mirroring of the extensionless CDN events
// script to the given fixed local path.
func WithEventsScript(localPath string) ExtractStepOption {
	return func(s *ExtractStep) {
		s.eventsLocalPath = localPath
	}
}

// NewExtractStep creates the extraction step.
func NewExtractStep(extractor *extract.Extractor, opts ...ExtractStepOption) *ExtractStep {
	s := &ExtractStep{extractor: extractor}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do extracts asset URLs and records them on the document.
func (s *ExtractStep) Do(_ context.Context, doc *model.Document) error {
	var urls []string
	var err error

	switch doc.Kind {
	case model.KindCSS:
		urls = s.extractor.FromCSS(doc.Text)
	default:
		urls, err = s.extractor.FromHTML(doc.Text)
		if err != nil {
			return err
		}
	}

	for _, u := range urls {
		category, ok := asset.Categorize(u)
		if !ok {
			continue
		}
		doc.Assets = append(doc.Assets, model.Asset{URL: u, Category: category})
	}

	// The events script has no extension, so the extension-driven
	// passes above never see it.
	if s.eventsLocalPath != "" {
		seen := make(map[string]bool, len(doc.Assets))
		for _, a := range doc.Assets {
			seen[a.URL] = true
		}
		for _, u := range eventsScriptRe.FindAllString(doc.Text, -1) {
			if seen[u] {
				continue
			}
			seen[u] = true
			doc.Assets = append(doc.Assets, model.Asset{
				URL:       u,
				Category:  model.CategoryScript,
				LocalPath: s.eventsLocalPath,
			})
		}
	}

	doc.Report.AssetsFound = len(doc.Assets)
	return nil
}

// FetchStep mirrors each discovered asset to its local path and builds
// the URL-to-local mapping. It is the only step performing I/O.
//
// Downloaded stylesheets and scripts get one nested discovery wave: the
// downloaded body is scanned for further asset references, those are
// fetched, and the body is rewritten to the local copies.
type FetchStep struct {
	// fetcher performs the downloads.
	fetcher *fetch.Fetcher

	// layout resolves local paths for discovered URLs.
	layout asset.Layout

	// extractor scans downloaded bodies during the nested wave.
	extractor *extract.Extractor

	// root is the directory local relative paths are anchored at.
	root string

	// dryRun suppresses the nested rewrite of downloaded bodies.
	dryRun bool

	// logger for structured logging.
	logger *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithFetchDryRun marks the run as a preview; downloaded-body rewriting
// is skipped because nothing was downloaded.
func WithFetchDryRun(dryRun bool) FetchStepOption {
	return func(s *FetchStep) {
		s.dryRun = dryRun
	}
}

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates the fetch step. Local paths resolve against root
// using the given layout; the extractor drives nested discovery in
// downloaded stylesheet and script bodies.
func NewFetchStep(fetcher *fetch.Fetcher, layout asset.Layout, extractor *extract.Extractor, root string, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		fetcher:   fetcher,
		layout:    layout,
		extractor: extractor,
		root:      root,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches every discovered asset and populates the document mapping.
// Per-asset failures are recorded and do not fail the step.
func (s *FetchStep) Do(ctx context.Context, doc *model.Document) error {
	for i := range doc.Assets {
		a := &doc.Assets[i]
		if a.LocalPath == "" {
			a.LocalPath = s.layout.LocalPath(a.URL, a.Category)
		}

		status, _ := s.fetcher.Fetch(ctx, a.URL, s.destFor(a.LocalPath))
		doc.Report.RecordFetch(status, a.LocalPath)
		if status.OK() {
			a.Fetched = true
			doc.Mapping[a.URL] = a.LocalPath
		}
	}

	// One nested wave over downloaded stylesheet and script bodies.
	for i := range doc.Assets {
		a := doc.Assets[i]
		if !a.Fetched {
			continue
		}
		switch a.Category {
		case model.CategoryStylesheet, model.CategoryScript, model.CategoryScriptModule:
			s.processNested(ctx, doc, a)
		}
	}

	return nil
}

// destFor converts a forward-slash relative path to the on-disk
// destination under the root.
func (s *FetchStep) destFor(localRel string) string {
	return filepath.Join(s.root, filepath.FromSlash(localRel))
}

// processNested scans one downloaded body for further asset references,
// fetches them, and rewrites the body to the local copies. In dry-run
// mode there is no body to scan, so the wave is skipped.
func (s *FetchStep) processNested(ctx context.Context, doc *model.Document, parent model.Asset) {
	if s.dryRun {
		return
	}

	dest := s.destFor(parent.LocalPath)
	body, err := textio.ReadText(dest)
	if err != nil {
		// Local-only mode marks assets fetched without a body on disk.
		s.logger.Debug("no local body to scan", "path", dest, "error", err)
		return
	}

	var nested []string
	isCSS := parent.Category == model.CategoryStylesheet
	if isCSS {
		nested = s.extractor.FromCSS(body)
	} else {
		nested = s.extractor.FromText(body)
	}

	for _, u := range nested {
		if _, done := doc.Mapping[u]; done {
			continue
		}
		category, ok := asset.Categorize(u)
		if !ok {
			continue
		}
		localRel := s.layout.LocalPath(u, category)

		status, _ := s.fetcher.Fetch(ctx, u, s.destFor(localRel))
		doc.Report.RecordFetch(status, localRel)
		if status.OK() {
			doc.Mapping[u] = localRel
		}
	}

	updated := rewrite.Apply(body, doc.Mapping)
	if isCSS {
		updated = rewrite.ApplyCSS(updated, doc.Mapping)
	}
	if _, err := textio.WriteIfChanged(dest, body, updated); err != nil {
		s.logger.Error("failed to rewrite downloaded asset", "path", dest, "error", err)
	}
}

// RewriteStep replaces every mapped remote URL in the document text with
// its local relative path. Pure text transformation.
type RewriteStep struct{}

// NewRewriteStep creates the rewrite step.
func NewRewriteStep() *RewriteStep {
	return &RewriteStep{}
}

// Name returns the step name.
func (s *RewriteStep) Name() string {
	return "rewrite"
}

// Do applies the substitution passes for the document kind. HTML also
// gets the CSS-aware pass for embedded <style> blocks and inline
// styles.
func (s *RewriteStep) Do(_ context.Context, doc *model.Document) error {
	doc.Text = rewrite.Apply(doc.Text, doc.Mapping)
	doc.Text = rewrite.ApplyCSS(doc.Text, doc.Mapping)
	return nil
}

// EnsureTagsStep injects required local asset tags into HTML documents
// when absent. Non-HTML documents pass through untouched.
type EnsureTagsStep struct {
	// targets are the expected local references.
	targets page.TagTargets
}

// NewEnsureTagsStep creates the tag-ensuring step.
func NewEnsureTagsStep(targets page.TagTargets) *EnsureTagsStep {
	return &EnsureTagsStep{targets: targets}
}

// Name returns the step name.
func (s *EnsureTagsStep) Name() string {
	return "ensure_tags"
}

// Do injects missing tags and records a note per injection.
func (s *EnsureTagsStep) Do(_ context.Context, doc *model.Document) error {
	if doc.Kind != model.KindHTML {
		return nil
	}
	text, notes := page.EnsureTags(doc.Text, s.targets)
	doc.Text = text
	for _, note := range notes {
		doc.Report.AddMessage(note)
	}
	return nil
}

// NormalizeLinksStep rewrites root-relative internal hyperlinks to the
// on-disk HTML filenames. Non-HTML documents pass through untouched.
type NormalizeLinksStep struct {
	// linkMap maps page names to filenames, built once per run.
	linkMap page.LinkMap
}

// NewNormalizeLinksStep creates the link-normalizing step.
func NewNormalizeLinksStep(linkMap page.LinkMap) *NormalizeLinksStep {
	return &NormalizeLinksStep{linkMap: linkMap}
}

// Name returns the step name.
func (s *NormalizeLinksStep) Name() string {
	return "normalize_links"
}

// Do rewrites candidate hrefs against the link map.
func (s *NormalizeLinksStep) Do(_ context.Context, doc *model.Document) error {
	if doc.Kind != model.KindHTML {
		return nil
	}
	doc.Text = page.NormalizeLinks(doc.Text, s.linkMap)
	return nil
}
