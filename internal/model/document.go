package model

// DocumentKind identifies the type of a source file being processed.
// The kind selects which extraction rules and rewrite passes apply.
type DocumentKind string

// Document kinds handled by the pipeline.
const (
	// KindHTML is an HTML page. HTML gets the full treatment: DOM
	// extraction, rewrite, tag ensuring, and link normalization.
	KindHTML DocumentKind = "html"

	// KindCSS is a standalone stylesheet scanned for url(...) references.
	KindCSS DocumentKind = "css"
)

// Document is the unit of work flowing through the pipeline.
// Each step reads and mutates the document in sequence; the text is only
// written back to disk by the driver after all steps have completed.
//
// Design decision: steps share one mutable document rather than passing
// values because:
//  1. It mirrors how the pipeline accumulates state step by step
//  2. The URL mapping built by the fetch step is consumed by the
//     rewrite step without extra plumbing
//  3. The driver can inspect everything that happened afterwards
type Document struct {
	// Path is the on-disk path of the source file.
	Path string

	// Kind is the document type.
	Kind DocumentKind

	// Text is the current document text. Steps replace it in place.
	Text string

	// Assets are the remote references discovered by the extract step.
	Assets []Asset

	// Mapping is the remote URL to local relative path mapping built by
	// the fetch step and consumed by the rewrite step. Keys are unique.
	Mapping map[string]string

	// Report accumulates the per-file outcome.
	Report *FileReport
}

// NewDocument creates a Document for the given path and kind with an
// empty mapping and a fresh report.
func NewDocument(path string, kind DocumentKind, text string) *Document {
	return &Document{
		Path:    path,
		Kind:    kind,
		Text:    text,
		Assets:  make([]Asset, 0),
		Mapping: make(map[string]string),
		Report:  NewFileReport(path),
	}
}
