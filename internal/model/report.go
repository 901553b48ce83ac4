package model

import (
	"time"
)

// FileReport records the outcome of processing one source file.
type FileReport struct {
	// Path is the source file path.
	Path string `json:"path"`

	// AssetsFound is the number of unique remote references discovered.
	AssetsFound int `json:"assetsFound"`

	// Downloaded is the number of assets newly written to disk (or that
	// would have been written, in a dry run).
	Downloaded int `json:"downloaded"`

	// Cached is the number of assets that already existed locally.
	Cached int `json:"cached"`

	// Failed is the number of assets whose fetch failed.
	Failed int `json:"failed"`

	// Missing lists local paths that were absent in local-only mode.
	Missing []string `json:"missing,omitempty"`

	// Changed reports whether the file text was modified.
	Changed bool `json:"changed"`

	// Messages are human-readable notes emitted while processing,
	// printed one per line after the file's outcome line.
	Messages []string `json:"messages,omitempty"`
}

// NewFileReport creates an empty FileReport for the given path.
func NewFileReport(path string) *FileReport {
	return &FileReport{
		Path:     path,
		Missing:  make([]string, 0),
		Messages: make([]string, 0),
	}
}

// AddMessage appends a processing note.
func (f *FileReport) AddMessage(msg string) {
	f.Messages = append(f.Messages, msg)
}

// RecordFetch updates the per-file counters for one fetch outcome.
func (f *FileReport) RecordFetch(status FetchStatus, localPath string) {
	switch status {
	case FetchDownloaded, FetchWouldDownload:
		f.Downloaded++
	case FetchCached:
		f.Cached++
	case FetchMissing:
		f.Missing = append(f.Missing, localPath)
	case FetchFailed:
		f.Failed++
	}
}

// RunReport aggregates the outcome of one mirroring run.
// It is the input to all report writers and the row saved to the
// run-history database.
type RunReport struct {
	// Root is the directory the run processed.
	Root string `json:"root"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// Duration is the total wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// DryRun reports whether the run was a preview without I/O.
	DryRun bool `json:"dryRun"`

	// Files holds one report per processed file, in processing order.
	Files []*FileReport `json:"files"`
}

// NewRunReport creates a RunReport for the given root directory with the
// start time set to now.
func NewRunReport(root string) *RunReport {
	return &RunReport{
		Root:      root,
		StartedAt: time.Now(),
		Files:     make([]*FileReport, 0),
	}
}

// AddFile appends a per-file report.
func (r *RunReport) AddFile(f *FileReport) {
	r.Files = append(r.Files, f)
}

// AnyChanged reports whether any processed file was modified.
func (r *RunReport) AnyChanged() bool {
	for _, f := range r.Files {
		if f.Changed {
			return true
		}
	}
	return false
}

// TotalAssets returns the total number of unique references discovered
// across all files.
func (r *RunReport) TotalAssets() int {
	var n int
	for _, f := range r.Files {
		n += f.AssetsFound
	}
	return n
}

// TotalDownloaded returns the total number of assets written (or, in a
// dry run, that would have been written).
func (r *RunReport) TotalDownloaded() int {
	var n int
	for _, f := range r.Files {
		n += f.Downloaded
	}
	return n
}

// TotalCached returns the total number of assets already present.
func (r *RunReport) TotalCached() int {
	var n int
	for _, f := range r.Files {
		n += f.Cached
	}
	return n
}

// TotalFailed returns the total number of failed fetches.
func (r *RunReport) TotalFailed() int {
	var n int
	for _, f := range r.Files {
		n += f.Failed
	}
	return n
}

// TotalMissing returns the total number of absent local files reported
// in local-only mode.
func (r *RunReport) TotalMissing() int {
	var n int
	for _, f := range r.Files {
		n += len(f.Missing)
	}
	return n
}
