package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ittijoseph/assetmirror/internal/model"
)

// SimpleWriter outputs human-readable text summaries: one outcome line
// per file, the file's notes indented below it, and a closing totals
// section with the any-changed flag.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	for _, f := range report.Files {
		sb.WriteString(fileLine(f, report.DryRun))
		sb.WriteString("\n")
		for _, msg := range f.Messages {
			sb.WriteString("  " + msg + "\n")
		}
		for _, missing := range f.Missing {
			sb.WriteString("  missing local file (provide it): " + missing + "\n")
		}
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Files processed: %d  assets: %d  downloaded: %d  cached: %d  failed: %d\n",
		len(report.Files), report.TotalAssets(), report.TotalDownloaded(),
		report.TotalCached(), report.TotalFailed())

	switch {
	case report.DryRun:
		sb.WriteString("Dry run complete. No files were written.\n")
	case report.AnyChanged():
		sb.WriteString("Done. Files were updated.\n")
	default:
		sb.WriteString("Done. Nothing to update.\n")
	}

	return io.WriteString(w.output, sb.String())
}

// fileLine renders the per-file outcome line.
func fileLine(f *model.FileReport, dryRun bool) string {
	switch {
	case dryRun && f.Changed:
		return fmt.Sprintf("would update -> %s (%d assets)", f.Path, f.AssetsFound)
	case f.Changed:
		return fmt.Sprintf("updated -> %s (%d assets)", f.Path, f.AssetsFound)
	default:
		return "no changes -> " + f.Path
	}
}
