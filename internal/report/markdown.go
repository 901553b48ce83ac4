package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/ittijoseph/assetmirror/internal/model"
)

// MarkdownWriter outputs run reports in GitHub-flavored Markdown,
// suitable for commit descriptions and documentation.
//
// Design decision: we use the nao1215/markdown library for fluent,
// type-safe markdown generation instead of string concatenation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Asset Mirror Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", "`" + report.Root + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(time.Millisecond).String()},
			{"Mode", modeText(report)},
			{"Changed", strconv.FormatBool(report.AnyChanged())},
		},
	})
	md.PlainText("")

	md.H2("Totals")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Files processed", strconv.Itoa(len(report.Files))},
			{"Assets discovered", strconv.Itoa(report.TotalAssets())},
			{"Downloaded", strconv.Itoa(report.TotalDownloaded())},
			{"Already present", strconv.Itoa(report.TotalCached())},
			{"Failed", strconv.Itoa(report.TotalFailed())},
			{"Missing locally", strconv.Itoa(report.TotalMissing())},
		},
	})
	md.PlainText("")

	md.H2("Files")
	md.PlainText("")
	rows := make([][]string, 0, len(report.Files))
	for _, f := range report.Files {
		rows = append(rows, []string{
			"`" + f.Path + "`",
			strconv.Itoa(f.AssetsFound),
			strconv.Itoa(f.Downloaded),
			strconv.Itoa(f.Failed),
			strconv.FormatBool(f.Changed),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"File", "Assets", "Downloaded", "Failed", "Changed"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// modeText describes the run mode for the header table.
func modeText(report *model.RunReport) string {
	if report.DryRun {
		return "dry run"
	}
	return "mirror"
}
