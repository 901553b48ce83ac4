// Package report renders run summaries in human-readable text, JSON,
// and Markdown formats behind a common Writer interface.
package report
