package model

import (
	"testing"
)

// TestNewDocument tests document construction.
func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc := NewDocument("index.html", KindHTML, "<html></html>")

	if doc.Path != "index.html" {
		t.Errorf("Path = %q, want %q", doc.Path, "index.html")
	}
	if doc.Kind != KindHTML {
		t.Errorf("Kind = %q, want %q", doc.Kind, KindHTML)
	}
	if doc.Mapping == nil {
		t.Error("Mapping is nil")
	}
	if doc.Report == nil {
		t.Fatal("Report is nil")
	}
	if doc.Report.Path != "index.html" {
		t.Errorf("Report.Path = %q, want %q", doc.Report.Path, "index.html")
	}
}

// TestFetchStatus_OK tests which outcomes allow rewriting.
func TestFetchStatus_OK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status FetchStatus
		want   bool
	}{
		{FetchCached, true},
		{FetchDownloaded, true},
		{FetchWouldDownload, true},
		{FetchMissing, true},
		{FetchFailed, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.status.String(), func(t *testing.T) {
			t.Parallel()

			if got := tt.status.OK(); got != tt.want {
				t.Errorf("%v.OK() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// TestFileReport_RecordFetch tests per-file counter updates.
func TestFileReport_RecordFetch(t *testing.T) {
	t.Parallel()

	f := NewFileReport("index.html")
	f.RecordFetch(FetchDownloaded, "assets/images/a.png")
	f.RecordFetch(FetchWouldDownload, "assets/images/b.png")
	f.RecordFetch(FetchCached, "assets/images/c.png")
	f.RecordFetch(FetchMissing, "assets/images/d.png")
	f.RecordFetch(FetchFailed, "assets/images/e.png")

	if f.Downloaded != 2 {
		t.Errorf("Downloaded = %d, want 2 (downloaded plus would-download)", f.Downloaded)
	}
	if f.Cached != 1 {
		t.Errorf("Cached = %d, want 1", f.Cached)
	}
	if f.Failed != 1 {
		t.Errorf("Failed = %d, want 1", f.Failed)
	}
	if len(f.Missing) != 1 || f.Missing[0] != "assets/images/d.png" {
		t.Errorf("Missing = %v", f.Missing)
	}
}

// TestRunReport_AnyChanged tests the changed flag aggregation.
func TestRunReport_AnyChanged(t *testing.T) {
	t.Parallel()

	r := NewRunReport(".")
	if r.AnyChanged() {
		t.Error("empty report AnyChanged = true")
	}

	unchanged := NewFileReport("a.html")
	r.AddFile(unchanged)
	if r.AnyChanged() {
		t.Error("AnyChanged = true with only unchanged files")
	}

	changed := NewFileReport("b.html")
	changed.Changed = true
	r.AddFile(changed)
	if !r.AnyChanged() {
		t.Error("AnyChanged = false with a changed file")
	}
}
