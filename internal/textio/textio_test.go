package textio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

// TestReadText tests text decoding of source files.
func TestReadText(t *testing.T) {
	t.Parallel()

	t.Run("valid UTF-8 returned unchanged", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		content := "<html><body>héllo wörld</body></html>"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		got, err := ReadText(path)
		if err != nil {
			t.Fatalf("ReadText returned error: %v", err)
		}
		if got != content {
			t.Errorf("ReadText = %q, want %q", got, content)
		}
	})

	t.Run("latin-1 bytes decoded to valid UTF-8", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		// "café" with an ISO-8859-1 encoded é (0xE9), invalid as UTF-8.
		raw := []byte{'c', 'a', 'f', 0xE9}
		if err := os.WriteFile(path, raw, 0600); err != nil {
			t.Fatal(err)
		}

		got, err := ReadText(path)
		if err != nil {
			t.Fatalf("ReadText returned error: %v", err)
		}
		if !utf8.ValidString(got) {
			t.Errorf("ReadText produced invalid UTF-8: %q", got)
		}
		if !strings.HasPrefix(got, "caf") {
			t.Errorf("ReadText = %q, want caf prefix", got)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadText(filepath.Join(t.TempDir(), "missing.html")); err == nil {
			t.Error("expected error for missing file, got nil")
		}
	})
}

// TestWriteIfChanged tests the write-skip behavior.
func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	t.Run("unchanged text skips the write", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		if err := os.WriteFile(path, []byte("same"), 0600); err != nil {
			t.Fatal(err)
		}
		before, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}

		wrote, err := WriteIfChanged(path, "same", "same")
		if err != nil {
			t.Fatalf("WriteIfChanged returned error: %v", err)
		}
		if wrote {
			t.Error("expected no write for unchanged text")
		}

		after, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if !after.ModTime().Equal(before.ModTime()) {
			t.Error("file was touched despite unchanged text")
		}
	})

	t.Run("changed text is written", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
			t.Fatal(err)
		}

		wrote, err := WriteIfChanged(path, "old", "new")
		if err != nil {
			t.Fatalf("WriteIfChanged returned error: %v", err)
		}
		if !wrote {
			t.Error("expected a write for changed text")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "new" {
			t.Errorf("file content = %q, want %q", data, "new")
		}
	})

	t.Run("permission bits preserved", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		if err := os.WriteFile(path, []byte("old"), 0640); err != nil {
			t.Fatal(err)
		}

		if _, err := WriteIfChanged(path, "old", "new"); err != nil {
			t.Fatalf("WriteIfChanged returned error: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0640 {
			t.Errorf("permissions = %o, want 0640", perm)
		}
	})
}
