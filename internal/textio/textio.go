package textio

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// ReadText reads a source file as UTF-8 text.
//
// Files that are already valid UTF-8 are returned unchanged. Otherwise
// the encoding is sniffed from the content (meta tags, BOM, byte
// heuristics) and the bytes are decoded through the detected charset.
// When even that fails, invalid sequences are dropped in a lossy
// best-effort pass rather than aborting: a mis-decoded byte in a page is
// recoverable, an aborted run is not.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Processing user-selected site files is the point
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	enc, _, _ := charset.DetermineEncoding(data, "")
	decoded, err := io.ReadAll(transform.NewReader(strings.NewReader(string(data)), enc.NewDecoder()))
	if err == nil && utf8.Valid(decoded) {
		return string(decoded), nil
	}

	// Last resort: drop invalid sequences.
	return strings.ToValidUTF8(string(data), ""), nil
}

// WriteIfChanged writes updated text to path only when it differs from
// the original, preserving the file's permission bits. It returns
// whether a write happened. Skipping unchanged files avoids spurious
// modification timestamps.
func WriteIfChanged(path, original, updated string) (bool, error) {
	if updated == original {
		return false, nil
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, []byte(updated), mode); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
