// Package fetch downloads remote assets to deterministic local paths.
// It is the only pipeline stage that performs network I/O, and supports
// dry-run and local-only modes in which it performs none.
package fetch
