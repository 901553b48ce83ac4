// Package pipeline orchestrates the per-file processing sequence:
// extract, fetch, rewrite, ensure tags, normalize links.
//
// Pure text stages are separated from the single I/O-performing fetch
// stage so each is independently testable without network access.
package pipeline
