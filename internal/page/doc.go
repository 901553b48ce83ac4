// Package page applies HTML-only post-processing: idempotent injection
// of required local asset tags, and normalization of root-relative
// internal hyperlinks to on-disk filenames.
package page
