// Package asset implements media-type classification of remote URLs,
// deterministic local filename derivation, and the on-disk layout that
// routes each asset category to its directory.
//
// Naming is idempotent: a given URL always resolves to the same local
// path, so re-running the tool without clearing the asset directories
// is a no-op for already-fetched assets.
package asset
