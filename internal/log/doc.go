// Package log provides logging with automatic sanitization of
// sensitive information, built on top of the standard slog package.
//
// The configuration file can attach custom request headers to asset
// downloads; Authorization and Cookie values must never appear in log
// output, even in verbose mode. The SecureHandler masks such values by
// key name and by value pattern (JWTs, bearer tokens, basic auth).
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
