package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ittijoseph/assetmirror/internal/model"
)

// DefaultUserAgent identifies the tool in HTTP requests. A descriptive
// client identifier lets CDN operators recognize mirroring traffic.
const DefaultUserAgent = "assetmirror/1.0 (+https://github.com/ittijoseph/assetmirror)"

// DefaultMaxBodySize limits downloaded asset size. 50MB accommodates
// video assets; a larger response fails the fetch rather than leaving
// a truncated copy on disk.
const DefaultMaxBodySize = 50 * 1024 * 1024

// Fetcher downloads remote assets to local destinations.
//
// Fetching is idempotent: an existing destination is treated as success
// without network access, so repeated runs never re-download. Dry-run
// mode reports intended actions without any I/O; local-only mode never
// touches the network and fails soft when a local copy is absent.
type Fetcher struct {
	// client performs the HTTP requests. Its timeout bounds each fetch.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// dryRun disables all I/O; intended actions are reported as success.
	dryRun bool

	// localOnly disables network access; absent files become warnings.
	localOnly bool

	// headers are custom request headers added to every download.
	headers map[string]string

	// maxBodySize caps the accepted response size; over-limit bodies
	// fail the fetch.
	maxBodySize int64

	// logger for per-URL outcomes.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithDryRun enables preview mode: no downloads, no writes.
func WithDryRun(dryRun bool) Option {
	return func(f *Fetcher) {
		f.dryRun = dryRun
	}
}

// WithLocalOnly disables network access. References whose local copy is
// absent are reported as missing and the run continues.
func WithLocalOnly(localOnly bool) Option {
	return func(f *Fetcher) {
		f.localOnly = localOnly
	}
}

// WithHeaders adds custom headers to every download request, e.g.
// authentication for assets behind a CDN token.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithMaxBodySize sets the maximum accepted response size.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher using the given HTTP client.
//
// Design decision: we require an external client rather than creating
// one internally because:
//  1. The timeout policy belongs to the caller's configuration
//  2. Tests can substitute an httptest client
//  3. Connection pooling is shared across all fetches in a run
func New(client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch ensures a local copy of the asset at dest, honoring the
// configured mode. The returned error is non-nil only for failed
// fetches; it is informational and the caller continues with the
// remaining assets either way.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dest string) (model.FetchStatus, error) {
	if _, err := os.Stat(dest); err == nil {
		f.logger.Debug("asset already present", "path", dest)
		return model.FetchCached, nil
	}

	if f.localOnly {
		f.logger.Warn("missing local file (provide it)", "path", dest, "url", rawURL)
		return model.FetchMissing, nil
	}

	if f.dryRun {
		f.logger.Info("would download", "url", rawURL, "path", dest)
		return model.FetchWouldDownload, nil
	}

	if err := f.download(ctx, rawURL, dest); err != nil {
		f.logger.Error("download failed", "url", rawURL, "error", err)
		return model.FetchFailed, err
	}

	f.logger.Info("downloaded", "url", rawURL, "path", dest)
	return model.FetchDownloaded, nil
}

// download performs the network fetch and persists the body.
// The body is written to a temporary file and renamed into place so a
// failed fetch never leaves a partial file on disk.
func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-only body

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".assetmirror-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Read one byte past the cap so an over-limit body is detected and
	// rejected instead of persisted truncated.
	n, err := io.Copy(tmp, io.LimitReader(resp.Body, f.maxBodySize+1))
	if err == nil && n > f.maxBodySize {
		err = fmt.Errorf("body exceeds %d byte limit", f.maxBodySize)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("failed to write body: %w", err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("failed to move into place: %w", err)
	}
	return nil
}
