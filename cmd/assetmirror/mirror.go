package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/ittijoseph/assetmirror/internal/config"
	"github.com/ittijoseph/assetmirror/internal/database"
	"github.com/ittijoseph/assetmirror/internal/extract"
	"github.com/ittijoseph/assetmirror/internal/fetch"
	"github.com/ittijoseph/assetmirror/internal/log"
	"github.com/ittijoseph/assetmirror/internal/model"
	"github.com/ittijoseph/assetmirror/internal/page"
	"github.com/ittijoseph/assetmirror/internal/pipeline"
	"github.com/ittijoseph/assetmirror/internal/report"
	"github.com/ittijoseph/assetmirror/internal/textio"
)

// NewMirrorCmd creates the mirror command.
func NewMirrorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror [dir]",
		Short: "Download remote assets and rewrite references to local copies",
		Long: `Mirror scans the site's HTML files (and optionally standalone CSS files)
for remotely-hosted assets, downloads each asset once to a deterministic
path under assets/, and rewrites every reference to the local copy.

HTML files additionally get required local stylesheet/script tags
injected when missing, and (with --rewrite-links) root-relative internal
links normalized to on-disk filenames.

Examples:
  # Preview what would happen, no downloads or writes
  assetmirror mirror --dry-run

  # Mirror the current directory, subdirectories included
  assetmirror mirror --recursive

  # Also scan standalone stylesheets
  assetmirror mirror --recursive --include-css

  # Rewrite only; warn about assets that are not yet present locally
  assetmirror mirror --local-only

  # Restrict mirroring to the known CDN hosts
  assetmirror mirror --only-known-hosts

Configuration file (.assetmirror) example:
  knownHosts:
    - framerusercontent.com
    - framer.com
  tags:
    stylesheet: assets/css/framer.css
    moduleScript: assets/js/framer/script_main.V4XNGQF1.mjs
  headers:
    Authorization: "Bearer token"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMirrorCmd,
	}

	// File enumeration flags
	cmd.Flags().BoolP("recursive", "r", false,
		"Process files in subdirectories too")
	cmd.Flags().Bool("include-css", false,
		"Also scan standalone *.css files for asset references")
	cmd.Flags().String("html", config.DefaultEntryHTML,
		"Entry HTML file, always processed")

	// Mode flags
	cmd.Flags().BoolP("dry-run", "n", false,
		"Preview actions; don't write or download anything")
	cmd.Flags().Bool("local-only", false,
		"Never download; rewrite only when the local copy already exists")
	cmd.Flags().Bool("keep-remote-events", false,
		"Keep the events.framer.com script on the CDN")
	cmd.Flags().BoolP("rewrite-links", "l", false,
		"Normalize root-relative internal links to on-disk HTML filenames")
	cmd.Flags().Bool("only-known-hosts", false,
		"Mirror assets from the known CDN hosts only")

	// Network flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each download request")
	cmd.Flags().String("base", "",
		"Remote base URL for resolving relative asset references")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .assetmirror in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-history", false,
		"Skip recording the run in the history database")

	return cmd
}

// runMirrorCmd executes the mirror command.
func runMirrorCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with sensitive-value masking
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runMirror(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the
// optional configuration file. Precedence: flag > file > default.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	if len(args) == 1 {
		cfg.Root = args[0]
	}

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load file overrides first so explicit flags win below.
	// An explicitly specified config file must exist; the default
	// search failing silently yields plain defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		fileCfg, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		fileCfg.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Recursive, err = cmd.Flags().GetBool("recursive")
	if err != nil {
		return nil, err
	}

	cfg.IncludeCSS, err = cmd.Flags().GetBool("include-css")
	if err != nil {
		return nil, err
	}

	cfg.EntryHTML, err = cmd.Flags().GetString("html")
	if err != nil {
		return nil, err
	}

	cfg.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, err
	}

	cfg.LocalOnly, err = cmd.Flags().GetBool("local-only")
	if err != nil {
		return nil, err
	}

	cfg.KeepRemoteEvents, err = cmd.Flags().GetBool("keep-remote-events")
	if err != nil {
		return nil, err
	}

	cfg.RewriteLinks, err = cmd.Flags().GetBool("rewrite-links")
	if err != nil {
		return nil, err
	}

	cfg.OnlyKnownHosts, err = cmd.Flags().GetBool("only-known-hosts")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	base, err := cmd.Flags().GetString("base")
	if err != nil {
		return nil, err
	}
	if base != "" {
		cfg.BaseURL = base
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runMirror executes the mirroring run.
func runMirror(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	files, err := enumerateFiles(cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No files found to process.")
		return nil
	}

	logger.Info("starting run",
		"root", cfg.Root,
		"files", len(files),
		"dryRun", cfg.DryRun,
		"localOnly", cfg.LocalOnly,
	)

	runReport := model.NewRunReport(cfg.Root)
	runReport.DryRun = cfg.DryRun

	p := newRunPipeline(cfg, files, logger)

	for _, file := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fileReport, err := processFile(ctx, cfg, p, file)
		if err != nil {
			// Unreadable files are reported and skipped; siblings
			// still get processed.
			logger.Error("failed to process file", "file", file, "error", err)
			fileReport = model.NewFileReport(file)
			fileReport.AddMessage("error: " + err.Error())
		}
		runReport.AddFile(fileReport)
	}

	runReport.Duration = time.Since(runReport.StartedAt)

	if err := outputReport(cfg, runReport); err != nil {
		logger.Error("report failed", "error", err)
	}

	if err := saveRunReport(ctx, cfg, runReport, logger); err != nil {
		logger.Error("failed to save run history", "error", err)
	}

	// Individual fetch failures are reported, never fatal.
	return nil
}

// newRunPipeline builds the per-file step pipeline for this run.
// The same pipeline instance processes every file; steps carry only
// run-level configuration.
func newRunPipeline(cfg *config.Config, files []string, logger *slog.Logger) *pipeline.Pipeline {
	extractOpts := []extract.Option{}
	if base := cfg.ParsedBaseURL(); base != nil {
		extractOpts = append(extractOpts, extract.WithBaseURL(base))
	}
	if cfg.OnlyKnownHosts {
		extractOpts = append(extractOpts, extract.WithAllowedHosts(cfg.KnownHosts))
	}
	if len(cfg.LazyAttrs) > 0 {
		extractOpts = append(extractOpts, extract.WithLazyAttrs(cfg.LazyAttrs))
	}
	extractor := extract.New(extractOpts...)

	fetchOpts := []fetch.Option{
		fetch.WithDryRun(cfg.DryRun),
		fetch.WithLocalOnly(cfg.LocalOnly),
		fetch.WithLogger(logger),
	}
	if cfg.UserAgent != "" {
		fetchOpts = append(fetchOpts, fetch.WithUserAgent(cfg.UserAgent))
	}
	if len(cfg.Headers) > 0 {
		fetchOpts = append(fetchOpts, fetch.WithHeaders(cfg.Headers))
	}
	client := &http.Client{Timeout: cfg.Timeout}
	fetcher := fetch.New(client, fetchOpts...)

	// Keeping the events script remote disables both its mirroring and
	// the injection of the local tag it would have produced.
	tags := cfg.Tags
	extractStepOpts := []pipeline.ExtractStepOption{}
	if cfg.KeepRemoteEvents {
		tags.EventsScript = ""
	} else {
		extractStepOpts = append(extractStepOpts, pipeline.WithEventsScript(cfg.Tags.EventsScript))
	}

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		pipeline.NewExtractStep(extractor, extractStepOpts...),
		pipeline.NewFetchStep(fetcher, cfg.Layout, extractor, cfg.Root,
			pipeline.WithFetchDryRun(cfg.DryRun),
			pipeline.WithFetchLogger(logger),
		),
		pipeline.NewRewriteStep(),
		pipeline.NewEnsureTagsStep(tags),
	)
	if cfg.RewriteLinks {
		p.AddStep(pipeline.NewNormalizeLinksStep(buildLinkMap(files)))
	}

	return p
}

// buildLinkMap collects the root-level HTML filenames for link
// normalization. Files in subdirectories are not link targets.
func buildLinkMap(files []string) page.LinkMap {
	var rootHTML []string
	for _, f := range files {
		if !strings.Contains(f, "/") && strings.EqualFold(filepath.Ext(f), ".html") {
			rootHTML = append(rootHTML, f)
		}
	}
	return page.BuildLinkMap(rootHTML)
}

// processFile runs the pipeline over one source file and writes the
// result back when it changed (never in dry-run mode).
func processFile(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, file string) (*model.FileReport, error) {
	fullPath := filepath.Join(cfg.Root, filepath.FromSlash(file))

	text, err := textio.ReadText(fullPath)
	if err != nil {
		return nil, err
	}

	kind := model.KindHTML
	if strings.EqualFold(filepath.Ext(file), ".css") {
		kind = model.KindCSS
	}

	doc := model.NewDocument(file, kind, text)
	if err := p.Execute(ctx, doc); err != nil {
		return doc.Report, nil
	}

	if cfg.DryRun {
		doc.Report.Changed = doc.Text != text
		return doc.Report, nil
	}

	changed, err := textio.WriteIfChanged(fullPath, text, doc.Text)
	if err != nil {
		doc.Report.AddMessage("error: " + err.Error())
		return doc.Report, nil
	}
	doc.Report.Changed = changed
	return doc.Report, nil
}

// enumerateFiles lists the candidate files for the run, as forward-slash
// paths relative to the root, sorted. The entry HTML file is always
// included when it exists.
func enumerateFiles(cfg *config.Config) ([]string, error) {
	patterns := []string{"*.html"}
	if cfg.IncludeCSS {
		patterns = append(patterns, "*.css")
	}
	if cfg.Recursive {
		for i, pat := range patterns {
			patterns[i] = "**/" + pat
		}
	}

	rootFS := os.DirFS(cfg.Root)
	seen := make(map[string]bool)
	var files []string

	for _, pat := range patterns {
		matches, err := doublestar.Glob(rootFS, pat)
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	// The entry page is always processed, even when enumeration missed
	// it (e.g. it sits above the root patterns).
	if cfg.EntryHTML != "" && !seen[cfg.EntryHTML] {
		if _, err := os.Stat(filepath.Join(cfg.Root, filepath.FromSlash(cfg.EntryHTML))); err == nil {
			files = append(files, cfg.EntryHTML)
		}
	}

	sort.Strings(files)
	return files, nil
}

// outputReport renders the run report in the requested format.
func outputReport(cfg *config.Config, runReport *model.RunReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Read path only on close of write is reported by Write
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(runReport)
	return err
}

// saveRunReport appends the run outcome to the history database.
// Dry runs never write history; a preview performs no I/O at all.
func saveRunReport(ctx context.Context, cfg *config.Config, runReport *model.RunReport, logger *slog.Logger) error {
	if !cfg.SaveHistory || cfg.DryRun {
		return nil
	}

	db, err := database.Open(cfg.HistoryDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Best effort close

	if err := db.SaveRunReport(ctx, runReport); err != nil {
		return err
	}

	logger.Info("run recorded", "db", db.Path())
	return nil
}
