package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for assetmirror.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assetmirror",
		Short: "Mirror CDN assets locally and rewrite a static site's references",
		Long: `assetmirror de-risks a static site's dependency on third-party CDNs.

It scans the site's HTML (and optionally CSS) for remotely-hosted assets
(images, stylesheets, scripts, fonts), downloads each asset once to a
deterministic local path under assets/, and rewrites every reference to
point at the local copy. Re-running is always safe: already-mirrored
assets are never downloaded again and unchanged files are never touched.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewMirrorCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
