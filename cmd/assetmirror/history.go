package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ittijoseph/assetmirror/internal/config"
	"github.com/ittijoseph/assetmirror/internal/database"
)

// defaultHistoryLimit is the number of runs listed when --limit is not
// given.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// This command lists past mirroring runs recorded in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past mirroring runs",
		Long: `History lists past mirroring runs recorded in the run database.

Each run row shows when the run started, the directory it processed,
how many files and assets were involved, and whether anything changed.
Dry runs are never recorded.

Examples:
  # List the most recent runs
  assetmirror history

  # List the last 5 runs
  assetmirror history --limit 5

  # Output run history in JSON format
  assetmirror history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", defaultHistoryLimit,
		"Maximum number of runs to list")
	cmd.Flags().BoolP("json", "j", false,
		"Output run history in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Read-only access

	runs, err := db.RecentRuns(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOutput {
		return outputHistoryJSON(runs)
	}
	return outputHistoryText(runs)
}

// outputHistoryJSON outputs the run history in JSON format.
func outputHistoryJSON(runs []database.RunSummary) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runs)
}

// outputHistoryText outputs the run history as a table.
func outputHistoryText(runs []database.RunSummary) error {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println("\nUse 'assetmirror mirror' to mirror a site; completed runs are recorded automatically.")
		return nil
	}

	fmt.Printf("Recent runs (%d):\n\n", len(runs))
	fmt.Printf("  %-6s  %-20s  %-6s  %-7s  %-11s  %-7s  %-8s  %s\n",
		"ID", "Date", "Files", "Assets", "Downloaded", "Failed", "Changed", "Root")
	fmt.Println("  " + strings.Repeat("-", 84))

	for _, r := range runs {
		fmt.Printf("  %-6d  %-20s  %-6d  %-7d  %-11d  %-7d  %-8s  %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Files,
			r.Assets,
			r.Downloaded,
			r.Failed,
			formatChanged(r.Changed),
			r.Root,
		)
	}

	return nil
}

// formatChanged formats the changed flag for display.
func formatChanged(changed bool) string {
	if changed {
		return "yes"
	}
	return "no"
}
