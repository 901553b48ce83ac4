package main

import (
	"strings"
	"testing"
	"time"

	"github.com/ittijoseph/assetmirror/internal/database"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history" {
			t.Errorf("expected use 'history', got %q", cmd.Use)
		}
	})

	t.Run("has limit flag with default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("limit shorthand = %q, want l", flag.Shorthand)
		}
		if flag.DefValue != "20" {
			t.Errorf("limit default = %q, want 20", flag.DefValue)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("json shorthand = %q, want j", flag.Shorthand)
		}
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{"extra"}); err == nil {
			t.Error("expected error for positional argument")
		}
	})
}

// TestRunHistoryCmd_InvalidLimit tests limit validation.
func TestRunHistoryCmd_InvalidLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit string
	}{
		{name: "zero", limit: "0"},
		{name: "negative", limit: "-3"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := NewHistoryCmd()
			if err := cmd.ParseFlags([]string{"--limit", tt.limit}); err != nil {
				t.Fatal(err)
			}
			err := runHistoryCmd(cmd, nil)
			if err == nil {
				t.Fatal("expected error for non-positive limit")
			}
			if !strings.Contains(err.Error(), "limit must be positive") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestOutputHistoryText tests the table rendering of run summaries.
func TestOutputHistoryText(t *testing.T) {
	runs := []database.RunSummary{
		{
			ID:         2,
			Root:       "/srv/site",
			StartedAt:  time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
			Files:      3,
			Assets:     12,
			Downloaded: 4,
			Failed:     1,
			Changed:    true,
		},
	}
	if err := outputHistoryText(runs); err != nil {
		t.Fatalf("outputHistoryText returned error: %v", err)
	}
}

// TestOutputHistoryJSON tests the JSON rendering of run summaries.
func TestOutputHistoryJSON(t *testing.T) {
	runs := []database.RunSummary{
		{ID: 1, Root: ".", StartedAt: time.Now()},
	}
	if err := outputHistoryJSON(runs); err != nil {
		t.Fatalf("outputHistoryJSON returned error: %v", err)
	}
}

// TestFormatChanged tests the yes/no rendering.
func TestFormatChanged(t *testing.T) {
	t.Parallel()

	if got := formatChanged(true); got != "yes" {
		t.Errorf("formatChanged(true) = %q, want yes", got)
	}
	if got := formatChanged(false); got != "no" {
		t.Errorf("formatChanged(false) = %q, want no", got)
	}
}
