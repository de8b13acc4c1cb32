package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/postcsv"
	"github.com/spf13/cobra"
)

// checkCmd validates a scheduled-posts CSV file
var checkCmd = &cobra.Command{
	Use:   "check <file.csv>",
	Short: "Validate a scheduled-posts CSV file",
	Long: `Parse a CSV export the way the import endpoint does and report
what it would add, or the first line that would make the import fail.

Examples:
  postcal check scheduled_posts.csv
  postcal check scheduled_posts.csv --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

type checkReport struct {
	File       string         `json:"file"`
	Posts      int            `json:"posts"`
	ByPlatform map[string]int `json:"by_platform"`
	First      string         `json:"first,omitempty"`
	Last       string         `json:"last,omitempty"`
}

func runCheck(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	posts, err := postcsv.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	report := checkReport{File: path, Posts: len(posts), ByPlatform: map[string]int{}}
	for i, p := range posts {
		if !models.IsValidPlatform(p.Platform) {
			return fmt.Errorf("%s: record %d: unknown platform %q", path, i+2, p.Platform)
		}
		report.ByPlatform[p.Platform]++

		at := p.ScheduledAt.Format(models.ScheduledAtLayout)
		if report.First == "" || at < report.First {
			report.First = at
		}
		if at > report.Last {
			report.Last = at
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "%s: %d posts OK\n", path, report.Posts)
	platforms := make([]string, 0, len(report.ByPlatform))
	for p := range report.ByPlatform {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	for _, p := range platforms {
		fmt.Fprintf(out, "  %-10s %d\n", p, report.ByPlatform[p])
	}
	if report.Posts > 0 {
		fmt.Fprintf(out, "  from %s to %s\n", report.First, report.Last)
	}
	return nil
}
