package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/maheshrc27/postcal/internal/calendar"
	"github.com/spf13/cobra"
)

var (
	// Calendar flags
	calendarYear int
)

// calendarCmd prints a year of month grids
var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print a year calendar",
	Long: `Print the twelve month grids of a year as markdown tables, Sunday first.

Examples:
  postcal calendar               # Current year
  postcal calendar --year 2024   # A given year
  postcal calendar --json        # Grids as JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		year := calendarYear
		if year == 0 {
			year = time.Now().Year()
		}
		if year < 1 || year > 9999 {
			return fmt.Errorf("year must be between 1 and 9999, got %d", year)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(calendar.YearGrid(year))
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), calendar.RenderMarkdown(year))
		return err
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)

	calendarCmd.Flags().IntVarP(&calendarYear, "year", "y", 0, "Year to print (default current year)")
}
