package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/maheshrc27/postcal/internal/calendar"
	"github.com/spf13/cobra"
)

var (
	// Next flags
	nextFrom string
)

// nextCmd prints the next date falling on a weekday
var nextCmd = &cobra.Command{
	Use:   "next <weekday>",
	Short: "Print the next date on a weekday",
	Long: `Print the first date strictly after today (or --from) that falls on the
given weekday. The weekday is a name (Monday) or an index, 0 = Monday.

Examples:
  postcal next Friday
  postcal next 4 --from 2024-06-10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weekday, err := strconv.Atoi(args[0])
		if err != nil {
			weekday, err = calendar.ParseWeekday(args[0])
			if err != nil {
				return err
			}
		}

		from := time.Now()
		if nextFrom != "" {
			from, err = time.Parse("2006-01-02", nextFrom)
			if err != nil {
				return fmt.Errorf("invalid --from date %q, want YYYY-MM-DD", nextFrom)
			}
		}

		next, err := calendar.NextWeekday(calendar.DateOf(from), weekday)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), next.Format("2006-01-02"))
		return err
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)

	nextCmd.Flags().StringVar(&nextFrom, "from", "", "Start date, YYYY-MM-DD (default today)")
}
