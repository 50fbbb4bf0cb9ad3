package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/database"
	"github.com/meadbax/hub/internal/datetime"
	"github.com/meadbax/hub/internal/output"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List calendar events",
	Long: `List calendar events in date order. By default only events from
today onward are shown.

Examples:
  hub events
  hub events --from 2024-02-01 --to 2024-02-29
  hub events --to "March 3"
  hub events --all -o json
  hub events rm 1f0c2a3b-...`,
	RunE: runEvents,
}

var eventsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsRm,
}

var (
	eventsFrom  string
	eventsTo    string
	eventsAll   bool
	eventsLimit int
)

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsRmCmd)

	eventsCmd.Flags().StringVar(&eventsFrom, "from", "", "First day, YYYY-MM-DD or e.g. \"March 3\" (default: today)")
	eventsCmd.Flags().StringVar(&eventsTo, "to", "", "Last day, YYYY-MM-DD or e.g. \"March 3\"")
	eventsCmd.Flags().BoolVar(&eventsAll, "all", false, "Include past events")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 0, "Maximum number of events")
}

// eventRange resolves the date flags to YYYY-MM-DD. Each flag is either an
// ISO date or a phrase like "March 3" or "2/7", read relative to today. An
// empty from means today unless all is set.
func eventRange(from, to string, all bool, today time.Time) (database.EventRange, error) {
	if from == "" && !all {
		from = today.Format("2006-01-02")
	}

	var r database.EventRange
	var err error
	if r.From, err = rangeDay(from, today); err != nil {
		return database.EventRange{}, err
	}
	if r.To, err = rangeDay(to, today); err != nil {
		return database.EventRange{}, err
	}
	return r, nil
}

func rangeDay(s string, today time.Time) (string, error) {
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s, nil
	}
	if d, ok := datetime.ParseDate(s, today); ok {
		return d.Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD or e.g. \"March 3\")", s)
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	r, err := eventRange(eventsFrom, eventsTo, eventsAll, localNow(cfg))
	if err != nil {
		return err
	}
	r.Limit = eventsLimit

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := db.ListEvents(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	return output.Output(outputFmt, events)
}

func runEventsRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteEvent(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted event %s\n", args[0])
	return nil
}
