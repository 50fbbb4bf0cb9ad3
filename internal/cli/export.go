package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/database"
	"github.com/meadbax/hub/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export calendar events to iCalendar or JSON",
	Long: `Export calendar events to a file.

Supported formats:
  - ics: iCalendar feed (import into Google Calendar, Apple Calendar, ...)
  - json: JSON array of event objects

Timed events are one hour long in the configured gmail.timezone;
events without a time are exported as all-day events.

Examples:
  hub export > hub.ics
  hub export --format=json --from 2024-01-01 > events.json
  hub export --file ~/hub.ics`,
	RunE: runExport,
}

var (
	exportFormat string
	exportFrom   string
	exportTo     string
	exportFile   string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "ics", "Export format (ics, json)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First day, YYYY-MM-DD or e.g. \"March 3\"")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last day, YYYY-MM-DD or e.g. \"March 3\"")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	loc, err := cfg.Gmail.Location()
	if err != nil {
		return fmt.Errorf("invalid gmail.timezone: %w", err)
	}

	r, err := eventRange(exportFrom, exportTo, true, time.Now().In(loc))
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := db.ListEvents(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	var w io.Writer = os.Stdout
	if exportFile != "" {
		f, err := os.Create(exportFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportFile, err)
		}
		defer f.Close()
		w = f
	}

	return exportEvents(w, exportFormat, events, loc, time.Now())
}

func exportEvents(w io.Writer, format string, events []database.Event, loc *time.Location, stamp time.Time) error {
	switch format {
	case "ics":
		return output.ICS(w, events, loc, stamp)
	case "json":
		if events == nil {
			events = []database.Event{}
		}
		return output.JSONTo(w, events)
	default:
		return fmt.Errorf("unknown format: %s (use ics or json)", format)
	}
}
