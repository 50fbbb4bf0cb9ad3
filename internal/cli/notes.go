package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/output"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List notes",
	Long: `List saved notes, newest first.

Examples:
  hub notes
  hub notes --limit 5 -o json
  hub notes rm 1f0c2a3b-...`,
	RunE: runNotes,
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesRm,
}

var notesLimit int

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesRmCmd)

	notesCmd.Flags().IntVar(&notesLimit, "limit", 0, "Maximum number of notes")
}

func runNotes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	notes, err := db.ListNotes(cmd.Context(), notesLimit)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	return output.Output(outputFmt, notes)
}

func runNotesRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteNote(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted note %s\n", args[0])
	return nil
}
