package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/command"
	"github.com/meadbax/hub/internal/output"
)

var doCmd = &cobra.Command{
	Use:   "do <text>",
	Short: "Interpret a command and store what it creates",
	Long: `Interpret a short utterance the same way the hub's command box does.

Notes and events are saved to the local database. Anything the
interpreter does not recognize prints a help reply.

Examples:
  hub do add note buy milk
  hub do "schedule meeting on 2/7 at 3pm"
  hub do calendar mom's birthday March 3rd`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
}

func runDo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := command.Apply(ctx, db, strings.Join(args, " "), localNow(cfg))
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		return output.JSON(result)
	}

	term := NewTerminal()
	color := ColorGreen
	if !result.Created() {
		color = ColorYellow
	}
	fmt.Println(term.Color(color, result.Reply))
	return nil
}
