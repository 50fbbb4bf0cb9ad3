package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/output"
	"github.com/meadbax/hub/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest what to do today",
	Long: `Suggest what to do today from the open tasks and goals, the time of
day and, optionally, the weather. With OPENAI_API_KEY set the suggestion
is written by the configured model; otherwise, or when the model call
fails, a local heuristic is used.

Examples:
  hub suggest
  hub suggest --weather "light rain, 12°C"
  hub suggest --local`,
	RunE: runSuggest,
}

var (
	suggestWeather string
	suggestLocal   bool
)

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVar(&suggestWeather, "weather", "", "Current weather as free text")
	suggestCmd.Flags().BoolVar(&suggestLocal, "local", false, "Skip the model and use the local heuristic")
}

func runSuggest(cmd *cobra.Command, args []string) error {
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

	tasks, goals, err := db.OpenTaskTexts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	sc := suggest.NewContext(localNow(cfg), tasks, goals, suggestWeather)

	var s *suggest.Suggestion
	if suggestLocal {
		s = &suggest.Suggestion{Text: suggest.Local(sc), Source: suggest.SourceLocal}
	} else {
		s = newGenerator(cfg).Suggest(ctx, sc)
	}

	return output.Output(outputFmt, s)
}
