package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meadbax/hub/internal/database"
	"github.com/meadbax/hub/internal/output"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks and goals",
	Long: `List open tasks and goals. Tasks are today's to-dos; goals are
longer-running and feed the daily suggestion when no tasks are open.

Examples:
  hub tasks
  hub tasks --goals --all
  hub tasks add write the report
  hub tasks add --goal run a 10k
  hub tasks done 1f0c2a3b
  hub tasks rm 1f0c2a3b`,
	RunE: runTasks,
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task or goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTasksAdd,
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task or goal done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksDone,
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task or goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksRm,
}

var (
	tasksGoal      bool
	tasksOnlyGoals bool
	tasksOnlyTasks bool
	tasksAll       bool
)

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksAddCmd, tasksDoneCmd, tasksRmCmd)

	tasksCmd.Flags().BoolVar(&tasksOnlyGoals, "goals", false, "Only list goals")
	tasksCmd.Flags().BoolVar(&tasksOnlyTasks, "tasks", false, "Only list tasks")
	tasksCmd.Flags().BoolVar(&tasksAll, "all", false, "Include completed items")
	tasksCmd.MarkFlagsMutuallyExclusive("goals", "tasks")

	tasksAddCmd.Flags().BoolVar(&tasksGoal, "goal", false, "Add a goal instead of a task")
}

func runTasks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := database.TaskListOptions{IncludeDone: tasksAll}
	switch {
	case tasksOnlyGoals:
		kind := database.KindGoal
		opts.Kind = &kind
	case tasksOnlyTasks:
		kind := database.KindTask
		opts.Kind = &kind
	}

	tasks, err := db.ListTasks(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	return output.Output(outputFmt, tasks)
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	task := &database.Task{Kind: database.KindTask, Text: strings.Join(args, " ")}
	if tasksGoal {
		task.Kind = database.KindGoal
	}
	if err := db.AddTask(cmd.Context(), task); err != nil {
		return fmt.Errorf("failed to add %s: %w", task.Kind, err)
	}

	if outputFmt == "json" {
		return output.JSON(task)
	}
	fmt.Printf("Added %s %s\n", task.Kind, task.ID)
	return nil
}

func runTasksDone(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CompleteTask(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Completed %s\n", args[0])
	return nil
}

func runTasksRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteTask(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
