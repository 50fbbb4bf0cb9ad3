package output

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/meadbax/hub/internal/command"
	"github.com/meadbax/hub/internal/database"
	"github.com/meadbax/hub/internal/suggest"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.Note:
		return notesTable(w, v)
	case []database.Event:
		return eventsTable(w, v)
	case []database.Task:
		return tasksTable(w, v)
	case *command.Result:
		return commandResult(w, v)
	case *suggest.Suggestion:
		_, err := fmt.Fprintln(w, v.Text)
		return err
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func notesTable(w io.Writer, notes []database.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes yet.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Created", "Note")
	for _, n := range notes {
		row := []string{
			shortID(n.ID),
			n.CreatedAt.Local().Format("Jan 02 15:04"),
			truncate(n.Body, 60),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func eventsTable(w io.Writer, events []database.Event) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events scheduled.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Date", "Time", "Title")
	for _, e := range events {
		when := e.Time
		if e.AllDay() {
			when = "all day"
		}
		row := []string{shortID(e.ID), e.Date, when, truncate(e.Title, 50)}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func tasksTable(w io.Writer, tasks []database.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "Nothing on the list.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Kind", "Done", "Text")
	for _, t := range tasks {
		done := ""
		if t.Done {
			done = "x"
		}
		row := []string{shortID(t.ID), string(t.Kind), done, truncate(t.Text, 60)}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func commandResult(w io.Writer, r *command.Result) error {
	fmt.Fprintln(w, r.Reply)

	switch {
	case r.Note != nil:
		fmt.Fprintf(w, "  note:  %s\n", r.Note.Body)
	case r.Event != nil:
		when := r.Event.Time
		if r.Event.AllDay() {
			when = "all day"
		}
		fmt.Fprintf(w, "  event: %s %s  %s\n", r.Event.Date, when, r.Event.Title)
	}
	return nil
}

// shortID keeps the first uuid group, enough to pick a row by hand
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
