// Package suggest produces the hub's one-paragraph plan for the day from the
// open tasks, goals, time and weather it is handed.
package suggest

import (
	"fmt"
	"strings"
	"time"
)

// Source names where a suggestion came from
type Source string

const (
	SourceLocal  Source = "local"
	SourceOpenAI Source = "openai"
)

// Suggestion is a generated plan
type Suggestion struct {
	Text   string `json:"suggestion"`
	Source Source `json:"source"`
}

// Context is everything a suggestion may depend on. Callers build it
// explicitly; nothing is read from shared state.
type Context struct {
	Date    string   `json:"date"`    // e.g. "Monday, January 1, 2024"
	Weekday string   `json:"weekday"` // e.g. "Monday"
	Time    string   `json:"time"`    // e.g. "09:30"
	Hour    int      `json:"hour"`
	Tasks   []string `json:"tasks"`
	Goals   []string `json:"goals"`
	Weather string   `json:"weather"` // free text, "" when unknown
}

// NewContext fills the calendar fields from now
func NewContext(now time.Time, tasks, goals []string, weather string) Context {
	return Context{
		Date:    now.Format("Monday, January 2, 2006"),
		Weekday: now.Weekday().String(),
		Time:    now.Format("15:04"),
		Hour:    now.Hour(),
		Tasks:   tasks,
		Goals:   goals,
		Weather: weather,
	}
}

// TimeOfDay buckets Hour into morning, afternoon or evening
func (c Context) TimeOfDay() string {
	switch {
	case c.Hour < 12:
		return "morning"
	case c.Hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// Weekend reports whether Weekday is Saturday or Sunday
func (c Context) Weekend() bool {
	return c.Weekday == "Saturday" || c.Weekday == "Sunday"
}

// Local builds a suggestion without any model: the first task leads, goals
// stand in when there are no tasks, and weather and weekends add a sentence.
func Local(c Context) string {
	var parts []string

	switch {
	case len(c.Tasks) > 0:
		parts = append(parts, fmt.Sprintf("Focus on %q first this %s.", c.Tasks[0], c.TimeOfDay()))
		if len(c.Tasks) > 1 {
			parts = append(parts, fmt.Sprintf("You have %d tasks today; ticking off the first will build momentum.", len(c.Tasks)))
		}
	case len(c.Goals) > 0:
		parts = append(parts, fmt.Sprintf("You have no tasks yet. Consider breaking %q into a small step you can do today.", c.Goals[0]))
	default:
		parts = append(parts, "No tasks or goals yet. Add one or two to get a tailored suggestion.")
	}

	weather := strings.ToLower(c.Weather)
	switch {
	case strings.Contains(weather, "rain"), strings.Contains(weather, "snow"), strings.Contains(weather, "storm"):
		parts = append(parts, "With this weather, indoor or low-mobility tasks are a good fit.")
	case strings.Contains(weather, "clear"), strings.Contains(weather, "partly"):
		parts = append(parts, "Good day to include something outdoors if it fits your list.")
	}

	if c.Weekend() && (len(c.Tasks) > 0 || len(c.Goals) > 0) {
		parts = append(parts, "Use the weekend to make progress without rushing.")
	}

	return strings.Join(parts, " ")
}

// Prompt is the instruction sent to a language model
func Prompt(c Context) string {
	weather := c.Weather
	if weather == "" {
		weather = "Unknown"
	}

	return fmt.Sprintf(`You are a concise daily planning assistant. Given the following, suggest what the user should do today in 2-4 short, actionable sentences. Be specific and consider weather and time of day.

Today: %s (%s), current time: %s
Weather: %s
Current tasks: %s
Current goals: %s

Reply with only the suggestion, no preamble.`,
		c.Date, c.Weekday, c.Time, weather, joinOrNone(c.Tasks), joinOrNone(c.Goals))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, "; ")
}
