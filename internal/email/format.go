package email

import "time"

// Display layouts
const (
	ClockLayout  = "03:04 PM"
	ShortLayout  = "Jan 2"
	DetailLayout = "Mon, Jan 2, 2006, 03:04 PM"
)

// RelativeLabel describes when a message arrived, relative to now: the clock
// time within 24 hours, "Yesterday" within 48, the month and day after that.
func RelativeLabel(t, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.In(loc).Format(ClockLayout)
	case diff < 48*time.Hour:
		return "Yesterday"
	default:
		return t.In(loc).Format(ShortLayout)
	}
}

// FormatDetailDate formats a message date for the reading pane
func FormatDetailDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DetailLayout)
}
