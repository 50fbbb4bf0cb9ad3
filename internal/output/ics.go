package output

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/meadbax/hub/internal/database"
)

// ProductID identifies exported calendars
const ProductID = "-//meadbax//hub//EN"

// timedEventLength is the duration given to events that only carry a start
const timedEventLength = time.Hour

// ICS writes events as an iCalendar feed. Timed events are read in loc and
// last one hour; events without a time are all-day.
func ICS(w io.Writer, events []database.Event, loc *time.Location, stamp time.Time) error {
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, e := range events {
		day, err := time.ParseInLocation("2006-01-02", e.Date, loc)
		if err != nil {
			return fmt.Errorf("event %s: bad date %q: %w", e.ID, e.Date, err)
		}

		ev := cal.AddEvent(e.ID + "@hub")
		ev.SetDtStampTime(stamp)
		ev.SetSummary(e.Title)

		if e.AllDay() {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}

		start, err := time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.Time, loc)
		if err != nil {
			return fmt.Errorf("event %s: bad time %q: %w", e.ID, e.Time, err)
		}
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(timedEventLength))
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
