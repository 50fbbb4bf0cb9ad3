package datetime

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		now    time.Time
		want   string
		wantOK bool
	}{
		{"abbreviated month rolls to next year", "Jan 5", day(2024, time.March, 1), "2025-01-05", true},
		{"numeric no rollover", "02/07", day(2024, time.January, 1), "2024-02-07", true},
		{"no date tokens", "let's meet", day(2024, time.January, 1), "", false},
		{"ordinal of month", "dentist on the 5th of January", day(2024, time.January, 1), "2024-01-05", true},
		{"day before month", "lunch 21 march", day(2024, time.January, 1), "2024-03-21", true},
		{"month then ordinal", "Party December 3rd", day(2024, time.June, 10), "2024-12-03", true},
		{"case insensitive", "REVIEW ON FEB 14", day(2024, time.January, 1), "2024-02-14", true},
		{"sept abbreviation", "trip sept 9", day(2024, time.January, 1), "2024-09-09", true},
		{"bare month defaults to first", "plan something in October", day(2024, time.January, 1), "2024-10-01", true},
		{"bare may is not a month", "you may call me", day(2024, time.January, 1), "", false},
		{"may with day", "may 4 launch", day(2024, time.January, 1), "2024-05-04", true},
		{"dash separator", "review 3-15", day(2024, time.January, 1), "2024-03-15", true},
		{"today is not rolled", "1/1", day(2024, time.January, 1), "2024-01-01", true},
		{"today is not rolled late in the day", "1/1", time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC), "2024-01-01", true},
		{"yesterday rolls", "3/1", day(2025, time.March, 2), "2026-03-01", true},
		{"invalid day rejected", "2/30", day(2024, time.January, 1), "", false},
		{"invalid month rejected", "13/5", day(2024, time.January, 1), "", false},
		{"month name wins over numeric", "jan 5 or 3/4", day(2024, time.January, 1), "2024-01-05", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text, tt.now)
			if ok != tt.wantOK {
				t.Fatalf("Extract(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got.ISODate != tt.want {
				t.Errorf("Extract(%q) date = %q, want %q", tt.text, got.ISODate, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"3pm", "15:00"},
		{"9:30am", "09:30"},
		{"at 12pm", "12:00"},
		{"at 12am", "00:00"},
		{"7 PM sharp", "19:00"},
		{"at 14:45", "14:45"},
		{"around noon", ""},
		{"no digits here", ""},
		{"call room 5 today", "05:00"},
		{"13pm then 4pm", "16:00"},
		{"99 bottles at 8", "08:00"},
	}

	for _, tt := range tests {
		if got := ParseTime(tt.text); got != tt.want {
			t.Errorf("ParseTime(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractIgnoresDateDigitsForTime(t *testing.T) {
	now := day(2024, time.January, 1)

	got, ok := Extract("schedule meeting on 2/7 at 3pm", now)
	if !ok {
		t.Fatal("expected a date")
	}
	if got.ISODate != "2024-02-07" || got.Time != "15:00" {
		t.Errorf("got %+v, want 2024-02-07 15:00", got)
	}

	got, ok = Extract("Jan 5", now)
	if !ok {
		t.Fatal("expected a date")
	}
	if !got.AllDay() {
		t.Errorf("expected all-day result, got time %q", got.Time)
	}
}

func TestExtractKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, loc)

	got, ok := ParseDate("June 2", now)
	if !ok {
		t.Fatal("expected a date")
	}
	if got.Location() != loc {
		t.Errorf("location = %v, want %v", got.Location(), loc)
	}
	if got.Hour() != 0 || got.Day() != 2 || got.Month() != time.June {
		t.Errorf("got %v", got)
	}
}
