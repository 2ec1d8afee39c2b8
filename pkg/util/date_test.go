package util

import (
	"testing"
	"time"
)

func TestParseISODate(t *testing.T) {
	got, ok := ParseISODate("2025-11-03")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseISODateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2025-13-01", "03/11/2025", "2025-11-03T10:00:00Z"} {
		if _, ok := ParseISODate(s); ok {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	from, to := MonthBounds(2025, 11)
	if from.Day() != 1 || from.Month() != time.November {
		t.Fatalf("unexpected from %v", from)
	}
	if to.Day() != 30 || to.Month() != time.November {
		t.Fatalf("unexpected to %v", to)
	}

	// December rolls into the next year correctly.
	from, to = MonthBounds(2025, 12)
	if from.Year() != 2025 || to.Day() != 31 {
		t.Fatalf("unexpected december bounds %v %v", from, to)
	}
}

func TestWeekStart(t *testing.T) {
	// 2025-11-05 is a Wednesday; its ISO week starts Monday 2025-11-03.
	ws := WeekStart(time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC))
	if ws.Weekday() != time.Monday || ws.Day() != 3 {
		t.Fatalf("unexpected week start %v", ws)
	}
	// A Monday is its own week start.
	mon := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	if !WeekStart(mon).Equal(mon) {
		t.Fatalf("monday should be its own week start")
	}
	// Sunday belongs to the week starting the previous Monday.
	sun := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	if WeekStart(sun).Day() != 3 {
		t.Fatalf("unexpected sunday week start %v", WeekStart(sun))
	}
}

func TestDaysInclusive(t *testing.T) {
	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	if n := DaysInclusive(from, from); n != 1 {
		t.Fatalf("single day should count 1, got %d", n)
	}
	to := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	if n := DaysInclusive(from, to); n != 30 {
		t.Fatalf("expected 30, got %d", n)
	}
}
