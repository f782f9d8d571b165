package util

import (
	"testing"
	"time"
)

func TestParseDateDayFirst(t *testing.T) {
	got, ok := ParseDate("03/02/2024")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateISO(t *testing.T) {
	got, ok := ParseDate("2024-02-03")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Day() != 3 || got.Month() != 2 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseMonth(t *testing.T) {
	for _, s := range []string{"2025-07", "Jul 2025", "July 2025", "01/07/2025"} {
		got, ok := ParseMonth(s)
		if !ok {
			t.Fatalf("expected ok for %q", s)
		}
		want := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("%q parsed to %v", s, got)
		}
	}
	if _, ok := ParseMonth("not-a-month"); ok {
		t.Fatalf("expected failure")
	}
}

func TestMonthEnd(t *testing.T) {
	end := MonthEnd(time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	if end.Month() != 2 || end.Day() != 29 {
		t.Fatalf("unexpected month end %v", end)
	}
}
