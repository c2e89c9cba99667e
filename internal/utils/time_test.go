package utils

import (
	"testing"
	"time"
)

func TestDay(t *testing.T) {
	at := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := Day(at); got != "2026-03-10" {
		t.Errorf("Day() = %q, want 2026-03-10", got)
	}
}

func TestYesterday_MonthBoundary(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC)
	if got := Yesterday(at); got != "2026-02-28" {
		t.Errorf("Yesterday() = %q, want 2026-02-28", got)
	}
}

func TestSameDay(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	if !SameDay("2026-03-10", at) {
		t.Error("SameDay should match the same calendar day")
	}
	if SameDay("2026-03-09", at) {
		t.Error("SameDay should reject a different day")
	}
}

func TestValidDay(t *testing.T) {
	tests := []struct {
		day  string
		want bool
	}{
		{"2026-03-10", true},
		{"2026-3-10", false},
		{"not-a-day", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidDay(tt.day); got != tt.want {
			t.Errorf("ValidDay(%q) = %v, want %v", tt.day, got, tt.want)
		}
	}
}
