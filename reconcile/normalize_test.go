package reconcile_test

import (
	"testing"

	"github.com/phoenix/attendance-engine/reconcile"
)

func TestResolveColumn(t *testing.T) {
	sample := reconcile.Record{
		"Employee  ID ": "1",
		"On Premise?":   "X",
		"Hours":         "8",
	}

	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"case and whitespace insensitive", []string{"employee id"}, "Employee  ID "},
		{"first candidate wins", []string{"Hours", "Employee ID"}, "Hours"},
		{"trailing question mark tolerated", []string{"On Premise"}, "On Premise?"},
		{"no match yields empty", []string{"Badge Number"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconcile.ResolveColumn(sample, tt.candidates); got != tt.want {
				t.Errorf("ResolveColumn(%v) = %q, want %q", tt.candidates, got, tt.want)
			}
		})
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"00123", "123"},
		{" 123 ", "123"},
		{"123.0", "123"},
		{"123.00", "123"},
		{"A-123", "123"},
		{"ABC", "ABC"},
		{" ABC ", "ABC"},
		{"", ""},
		{"   ", ""},
		{"0", "0"},
	}
	for _, tt := range tests {
		if got := reconcile.NormalizeID(tt.raw); got != tt.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}

	// The spreadsheet float artifact and the plain form must join.
	if reconcile.NormalizeID("123.0") != reconcile.NormalizeID("123") {
		t.Error("NormalizeID(\"123.0\") should equal NormalizeID(\"123\")")
	}
}

func TestToCalendarDay(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2026-08-28", "2026-08-28"},
		{"2026-8-5", "2026-08-05"},
		{"2026/08/28", "2026-08-28"},
		{"8/28/2026", "2026-08-28"},
		{"08/28/2026", "2026-08-28"},
		{"2026-08-28T14:30:00Z", "2026-08-28"},
		{"2026-08-28T14:30:00", "2026-08-28"},
		{"2026-08-28 14:30:00", "2026-08-28"},
		{"8/28/2026 14:30", "2026-08-28"},
		{"", ""},
		{"not a date", ""},
		{"13/45/2026", ""},
	}
	for _, tt := range tests {
		if got := reconcile.ToCalendarDay(tt.raw); got != tt.want {
			t.Errorf("ToCalendarDay(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDayName(t *testing.T) {
	if got := reconcile.DayName("2026-08-28"); got != "Friday" {
		t.Errorf("DayName(2026-08-28) = %q, want Friday", got)
	}
	if got := reconcile.DayName("garbage"); got != "" {
		t.Errorf("DayName(garbage) = %q, want empty", got)
	}
}
