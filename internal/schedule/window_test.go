package schedule

import (
	"testing"
	"time"
)

// at builds a timestamp on a fixed day at the given local (UTC+6) time.
func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, Dhaka)
}

func TestCurrentShift(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want Shift
	}{
		{"just before morning opens", at(6, 59), ShiftClosed},
		{"morning opens at 07:00", at(7, 0), ShiftMorning},
		{"mid morning", at(11, 30), ShiftMorning},
		{"last minute of morning", at(14, 59), ShiftMorning},
		{"evening opens at 15:00", at(15, 0), ShiftEvening},
		{"15:15 displays evening", at(15, 15), ShiftEvening},
		{"last minute of evening", at(22, 59), ShiftEvening},
		{"late night opens at 23:00", at(23, 0), ShiftLateNight},
		{"late night wraps past midnight", at(1, 30), ShiftLateNight},
		{"last minute of late night", at(2, 59), ShiftLateNight},
		{"closed at 03:00", at(3, 0), ShiftClosed},
		{"closed before dawn", at(5, 0), ShiftClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentShift(tt.time); got != tt.want {
				t.Errorf("CurrentShift(%s) = %v, want %v", tt.time.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestEditable(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want EditableFields
	}{
		{"morning only", at(8, 0), EditableFields{Morning: true}},
		{"morning grace overlaps evening", at(15, 15), EditableFields{Morning: true, Evening: true}},
		{"morning closes at 15:30", at(15, 30), EditableFields{Evening: true}},
		{"evening grace overlaps late night", at(23, 15), EditableFields{Evening: true, LateNight: true}},
		{"evening closes at 23:30", at(23, 30), EditableFields{LateNight: true}},
		{"late night after midnight", at(1, 0), EditableFields{LateNight: true}},
		{"late night grace until 03:19", at(3, 19), EditableFields{LateNight: true}},
		{"everything closed at 03:20", at(3, 20), EditableFields{}},
		{"everything closed before dawn", at(5, 0), EditableFields{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Editable(tt.time); got != tt.want {
				t.Errorf("Editable(%s) = %+v, want %+v", tt.time.Format("15:04"), got, tt.want)
			}
		})
	}
}

// The display and editable windows diverge on purpose: at 15:15 evening is
// the active shift but a late morning correction is still accepted.
func TestMorningEditableAfterShiftEnds(t *testing.T) {
	now := at(15, 15)

	if shift := CurrentShift(now); shift != ShiftEvening {
		t.Errorf("expected evening to display at 15:15, got %v", shift)
	}
	if fields := Editable(now); !fields.Morning {
		t.Error("expected morning field to remain editable at 15:15")
	}
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, Dhaka)
	return &d
}

func TestDailyTarget(t *testing.T) {
	now := time.Date(2025, 3, 22, 10, 0, 0, 0, Dhaka)

	tests := []struct {
		name      string
		stock     int
		startDate *time.Time
		endDate   *time.Time
		want      int
	}{
		{"even division over 10 days", 300, date(2025, 3, 1), date(2025, 3, 10), 30},
		{"division rounds up", 301, date(2025, 3, 1), date(2025, 3, 10), 31},
		{"single day period", 50, date(2025, 3, 5), date(2025, 3, 5), 50},
		{"end before start yields zero", 100, date(2025, 3, 10), date(2025, 3, 1), 0},
		{"zero stock yields zero", 0, date(2025, 3, 1), date(2025, 3, 10), 0},
		// No end date: fall back to days left in March (22nd..31st = 10 days).
		{"fallback to month remainder", 300, nil, nil, 30},
		{"fallback rounds up", 301, nil, nil, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyTarget(tt.stock, tt.startDate, tt.endDate, now)
			if got != tt.want {
				t.Errorf("DailyTarget(%d) = %d, want %d", tt.stock, got, tt.want)
			}
		})
	}
}

func TestDailyTargetLastDayOfMonth(t *testing.T) {
	// One day left including today.
	now := time.Date(2025, 3, 31, 9, 0, 0, 0, Dhaka)
	if got := DailyTarget(45, nil, nil, now); got != 45 {
		t.Errorf("DailyTarget on last day = %d, want 45", got)
	}
}

func TestDay(t *testing.T) {
	// 20:00 UTC is 02:00 next day in UTC+6; the entry belongs to that day.
	utc := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	day := Day(utc)

	if day.Year() != 2025 || day.Month() != time.March || day.Day() != 11 {
		t.Errorf("Day(%v) = %v, want 2025-03-11 midnight", utc, day)
	}
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("Day() not normalized to midnight: %v", day)
	}

	// Normalizing twice is a no-op.
	if !Day(day).Equal(day) {
		t.Errorf("Day(Day(t)) = %v, want %v", Day(day), day)
	}
}
