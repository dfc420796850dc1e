package schedule

import (
	"time"
)

// All shift logic runs in Bangladesh Standard Time (UTC+6) regardless of
// where the server is deployed.
var Dhaka *time.Location

func init() {
	var err error
	Dhaka, err = time.LoadLocation("Asia/Dhaka")
	if err != nil {
		// Fallback to UTC+6 if timezone data not available
		Dhaka = time.FixedZone("BST", 6*60*60)
	}
}

// Clock supplies the current time. Services take a Clock so tests can pin
// submissions to exact shift boundaries.
type Clock func() time.Time

// Now is the default production clock.
func Now() time.Time {
	return time.Now().In(Dhaka)
}

type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftEvening   Shift = "evening"
	ShiftLateNight Shift = "lateNight"
	ShiftClosed    Shift = "closed"
)

// Shift boundaries in minutes since local midnight.
//
// Display windows tell the user which shift is running; editable windows
// are deliberately wider so a shift's count can still be corrected shortly
// after it ends.
const (
	morningStart   = 7 * 60  // 07:00
	eveningStart   = 15 * 60 // 15:00
	lateNightStart = 23 * 60 // 23:00
	closedStart    = 3 * 60  // 03:00

	morningEditEnd   = 15*60 + 30 // 15:30
	eveningEditEnd   = 23*60 + 30 // 23:30
	lateNightEditEnd = 3*60 + 20  // 03:20
)

// minuteOfDay converts t to minutes since midnight in the operative zone.
func minuteOfDay(t time.Time) int {
	t = t.In(Dhaka)
	return t.Hour()*60 + t.Minute()
}

// CurrentShift returns the shift to display as active at time t.
// Between 03:00 and 07:00 the sheet is closed.
func CurrentShift(t time.Time) Shift {
	m := minuteOfDay(t)
	switch {
	case m >= morningStart && m < eveningStart:
		return ShiftMorning
	case m >= eveningStart && m < lateNightStart:
		return ShiftEvening
	case m >= lateNightStart || m < closedStart:
		return ShiftLateNight
	default:
		return ShiftClosed
	}
}

// EditableFields reports which shift fields currently accept input.
type EditableFields struct {
	Morning   bool `json:"morning"`
	Evening   bool `json:"evening"`
	LateNight bool `json:"late_night"`
}

// Editable returns the field-level edit windows at time t. These are wider
// than the display windows: the morning field stays open until 15:30, the
// evening field until 23:30 and the late-night field until 03:20.
func Editable(t time.Time) EditableFields {
	m := minuteOfDay(t)
	return EditableFields{
		Morning:   m >= morningStart && m < morningEditEnd,
		Evening:   m >= eveningStart && m < eveningEditEnd,
		LateNight: m >= lateNightStart || m < lateNightEditEnd,
	}
}

// Any reports whether at least one field is editable.
func (f EditableFields) Any() bool {
	return f.Morning || f.Evening || f.LateNight
}

// Day normalizes t to midnight of its calendar day in the operative zone.
// Daily entries are keyed by this value.
func Day(t time.Time) time.Time {
	t = t.In(Dhaka)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Dhaka)
}

// DailyTarget suggests a per-day production quantity: the remaining stock
// divided over the production period, rounded up so the stock is always
// consumable within the period.
//
// With both startDate and endDate set, the divisor is the inclusive day
// count of the fixed period. Without an end date it falls back to the days
// left in the current month, today included. A degenerate period yields 0.
func DailyTarget(remainingStock int, startDate, endDate *time.Time, now time.Time) int {
	if remainingStock <= 0 {
		return 0
	}

	var days int
	if startDate != nil && endDate != nil {
		start := Day(*startDate)
		end := Day(*endDate)
		days = int(end.Sub(start).Hours()/24) + 1
	} else {
		today := Day(now)
		lastDay := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, Dhaka).Day()
		days = lastDay - today.Day() + 1
	}

	if days <= 0 {
		return 0
	}
	return (remainingStock + days - 1) / days
}
