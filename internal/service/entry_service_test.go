package service

import (
	"errors"
	"testing"

	"go-production-tracker/internal/model"
	"go-production-tracker/internal/schedule"
)

func intPtr(v int) *int {
	return &v
}

func TestValidateCounts(t *testing.T) {
	tests := []struct {
		name    string
		req     RecordEntryRequest
		wantErr error
	}{
		{"no fields present", RecordEntryRequest{}, ErrNoCountProvided},
		{"single zero field", RecordEntryRequest{MorningCount: intPtr(0)}, ErrAllCountsZero},
		{"all present fields zero", RecordEntryRequest{MorningCount: intPtr(0), EveningCount: intPtr(0), LateNightCount: intPtr(0)}, ErrAllCountsZero},
		{"negative count rejected", RecordEntryRequest{MorningCount: intPtr(-5)}, ErrNegativeCount},
		{"negative alongside positive rejected", RecordEntryRequest{MorningCount: intPtr(-1), EveningCount: intPtr(10)}, ErrNegativeCount},
		{"single positive field ok", RecordEntryRequest{EveningCount: intPtr(15)}, nil},
		{"zero plus positive ok", RecordEntryRequest{MorningCount: intPtr(0), EveningCount: intPtr(15)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCounts(&tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateCounts() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckWindows(t *testing.T) {
	morningOnly := schedule.EditableFields{Morning: true}
	overlap := schedule.EditableFields{Morning: true, Evening: true}

	if err := checkWindows(&RecordEntryRequest{MorningCount: intPtr(20)}, morningOnly); err != nil {
		t.Errorf("morning submission in morning window rejected: %v", err)
	}

	err := checkWindows(&RecordEntryRequest{EveningCount: intPtr(10)}, morningOnly)
	if !errors.Is(err, ErrWindowClosed) {
		t.Errorf("evening submission in morning window = %v, want ErrWindowClosed", err)
	}

	// 15:00-15:30 overlap: both morning and evening fields legal.
	if err := checkWindows(&RecordEntryRequest{MorningCount: intPtr(20), EveningCount: intPtr(10)}, overlap); err != nil {
		t.Errorf("overlap window rejected a legal submission: %v", err)
	}

	err = checkWindows(&RecordEntryRequest{LateNightCount: intPtr(5)}, overlap)
	if !errors.Is(err, ErrWindowClosed) {
		t.Errorf("late night submission in afternoon = %v, want ErrWindowClosed", err)
	}
}

func TestApplyCountsCreate(t *testing.T) {
	entry := &model.DailyEntry{}
	req := &RecordEntryRequest{MorningCount: intPtr(20)}

	deduction := applyCounts(entry, req)

	if deduction != 20 {
		t.Errorf("deduction = %d, want 20", deduction)
	}
	if entry.MorningCount != 20 || entry.EveningCount != 0 || entry.LateNightCount != 0 {
		t.Errorf("counts = (%d, %d, %d), want (20, 0, 0)",
			entry.MorningCount, entry.EveningCount, entry.LateNightCount)
	}
}

func TestApplyCountsPartialUpdateLeavesOtherFields(t *testing.T) {
	entry := &model.DailyEntry{MorningCount: 20}
	req := &RecordEntryRequest{EveningCount: intPtr(15)}

	deduction := applyCounts(entry, req)

	if deduction != 15 {
		t.Errorf("deduction = %d, want 15 (only the submitted field)", deduction)
	}
	if entry.MorningCount != 20 {
		t.Errorf("morning count changed to %d, want untouched 20", entry.MorningCount)
	}
	if entry.EveningCount != 15 {
		t.Errorf("evening count = %d, want 15", entry.EveningCount)
	}
}

func TestApplyCountsOverwritesNotAdds(t *testing.T) {
	entry := &model.DailyEntry{MorningCount: 20}
	req := &RecordEntryRequest{MorningCount: intPtr(5)}

	deduction := applyCounts(entry, req)

	if entry.MorningCount != 5 {
		t.Errorf("morning count = %d, want full replacement 5", entry.MorningCount)
	}
	if deduction != 5 {
		t.Errorf("deduction = %d, want 5", deduction)
	}
}

// Resubmitting a field deducts its full value again, even unchanged. This
// allows unbounded over-deduction from repeated identical submissions; it
// matches the deployed accounting behavior, so the test pins it rather
// than the arguably correct diff-based deduction.
func TestApplyCountsRedeductsOnResubmission(t *testing.T) {
	entry := &model.DailyEntry{MorningCount: 20}
	req := &RecordEntryRequest{MorningCount: intPtr(20)}

	first := applyCounts(entry, req)
	second := applyCounts(entry, req)

	if first != 20 || second != 20 {
		t.Errorf("deductions = (%d, %d), want (20, 20): same-value resubmission re-deducts", first, second)
	}
}

func TestApplyCountsMultipleFields(t *testing.T) {
	entry := &model.DailyEntry{}
	req := &RecordEntryRequest{
		MorningCount:   intPtr(10),
		EveningCount:   intPtr(20),
		LateNightCount: intPtr(5),
	}

	if deduction := applyCounts(entry, req); deduction != 35 {
		t.Errorf("deduction = %d, want 35", deduction)
	}
	if entry.DailyTotal() != 35 {
		t.Errorf("daily total = %d, want 35", entry.DailyTotal())
	}
}

func TestClampStock(t *testing.T) {
	tests := []struct {
		name      string
		old       int
		deduction int
		want      int
	}{
		{"normal deduction", 100, 20, 80},
		{"exact depletion", 50, 50, 0},
		{"over-deduction clamps at zero", 10, 50, 0},
		{"already empty", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampStock(tt.old, tt.deduction); got != tt.want {
				t.Errorf("clampStock(%d, %d) = %d, want %d", tt.old, tt.deduction, got, tt.want)
			}
		})
	}
}

// Walks the end-to-end arithmetic of a day without a database: create with
// morning 20, then a second submission adding evening 15 must leave the
// morning count alone and deduct only 15 more.
func TestDayOfSubmissionsArithmetic(t *testing.T) {
	stock := 100
	entry := &model.DailyEntry{}

	first := applyCounts(entry, &RecordEntryRequest{MorningCount: intPtr(20)})
	stock = clampStock(stock, first)
	if first != 20 || stock != 80 {
		t.Fatalf("after first submission: deducted %d, stock %d; want 20, 80", first, stock)
	}

	second := applyCounts(entry, &RecordEntryRequest{EveningCount: intPtr(15)})
	stock = clampStock(stock, second)
	if second != 15 || stock != 65 {
		t.Fatalf("after second submission: deducted %d, stock %d; want 15, 65", second, stock)
	}
	if entry.MorningCount != 20 || entry.EveningCount != 15 {
		t.Fatalf("entry counts = (%d, %d), want (20, 15)", entry.MorningCount, entry.EveningCount)
	}
}
