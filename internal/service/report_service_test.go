package service

import (
	"errors"
	"testing"
	"time"

	"go-production-tracker/internal/model"
	"go-production-tracker/internal/schedule"

	"github.com/google/uuid"
)

func reportEntry(product *model.Product, day int, morning, evening, lateNight int) model.DailyEntry {
	entry := model.DailyEntry{
		ProductID:      product.ID,
		Product:        product,
		Date:           time.Date(2025, 3, day, 0, 0, 0, 0, schedule.Dhaka),
		MorningCount:   morning,
		EveningCount:   evening,
		LateNightCount: lateNight,
		EnteredBy:      "worker",
	}
	return entry
}

func reportProduct(name string, target int) *model.Product {
	p := &model.Product{
		Name:          name,
		Team:          model.TeamVideo,
		MonthlyTarget: target,
	}
	p.ID = uuid.New()
	return p
}

func TestBuildReportTotals(t *testing.T) {
	product := reportProduct("Widget", 100)
	entries := []model.DailyEntry{
		reportEntry(product, 1, 10, 20, 0),
		reportEntry(product, 2, 5, 0, 0),
	}

	report := buildReport(entries, 3, 2025)

	if report.Month != 3 || report.Year != 2025 {
		t.Errorf("report period = %d/%d, want 3/2025", report.Month, report.Year)
	}
	if len(report.Products) != 1 {
		t.Fatalf("got %d products, want 1", len(report.Products))
	}

	p := report.Products[0]
	if p.TotalProduced != 35 {
		t.Errorf("total produced = %d, want 35", p.TotalProduced)
	}
	if p.RemainingTarget != 65 {
		t.Errorf("remaining target = %d, want 65", p.RemainingTarget)
	}
	if len(p.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(p.Entries))
	}
	if p.Entries[0].DailyTotal != 30 || p.Entries[1].DailyTotal != 5 {
		t.Errorf("daily totals = (%d, %d), want (30, 5)",
			p.Entries[0].DailyTotal, p.Entries[1].DailyTotal)
	}
}

func TestBuildReportRemainingTargetClampsAtZero(t *testing.T) {
	product := reportProduct("Overachiever", 20)
	entries := []model.DailyEntry{
		reportEntry(product, 1, 30, 0, 0),
	}

	report := buildReport(entries, 3, 2025)

	if got := report.Products[0].RemainingTarget; got != 0 {
		t.Errorf("remaining target = %d, want 0 when production exceeds target", got)
	}
}

func TestBuildReportDiscoveryOrder(t *testing.T) {
	first := reportProduct("First Seen", 50)
	second := reportProduct("Second Seen", 50)

	// Date-ascending input interleaves the products; grouping keeps
	// first-seen order.
	entries := []model.DailyEntry{
		reportEntry(first, 1, 1, 0, 0),
		reportEntry(second, 2, 2, 0, 0),
		reportEntry(first, 3, 3, 0, 0),
	}

	report := buildReport(entries, 3, 2025)

	if len(report.Products) != 2 {
		t.Fatalf("got %d products, want 2", len(report.Products))
	}
	if report.Products[0].ProductName != "First Seen" || report.Products[1].ProductName != "Second Seen" {
		t.Errorf("order = (%s, %s), want discovery order",
			report.Products[0].ProductName, report.Products[1].ProductName)
	}
	if report.Products[0].TotalProduced != 4 {
		t.Errorf("first product total = %d, want 4", report.Products[0].TotalProduced)
	}
}

func TestBuildReportSkipsMissingProduct(t *testing.T) {
	product := reportProduct("Survivor", 50)
	orphan := model.DailyEntry{
		ProductID:    uuid.New(),
		Product:      nil, // product deleted since the entry was recorded
		Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, schedule.Dhaka),
		MorningCount: 99,
	}

	entries := []model.DailyEntry{
		orphan,
		reportEntry(product, 2, 10, 0, 0),
	}

	report := buildReport(entries, 3, 2025)

	if len(report.Products) != 1 {
		t.Fatalf("got %d products, want 1 (orphan skipped)", len(report.Products))
	}
	if report.Products[0].ProductName != "Survivor" {
		t.Errorf("kept product = %s, want Survivor", report.Products[0].ProductName)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	report := buildReport(nil, 3, 2025)
	if report.Products == nil || len(report.Products) != 0 {
		t.Errorf("empty range should yield an empty (non-nil) product list, got %v", report.Products)
	}
}

func TestResolveRangeFullMonth(t *testing.T) {
	start, end, err := resolveRange(ReportParams{Month: 2, Year: 2025})
	if err != nil {
		t.Fatalf("resolveRange failed: %v", err)
	}

	if start.Day() != 1 || start.Month() != time.February {
		t.Errorf("start = %v, want 2025-02-01", start)
	}
	// February 2025 has 28 days.
	if end.Day() != 28 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("end = %v, want 2025-02-28 end of day", end)
	}
}

func TestResolveRangeExplicitDates(t *testing.T) {
	start, end, err := resolveRange(ReportParams{
		Month:     3,
		Year:      2025,
		StartDate: "2025-03-05",
		EndDate:   "2025-03-12",
	})
	if err != nil {
		t.Fatalf("resolveRange failed: %v", err)
	}

	if start.Day() != 5 {
		t.Errorf("start day = %d, want 5", start.Day())
	}
	if end.Day() != 12 || end.Hour() != 23 {
		t.Errorf("end = %v, want end of March 12", end)
	}
}

func TestResolveRangeErrors(t *testing.T) {
	if _, _, err := resolveRange(ReportParams{Month: 0, Year: 2025}); !errors.Is(err, ErrMonthYearRequired) {
		t.Errorf("missing month = %v, want ErrMonthYearRequired", err)
	}
	if _, _, err := resolveRange(ReportParams{Month: 3, Year: 0}); !errors.Is(err, ErrMonthYearRequired) {
		t.Errorf("missing year = %v, want ErrMonthYearRequired", err)
	}

	_, _, err := resolveRange(ReportParams{
		Month: 3, Year: 2025,
		StartDate: "2025-03-12", EndDate: "2025-03-05",
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range = %v, want ErrInvalidRange", err)
	}

	_, _, err = resolveRange(ReportParams{
		Month: 3, Year: 2025,
		StartDate: "not-a-date", EndDate: "2025-03-05",
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("malformed date = %v, want ErrInvalidRange", err)
	}
}
