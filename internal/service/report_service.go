package service

import (
	"errors"
	"time"

	"go-production-tracker/internal/model"
	"go-production-tracker/internal/repository"
	"go-production-tracker/internal/schedule"

	"github.com/google/uuid"
)

var (
	ErrMonthYearRequired = errors.New("month and year are required")
	ErrInvalidRange      = errors.New("invalid report date range")
)

// ReportParams selects the report range. Month and year are required;
// explicit start/end dates narrow the range within arbitrary bounds.
type ReportParams struct {
	Month     int
	Year      int
	StartDate string // optional, YYYY-MM-DD
	EndDate   string // optional, YYYY-MM-DD
}

// ReportEntry is one day's breakdown for a product.
type ReportEntry struct {
	Date           time.Time `json:"date"`
	MorningCount   int       `json:"morning_count"`
	EveningCount   int       `json:"evening_count"`
	LateNightCount int       `json:"late_night_count"`
	DailyTotal     int       `json:"daily_total"`
	EnteredBy      string    `json:"entered_by"`
}

// ProductReport folds a product's entries over the range.
type ProductReport struct {
	ProductName     string        `json:"product_name"`
	ProductID       uuid.UUID     `json:"product_id"`
	MonthlyTarget   int           `json:"monthly_target"`
	Entries         []ReportEntry `json:"entries"`
	TotalProduced   int           `json:"total_produced"`
	RemainingTarget int           `json:"remaining_target"`
}

type MonthlyReport struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Products []ProductReport `json:"products"`
}

type ReportService interface {
	GetMonthlyReport(params ReportParams) (*MonthlyReport, error)
}

type reportService struct {
	entryRepo repository.EntryRepository
}

func NewReportService(entryRepo repository.EntryRepository) ReportService {
	return &reportService{entryRepo: entryRepo}
}

func (s *reportService) GetMonthlyReport(params ReportParams) (*MonthlyReport, error) {
	start, end, err := resolveRange(params)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	return buildReport(entries, params.Month, params.Year), nil
}

// resolveRange turns the params into an inclusive [start, end] range:
// either the explicit dates (end pushed to end-of-day) or the full month.
func resolveRange(params ReportParams) (time.Time, time.Time, error) {
	if params.Month < 1 || params.Month > 12 || params.Year == 0 {
		return time.Time{}, time.Time{}, ErrMonthYearRequired
	}

	if params.StartDate != "" && params.EndDate != "" {
		start, err := time.ParseInLocation("2006-01-02", params.StartDate, schedule.Dhaka)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		end, err := time.ParseInLocation("2006-01-02", params.EndDate, schedule.Dhaka)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		return schedule.Day(start), schedule.Day(end).Add(24*time.Hour - time.Second), nil
	}

	start := time.Date(params.Year, time.Month(params.Month), 1, 0, 0, 0, 0, schedule.Dhaka)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

// buildReport groups date-ascending entries by product, keeping products
// in discovery order. Entries whose product has been deleted are skipped.
func buildReport(entries []model.DailyEntry, month, year int) *MonthlyReport {
	report := &MonthlyReport{
		Month:    month,
		Year:     year,
		Products: []ProductReport{},
	}

	index := make(map[uuid.UUID]int)

	for _, entry := range entries {
		if entry.Product == nil {
			continue
		}

		i, ok := index[entry.ProductID]
		if !ok {
			i = len(report.Products)
			index[entry.ProductID] = i
			report.Products = append(report.Products, ProductReport{
				ProductName:   entry.Product.Name,
				ProductID:     entry.ProductID,
				MonthlyTarget: entry.Product.MonthlyTarget,
				Entries:       []ReportEntry{},
			})
		}

		report.Products[i].Entries = append(report.Products[i].Entries, ReportEntry{
			Date:           entry.Date,
			MorningCount:   entry.MorningCount,
			EveningCount:   entry.EveningCount,
			LateNightCount: entry.LateNightCount,
			DailyTotal:     entry.DailyTotal(),
			EnteredBy:      entry.EnteredBy,
		})
	}

	for i := range report.Products {
		total := 0
		for _, e := range report.Products[i].Entries {
			total += e.DailyTotal
		}
		report.Products[i].TotalProduced = total

		remaining := report.Products[i].MonthlyTarget - total
		if remaining < 0 {
			remaining = 0
		}
		report.Products[i].RemainingTarget = remaining
	}

	return report
}
