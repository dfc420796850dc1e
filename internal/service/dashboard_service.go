package service

import (
	"time"

	"go-production-tracker/internal/repository"
	"go-production-tracker/internal/schedule"
)

// DashboardStats is the overview card data for the daily sheet landing page.
type DashboardStats struct {
	ProducedToday int64 `json:"produced_today"`
	ProducedMonth int64 `json:"produced_month"`
}

type DashboardService interface {
	GetProductionMovement(days int) ([]repository.ProductionMovementData, error)
	GetStats() (*DashboardStats, error)
}

type dashboardService struct {
	entryRepo repository.EntryRepository
	clock     schedule.Clock
}

func NewDashboardService(entryRepo repository.EntryRepository, clock schedule.Clock) DashboardService {
	if clock == nil {
		clock = schedule.Now
	}
	return &dashboardService{entryRepo: entryRepo, clock: clock}
}

func (s *dashboardService) GetProductionMovement(days int) ([]repository.ProductionMovementData, error) {
	end := schedule.Day(s.clock()).Add(24*time.Hour - time.Second)
	start := schedule.Day(s.clock()).AddDate(0, 0, -days)

	return s.entryRepo.GetProductionMovement(start, end)
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	now := s.clock()
	today := schedule.Day(now)

	producedToday, err := s.entryRepo.ProducedBetween(today, today.Add(24*time.Hour-time.Second))
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, schedule.Dhaka)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)
	producedMonth, err := s.entryRepo.ProducedBetween(monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		ProducedToday: producedToday,
		ProducedMonth: producedMonth,
	}, nil
}
