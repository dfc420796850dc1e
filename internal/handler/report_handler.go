package handler

import (
	"errors"
	"strconv"

	"go-production-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetMonthlyReport aggregates per-product production over a month or an
// explicit date range within it
// GET /api/v1/reports/monthly?month=&year=&start_date=&end_date=
func (h *ReportHandler) GetMonthlyReport(c *fiber.Ctx) error {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	params := service.ReportParams{
		Month:     month,
		Year:      year,
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	report, err := h.service.GetMonthlyReport(params)
	if err != nil {
		if errors.Is(err, service.ErrMonthYearRequired) || errors.Is(err, service.ErrInvalidRange) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
