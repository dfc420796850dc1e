package handler

import (
	"errors"

	"go-production-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EntryHandler struct {
	service service.EntryService
}

func NewEntryHandler(s service.EntryService) *EntryHandler {
	return &EntryHandler{service: s}
}

// RecordEntry submits shift counts for a product on the current day
// POST /api/v1/entries
func (h *EntryHandler) RecordEntry(c *fiber.Ctx) error {
	var req service.RecordEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.RecordEntry(&req, getUserName(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":        true,
		"entry":          result.Entry,
		"product":        result.Product,
		"stock_deducted": result.StockDeducted,
	})
}

// GetEntries returns the entries for one day (today by default)
// GET /api/v1/entries?date=YYYY-MM-DD
func (h *EntryHandler) GetEntries(c *fiber.Ctx) error {
	entries, err := h.service.GetEntriesByDate(c.Query("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// ShiftStatus reports the active shift and editable fields
// GET /api/v1/shifts/status
func (h *EntryHandler) ShiftStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.ShiftStatus())
}
