package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-production-tracker/internal/model"
	"go-production-tracker/internal/repository"
	"go-production-tracker/internal/schedule"
	"go-production-tracker/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEnteredByRequired = errors.New("product ID and entered_by are required")
	ErrNoCountProvided   = errors.New("at least one count field must be provided")
	ErrAllCountsZero     = errors.New("at least one count must be greater than 0")
	ErrNegativeCount     = errors.New("counts cannot be negative")
	ErrWindowClosed      = errors.New("shift field is outside its editable window")
	ErrInvalidDate       = errors.New("invalid date format, use YYYY-MM-DD")
)

// RecordEntryRequest carries the submitted shift counts. Pointer fields
// distinguish "not submitted" from an explicit zero: only present fields
// are written to the day's entry and only they count toward the deduction.
type RecordEntryRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	MorningCount   *int   `json:"morning_count"`
	EveningCount   *int   `json:"evening_count"`
	LateNightCount *int   `json:"late_night_count"`
}

// RecordEntryResult mirrors the submission response: the persisted entry,
// the product after the deduction (nil if the product is gone) and the
// amount actually subtracted from its stock.
type RecordEntryResult struct {
	Entry         *model.DailyEntry `json:"entry"`
	Product       *model.Product    `json:"product"`
	StockDeducted int               `json:"stock_deducted"`
}

// ShiftStatusResponse tells the daily sheet which shift is running and
// which fields accept input right now.
type ShiftStatusResponse struct {
	CurrentShift schedule.Shift          `json:"current_shift"`
	Editable     schedule.EditableFields `json:"editable"`
	ServerTime   time.Time               `json:"server_time"`
}

type EntryService interface {
	RecordEntry(req *RecordEntryRequest, enteredBy string) (*RecordEntryResult, error)
	GetEntriesByDate(dateStr string) ([]model.DailyEntry, error)
	ShiftStatus() ShiftStatusResponse
}

type entryService struct {
	productRepo repository.ProductRepository
	entryRepo   repository.EntryRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	clock       schedule.Clock
}

func NewEntryService(pRepo repository.ProductRepository, eRepo repository.EntryRepository, db *gorm.DB, hub *ws.Hub, clock schedule.Clock) EntryService {
	if clock == nil {
		clock = schedule.Now
	}
	return &entryService{
		productRepo: pRepo,
		entryRepo:   eRepo,
		db:          db,
		wsHub:       hub,
		clock:       clock,
	}
}

// validateCounts enforces the submission constraints: at least one field
// present, no negative values, and at least one present value above zero.
func validateCounts(req *RecordEntryRequest) error {
	present := 0
	positive := 0
	for _, c := range []*int{req.MorningCount, req.EveningCount, req.LateNightCount} {
		if c == nil {
			continue
		}
		present++
		if *c < 0 {
			return ErrNegativeCount
		}
		if *c > 0 {
			positive++
		}
	}
	if present == 0 {
		return ErrNoCountProvided
	}
	if positive == 0 {
		return ErrAllCountsZero
	}
	return nil
}

// checkWindows rejects any present field whose editable window is closed
// at submission time. The frontend disables closed fields, but the server
// enforces the same rule.
func checkWindows(req *RecordEntryRequest, fields schedule.EditableFields) error {
	if req.MorningCount != nil && !fields.Morning {
		return fmt.Errorf("%w: morning", ErrWindowClosed)
	}
	if req.EveningCount != nil && !fields.Evening {
		return fmt.Errorf("%w: evening", ErrWindowClosed)
	}
	if req.LateNightCount != nil && !fields.LateNight {
		return fmt.Errorf("%w: late night", ErrWindowClosed)
	}
	return nil
}

// applyCounts overwrites the entry's counts with the present fields and
// returns the stock deduction for this submission: the sum of the present
// values. Absent fields keep their stored value and deduct nothing.
//
// Note this is a full re-deduction, not a diff: resubmitting a field
// deducts its whole new value again even if the value is unchanged. That
// matches the deployed accounting behavior and is pinned by tests.
func applyCounts(entry *model.DailyEntry, req *RecordEntryRequest) int {
	deduction := 0
	if req.MorningCount != nil {
		entry.MorningCount = *req.MorningCount
		deduction += *req.MorningCount
	}
	if req.EveningCount != nil {
		entry.EveningCount = *req.EveningCount
		deduction += *req.EveningCount
	}
	if req.LateNightCount != nil {
		entry.LateNightCount = *req.LateNightCount
		deduction += *req.LateNightCount
	}
	return deduction
}

// clampStock applies a deduction without letting the stock go negative.
// Over-deduction is silently absorbed.
func clampStock(oldStock, deduction int) int {
	newStock := oldStock - deduction
	if newStock < 0 {
		return 0
	}
	return newStock
}

// RecordEntry upserts today's entry for a product and deducts the
// submitted counts from its remaining stock, all in one transaction with
// the product row locked so concurrent submissions serialize.
func (s *entryService) RecordEntry(req *RecordEntryRequest, enteredBy string) (*RecordEntryResult, error) {
	if req.ProductID == "" || enteredBy == "" {
		return nil, ErrEnteredByRequired
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product ID")
	}

	if err := validateCounts(req); err != nil {
		return nil, err
	}

	now := s.clock()
	if err := checkWindows(req, schedule.Editable(now)); err != nil {
		return nil, err
	}

	day := schedule.Day(now)

	result := &RecordEntryResult{}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.entryRepo.FindForDay(tx, productID, day)
		switch {
		case err == nil:
			// Update path: overwrite only the submitted fields.
			result.StockDeducted = applyCounts(entry, req)
			entry.EnteredBy = enteredBy
			entry.UpdatedBy = enteredBy
			if err := s.entryRepo.Save(tx, entry); err != nil {
				return err
			}
			result.Entry = entry

		case errors.Is(err, gorm.ErrRecordNotFound):
			entry = &model.DailyEntry{
				ProductID: productID,
				Date:      day,
				EnteredBy: enteredBy,
			}
			entry.CreatedBy = enteredBy
			entry.UpdatedBy = enteredBy
			result.StockDeducted = applyCounts(entry, req)

			if err := s.entryRepo.Create(tx, entry); err != nil {
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				// Lost the first-insert race on (product_id, date):
				// retry as an update of the winner's row.
				existing, findErr := s.entryRepo.FindForDay(tx, productID, day)
				if findErr != nil {
					return findErr
				}
				result.StockDeducted = applyCounts(existing, req)
				existing.EnteredBy = enteredBy
				existing.UpdatedBy = enteredBy
				if err := s.entryRepo.Save(tx, existing); err != nil {
					return err
				}
				entry = existing
			}
			result.Entry = entry

		default:
			return err
		}

		// Deduct from stock. A missing product is not an error: the entry
		// stays recorded and the deduction is simply skipped.
		product, err := s.productRepo.LockByID(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if result.StockDeducted > 0 {
			newStock := clampStock(product.RemainingStock, result.StockDeducted)
			if err := s.productRepo.UpdateRemainingStock(tx, product.ID, newStock, enteredBy); err != nil {
				return err
			}
			product.RemainingStock = newStock
		}
		result.Product = product

		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.broadcastEntryRecorded(result, enteredBy)

	return result, nil
}

// GetEntriesByDate returns the entries for one calendar day, today when
// dateStr is empty.
func (s *entryService) GetEntriesByDate(dateStr string) ([]model.DailyEntry, error) {
	day := schedule.Day(s.clock())
	if dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, schedule.Dhaka)
		if err != nil {
			return nil, ErrInvalidDate
		}
		day = schedule.Day(parsed)
	}
	return s.entryRepo.FindByDate(day)
}

func (s *entryService) ShiftStatus() ShiftStatusResponse {
	now := s.clock()
	return ShiftStatusResponse{
		CurrentShift: schedule.CurrentShift(now),
		Editable:     schedule.Editable(now),
		ServerTime:   now,
	}
}

func (s *entryService) broadcastEntryRecorded(result *RecordEntryResult, enteredBy string) {
	payload := map[string]interface{}{
		"type":   "production_update",
		"action": "entry_recorded",
		"entry": map[string]interface{}{
			"id":               result.Entry.ID,
			"product_id":       result.Entry.ProductID,
			"date":             result.Entry.Date.Format("2006-01-02"),
			"morning_count":    result.Entry.MorningCount,
			"evening_count":    result.Entry.EveningCount,
			"late_night_count": result.Entry.LateNightCount,
			"daily_total":      result.Entry.DailyTotal(),
		},
		"stock_deducted": result.StockDeducted,
		"message":        fmt.Sprintf("%s recorded production counts", enteredBy),
	}
	if result.Product != nil {
		payload["product"] = map[string]interface{}{
			"id":              result.Product.ID,
			"name":            result.Product.Name,
			"team":            result.Product.Team,
			"remaining_stock": result.Product.RemainingStock,
		}
	}
	msg, _ := json.Marshal(payload)
	s.wsHub.Broadcast <- msg
}
