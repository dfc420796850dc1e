package repository

import (
	"time"

	"go-production-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryRepository interface {
	// Transactional upsert primitives. The service decides create vs
	// update after looking the day up inside its transaction.
	FindForDay(tx *gorm.DB, productID uuid.UUID, day time.Time) (*model.DailyEntry, error)
	Create(tx *gorm.DB, entry *model.DailyEntry) error
	Save(tx *gorm.DB, entry *model.DailyEntry) error

	// Read paths for the daily sheet and the monthly report.
	FindByDate(day time.Time) ([]model.DailyEntry, error)
	FindByDateRange(start, end time.Time) ([]model.DailyEntry, error)

	// Aggregation for the dashboard movement chart.
	GetProductionMovement(start, end time.Time) ([]ProductionMovementData, error)
	ProducedBetween(start, end time.Time) (int64, error)
}

// ProductionMovementData is one chart point: total counts per shift for a day.
type ProductionMovementData struct {
	Date      string `json:"date"`
	Morning   int    `json:"morning"`
	Evening   int    `json:"evening"`
	LateNight int    `json:"late_night"`
}

type entryRepo struct {
	db *gorm.DB
}

func NewEntryRepo(db *gorm.DB) EntryRepository {
	return &entryRepo{db}
}

func (r *entryRepo) FindForDay(tx *gorm.DB, productID uuid.UUID, day time.Time) (*model.DailyEntry, error) {
	var entry model.DailyEntry
	err := tx.First(&entry, "product_id = ? AND date = ?", productID, day).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepo) Create(tx *gorm.DB, entry *model.DailyEntry) error {
	return tx.Create(entry).Error
}

func (r *entryRepo) Save(tx *gorm.DB, entry *model.DailyEntry) error {
	return tx.Save(entry).Error
}

func (r *entryRepo) FindByDate(day time.Time) ([]model.DailyEntry, error) {
	var entries []model.DailyEntry
	err := r.db.Preload("Product").
		Where("date = ?", day).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *entryRepo) FindByDateRange(start, end time.Time) ([]model.DailyEntry, error) {
	var entries []model.DailyEntry
	err := r.db.Preload("Product").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *entryRepo) GetProductionMovement(start, end time.Time) ([]ProductionMovementData, error) {
	var results []ProductionMovementData

	rows, err := r.db.Model(&model.DailyEntry{}).
		Select(`
			TO_CHAR(date, 'YYYY-MM-DD') as date,
			COALESCE(SUM(morning_count), 0) as morning,
			COALESCE(SUM(evening_count), 0) as evening,
			COALESCE(SUM(late_night_count), 0) as late_night
		`).
		Where("date BETWEEN ? AND ?", start, end).
		Group("date").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data ProductionMovementData
		if err := rows.Scan(&data.Date, &data.Morning, &data.Evening, &data.LateNight); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *entryRepo) ProducedBetween(start, end time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.DailyEntry{}).
		Where("date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(morning_count + evening_count + late_night_count), 0)").
		Scan(&total).Error
	return total, err
}
