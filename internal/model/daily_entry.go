package model

import (
	"time"

	"github.com/google/uuid"
)

// DailyEntry holds the production counts submitted for one product on one
// calendar day. Date is normalized to midnight of the operative time zone
// before storage; the composite unique index enforces at most one entry
// per (product, day).
type DailyEntry struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_product_date" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Date time.Time `gorm:"type:date;not null;uniqueIndex:idx_entry_product_date" json:"date"`

	MorningCount   int `gorm:"not null;default:0" json:"morning_count"`
	EveningCount   int `gorm:"not null;default:0" json:"evening_count"`
	LateNightCount int `gorm:"not null;default:0" json:"late_night_count"`

	EnteredBy string `gorm:"type:varchar(255);not null" json:"entered_by"`
}

func (DailyEntry) TableName() string {
	return "daily_entries"
}

// DailyTotal is the sum of the three shift counts.
func (e *DailyEntry) DailyTotal() int {
	return e.MorningCount + e.EveningCount + e.LateNightCount
}
