package model

import (
	"time"
)

type Team string

const (
	TeamVideo  Team = "VIDEO"
	TeamPortal Team = "PORTAL"
)

// ValidTeam reports whether t is one of the known production teams.
func ValidTeam(t Team) bool {
	return t == TeamVideo || t == TeamPortal
}

// Product is a production item with a monthly goal and a running stock
// counter. RemainingStock is decremented by the entry service as shift
// counts are submitted and is clamped at zero, never negative.
type Product struct {
	BaseModel
	Name           string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Brand          string `gorm:"type:varchar(255)" json:"brand"`
	Team           Team   `gorm:"type:varchar(10);not null;index" json:"team" validate:"required,oneof=VIDEO PORTAL"`
	MonthlyTarget  int    `gorm:"not null;default:0" json:"monthly_target" validate:"gte=0"`
	RemainingStock int    `gorm:"not null;default:0" json:"remaining_stock" validate:"gte=0"`

	// Optional fixed production window, used for the daily target suggestion.
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	Entries []DailyEntry `json:"entries,omitempty"`
}

// ProductResponse is the daily-sheet view of a product: the stored fields
// plus the suggested per-shift daily target computed for today.
type ProductResponse struct {
	Product
	DailyTarget int `json:"daily_target"`
}
