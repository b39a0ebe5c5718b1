package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventOverride is the strongest rate rule, used for conference weekends,
// holidays and similar one-off windows. RoomTypeID nil means all room types.
type EventOverride struct {
	gorm.Model
	Name          string          `json:"name" gorm:"type:varchar(100);not null"`
	RoomTypeID    *uint           `json:"roomTypeId" gorm:"index"`
	StartDate     time.Time       `json:"startDate" gorm:"type:date;not null;index"`
	EndDate       time.Time       `json:"endDate" gorm:"type:date;not null;index"`
	ModifierType  string          `json:"modifierType" gorm:"type:varchar(20);not null"` // percentage, fixed, absolute
	ModifierValue decimal.Decimal `json:"modifierValue" gorm:"type:decimal(12,4);not null"`
	Priority      int             `json:"priority" gorm:"default:0;index"`
	Status        string          `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive
	Metadata      datatypes.JSON  `json:"metadata" gorm:"type:jsonb"` // free-form event details for the admin UI
}
