package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SeasonalRate struct {
	gorm.Model
	RoomTypeID    uint            `json:"roomTypeId" gorm:"index;not null"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null"`
	StartDate     time.Time       `json:"startDate" gorm:"type:date;not null;index"`
	EndDate       time.Time       `json:"endDate" gorm:"type:date;not null;index"`
	ModifierType  string          `json:"modifierType" gorm:"type:varchar(20);not null"` // percentage, fixed, absolute
	ModifierValue decimal.Decimal `json:"modifierValue" gorm:"type:decimal(12,4);not null"`
	Priority      int             `json:"priority" gorm:"default:0;index"`
	MinStay       int             `json:"minStay" gorm:"default:0"`
	Status        string          `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive
	RoomType      RoomType        `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID;references:ID"`
}
