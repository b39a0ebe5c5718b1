package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomType struct {
	gorm.Model
	Name         string          `json:"name" gorm:"type:varchar(100);not null"`
	Code         string          `json:"code" gorm:"type:varchar(30);uniqueIndex;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	BaseRate     decimal.Decimal `json:"baseRate" gorm:"type:decimal(12,4);not null"`
	MaxOccupancy int             `json:"maxOccupancy" gorm:"default:2"`
	TotalRooms   int             `json:"totalRooms" gorm:"default:0"`
	Status       string          `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive
	Rooms        []Room          `json:"rooms,omitempty"`
}
