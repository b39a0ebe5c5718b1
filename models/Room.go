package models

import (
	"gorm.io/gorm"
)

// Housekeeping states a room cycles through between stays.
const (
	HousekeepingDirty     = "dirty"
	HousekeepingClean     = "clean"
	HousekeepingInspected = "inspected"
)

type Room struct {
	gorm.Model
	RoomTypeID          uint     `json:"roomTypeId" gorm:"index;not null"`
	Number              string   `json:"number" gorm:"type:varchar(20);uniqueIndex;not null"`
	Floor               int      `json:"floor"`
	HousekeepingStatus  string   `json:"housekeepingStatus" gorm:"type:varchar(20);default:'clean';index"` // dirty, clean, inspected
	Status              string   `json:"status" gorm:"type:varchar(20);default:'available';index"`         // available, occupied, out_of_order
	Notes               string   `json:"notes" gorm:"type:text"`
	RoomType            RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID;references:ID"`
}

// ValidHousekeepingStatus reports whether s is one of the closed set of
// housekeeping states. Status strings arrive from the admin UI, so the
// handlers gate on this before persisting.
func ValidHousekeepingStatus(s string) bool {
	switch s {
	case HousekeepingDirty, HousekeepingClean, HousekeepingInspected:
		return true
	}
	return false
}
