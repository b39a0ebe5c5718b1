package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Folio states. Closed and void are terminal; only an open folio accepts
// new line items or payments.
const (
	FolioOpen   = "open"
	FolioClosed = "closed"
	FolioVoid   = "void"
)

// Charge categories a folio line item can carry. Discount lines hold the
// (negative) promo/loyalty adjustments.
const (
	LineRoomCharge = "room_charge"
	LineExtra      = "extra"
	LineService    = "service"
	LineDiscount   = "discount"
)

type Folio struct {
	gorm.Model
	Number       string          `json:"number" gorm:"type:varchar(36);uniqueIndex;not null"`
	GuestName    string          `json:"guestName" gorm:"type:varchar(100);not null"`
	RoomID       *uint           `json:"roomId" gorm:"index"`
	Status       string          `json:"status" gorm:"type:varchar(20);default:'open';index"` // open, closed, void
	CurrencyCode string          `json:"currencyCode" gorm:"type:varchar(3);not null"`
	Subtotal     decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,4);default:0"`
	TaxTotal     decimal.Decimal `json:"taxTotal" gorm:"type:decimal(12,4);default:0"`
	GrandTotal   decimal.Decimal `json:"grandTotal" gorm:"type:decimal(12,4);default:0"`
	PaidAmount   decimal.Decimal `json:"paidAmount" gorm:"type:decimal(12,4);default:0"`
	ClosedAt     *time.Time      `json:"closedAt"`
	LineItems    []FolioLineItem `json:"lineItems,omitempty"`
	Room         *Room           `json:"room,omitempty" gorm:"foreignKey:RoomID;references:ID"`
}

// Balance is derived, never stored.
func (f *Folio) Balance() decimal.Decimal {
	return f.GrandTotal.Sub(f.PaidAmount)
}

func ValidLineCategory(s string) bool {
	switch s {
	case LineRoomCharge, LineExtra, LineService, LineDiscount:
		return true
	}
	return false
}

type FolioLineItem struct {
	gorm.Model
	FolioID      uint            `json:"folioId" gorm:"index;not null"`
	Description  string          `json:"description" gorm:"type:varchar(255);not null"`
	Category     string          `json:"category" gorm:"type:varchar(20);not null"` // room_charge, extra, service, discount
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,4);not null"`
	TaxAmount    decimal.Decimal `json:"taxAmount" gorm:"type:decimal(12,4);default:0"`
	TaxBreakdown datatypes.JSON  `json:"taxBreakdown" gorm:"type:jsonb"` // per-tax amounts for the folio Tax column
	Date         time.Time       `json:"date" gorm:"type:date;not null"`
}

// Custom marshaling so the jsonb breakdown comes out as an object, not a
// base64 string.
func (li *FolioLineItem) MarshalJSON() ([]byte, error) {
	type Alias FolioLineItem
	aux := &struct {
		TaxBreakdown json.RawMessage `json:"taxBreakdown,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(li),
	}
	if len(li.TaxBreakdown) > 0 {
		aux.TaxBreakdown = json.RawMessage(li.TaxBreakdown)
	}
	return json.Marshal(aux)
}
