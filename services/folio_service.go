package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/pricing"
)

var (
	ErrFolioNotOpen  = errors.New("folio is not open")
	ErrFolioNotFound = errors.New("folio not found")
)

// FolioService accumulates computed charges on a guest's running bill.
// Line items are written once; after the folio leaves the open state
// nothing on it changes again. Every mutation is guarded by a
// status = 'open' condition so a close racing a charge loses cleanly.
type FolioService struct {
	DB *gorm.DB
}

func NewFolioService(db *gorm.DB) *FolioService {
	return &FolioService{DB: db}
}

// Open starts a folio in the default currency unless one is given.
func (fs *FolioService) Open(guestName string, roomID *uint, currencyCode string) (*models.Folio, error) {
	if currencyCode == "" {
		var currency models.Currency
		if err := fs.DB.Where("is_default = ?", true).First(&currency).Error; err != nil {
			return nil, fmt.Errorf("no default currency configured: %w", err)
		}
		currencyCode = currency.Code
	}

	folio := models.Folio{
		Number:       uuid.NewString(),
		GuestName:    guestName,
		RoomID:       roomID,
		Status:       models.FolioOpen,
		CurrencyCode: currencyCode,
		Subtotal:     decimal.Zero,
		TaxTotal:     decimal.Zero,
		GrandTotal:   decimal.Zero,
		PaidAmount:   decimal.Zero,
	}
	if err := fs.DB.Create(&folio).Error; err != nil {
		return nil, err
	}
	return &folio, nil
}

// PostCharge computes taxes for the line's category, appends the line item
// and rolls the folio totals forward. Discount lines carry a negative
// amount and are never taxed.
func (fs *FolioService) PostCharge(folioID uint, description, category string, amount decimal.Decimal, date time.Time) (*models.FolioLineItem, error) {
	if !models.ValidLineCategory(category) {
		return nil, fmt.Errorf("unknown line category %q", category)
	}

	var line *models.FolioLineItem
	err := fs.DB.Transaction(func(tx *gorm.DB) error {
		folio, err := findFolio(tx, folioID)
		if err != nil {
			return err
		}
		if folio.Status != models.FolioOpen {
			return ErrFolioNotOpen
		}

		taxResult := pricing.TaxResult{TaxTotal: decimal.Zero, GrandTotal: amount}
		if category != models.LineDiscount {
			var taxes []models.Tax
			if err := tx.Where("is_active = ?", true).Order("sort_order ASC").Find(&taxes).Error; err != nil {
				return fmt.Errorf("loading taxes: %w", err)
			}
			taxResult, err = pricing.ApplyTaxes(amount, taxes, category, folioDecimalPlaces(tx, folio))
			if err != nil {
				return err
			}
		}

		breakdown, err := json.Marshal(taxResult.Breakdown)
		if err != nil {
			return err
		}

		line = &models.FolioLineItem{
			FolioID:      folio.ID,
			Description:  description,
			Category:     category,
			Amount:       amount,
			TaxAmount:    taxResult.TaxTotal,
			TaxBreakdown: datatypes.JSON(breakdown),
			Date:         date,
		}
		if err := tx.Create(line).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Folio{}).
			Where("id = ? AND status = ?", folio.ID, models.FolioOpen).
			Updates(map[string]interface{}{
				"subtotal":    gorm.Expr("subtotal + ?", amount),
				"tax_total":   gorm.Expr("tax_total + ?", taxResult.TaxTotal),
				"grand_total": gorm.Expr("grand_total + ? + ?", amount, taxResult.TaxTotal),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFolioNotOpen
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// RecordPayment adds to the paid amount of an open folio.
func (fs *FolioService) RecordPayment(folioID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("payment must be positive, got %s", amount)
	}
	res := fs.DB.Model(&models.Folio{}).
		Where("id = ? AND status = ?", folioID, models.FolioOpen).
		Update("paid_amount", gorm.Expr("paid_amount + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := findFolio(fs.DB, folioID); err != nil {
			return err
		}
		return ErrFolioNotOpen
	}
	return nil
}

// Close moves an open folio to closed. Irreversible.
func (fs *FolioService) Close(folioID uint) error {
	return fs.terminate(folioID, models.FolioClosed)
}

// Void cancels an open folio. Irreversible.
func (fs *FolioService) Void(folioID uint) error {
	return fs.terminate(folioID, models.FolioVoid)
}

func (fs *FolioService) terminate(folioID uint, status string) error {
	now := time.Now()
	res := fs.DB.Model(&models.Folio{}).
		Where("id = ? AND status = ?", folioID, models.FolioOpen).
		Updates(map[string]interface{}{"status": status, "closed_at": &now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := findFolio(fs.DB, folioID); err != nil {
			return err
		}
		return ErrFolioNotOpen
	}
	return nil
}

func findFolio(tx *gorm.DB, folioID uint) (*models.Folio, error) {
	var folio models.Folio
	if err := tx.First(&folio, folioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolioNotFound
		}
		return nil, err
	}
	return &folio, nil
}

func folioDecimalPlaces(tx *gorm.DB, folio *models.Folio) int32 {
	var currency models.Currency
	if err := tx.Where("code = ?", folio.CurrencyCode).First(&currency).Error; err != nil {
		return 2
	}
	return currency.DecimalPlaces
}
