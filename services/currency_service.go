package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/pricing"
)

var ErrCurrencyNotFound = errors.New("currency not found")

type CurrencyService struct {
	DB *gorm.DB
}

func NewCurrencyService(db *gorm.DB) *CurrencyService {
	return &CurrencyService{DB: db}
}

// SetExchangeRate updates the live rate and appends an immutable history
// row recording where the rate came from. History rows are never
// overwritten; the OTA sync and manual edits both land here.
func (cs *CurrencyService) SetExchangeRate(code string, rate decimal.Decimal, source string) error {
	if !rate.IsPositive() {
		return fmt.Errorf("exchange rate must be positive, got %s", rate)
	}

	return cs.DB.Transaction(func(tx *gorm.DB) error {
		var currency models.Currency
		if err := tx.Where("code = ?", strings.ToUpper(code)).First(&currency).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCurrencyNotFound
			}
			return err
		}
		if currency.IsDefault {
			return fmt.Errorf("the default currency's rate is fixed at 1")
		}

		if err := tx.Model(&currency).Update("exchange_rate", rate).Error; err != nil {
			return err
		}

		history := models.ExchangeRateHistory{
			CurrencyCode:  currency.Code,
			Rate:          rate,
			Source:        source,
			EffectiveDate: time.Now(),
		}
		return tx.Create(&history).Error
	})
}

// SetDefault makes one currency the base. Both flag flips happen in the
// same transaction so there is exactly one default at any observable
// moment; the new default's rate resets to 1.
func (cs *CurrencyService) SetDefault(code string) error {
	return cs.DB.Transaction(func(tx *gorm.DB) error {
		var currency models.Currency
		if err := tx.Where("code = ? AND is_active = ?", strings.ToUpper(code), true).First(&currency).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCurrencyNotFound
			}
			return err
		}

		if err := tx.Model(&models.Currency{}).Where("is_default = ?", true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&currency).Updates(map[string]interface{}{
			"is_default":    true,
			"exchange_rate": decimal.NewFromInt(1),
		}).Error
	})
}

// Convert builds the active currency table and converts through the base.
func (cs *CurrencyService) Convert(amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	var currencies []models.Currency
	if err := cs.DB.Where("is_active = ?", true).Find(&currencies).Error; err != nil {
		return decimal.Zero, err
	}
	return pricing.NewCurrencyTable(currencies).Convert(amount, fromCode, toCode)
}
