package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/onabhani/Nozule-Suite-sub000/models"
	"github.com/onabhani/Nozule-Suite-sub000/pricing"
)

var bgContext = context.Background()

// QuoteService loads the active rule rows for a night and runs the pricing
// pipeline over them. Rules are referenced, never mutated, at quote time.
type QuoteService struct {
	DB    *gorm.DB
	Cache *redis.Client // optional; nil disables quote caching
}

func NewQuoteService(db *gorm.DB, cache *redis.Client) *QuoteService {
	return &QuoteService{DB: db, Cache: cache}
}

const quoteCacheTTL = 60 * time.Second

// LoadRuleSet fetches every active rule that could touch the given date.
// Date filtering for seasonal/event rules happens here to keep the rows
// fetched small; the resolver re-checks everything anyway.
func (qs *QuoteService) LoadRuleSet(d time.Time) (pricing.RuleSet, error) {
	var rs pricing.RuleSet

	if err := qs.DB.Where("status = ?", "active").Find(&rs.RatePlans).Error; err != nil {
		return rs, fmt.Errorf("loading rate plans: %w", err)
	}
	if err := qs.DB.Where("status = ? AND start_date <= ? AND end_date >= ?", "active", d, d).Find(&rs.SeasonalRates).Error; err != nil {
		return rs, fmt.Errorf("loading seasonal rates: %w", err)
	}
	if err := qs.DB.Where("status = ?", "active").Find(&rs.DowRules).Error; err != nil {
		return rs, fmt.Errorf("loading day-of-week rules: %w", err)
	}
	if err := qs.DB.Where("status = ?", "active").Find(&rs.OccupancyRules).Error; err != nil {
		return rs, fmt.Errorf("loading occupancy rules: %w", err)
	}
	if err := qs.DB.Where("status = ? AND start_date <= ? AND end_date >= ?", "active", d, d).Find(&rs.EventOverrides).Error; err != nil {
		return rs, fmt.Errorf("loading event overrides: %w", err)
	}

	return rs, nil
}

// OccupancyPercent derives property occupancy from room statuses. The
// nightly forecast job may later replace this with date-aware inventory.
func (qs *QuoteService) OccupancyPercent() (int, error) {
	var total, occupied int64
	if err := qs.DB.Model(&models.Room{}).Where("status <> ?", "out_of_order").Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := qs.DB.Model(&models.Room{}).Where("status = ?", "occupied").Count(&occupied).Error; err != nil {
		return 0, err
	}
	return int(occupied * 100 / total), nil
}

// QuoteStay prices each night of the stay and sums the result. Every quote
// carries its own modifier/tax breakdown for the booking screen.
func (qs *QuoteService) QuoteStay(checkIn time.Time, nights int, roomTypeID uint) ([]pricing.Quote, error) {
	if nights < 1 {
		return nil, fmt.Errorf("stay must be at least one night")
	}

	var roomType models.RoomType
	if err := qs.DB.First(&roomType, roomTypeID).Error; err != nil {
		return nil, fmt.Errorf("room type %d: %w", roomTypeID, err)
	}

	currency, err := qs.defaultCurrency()
	if err != nil {
		return nil, err
	}

	occupancy, err := qs.OccupancyPercent()
	if err != nil {
		return nil, fmt.Errorf("computing occupancy: %w", err)
	}

	knownRoomTypes, err := qs.knownRoomTypes()
	if err != nil {
		return nil, err
	}

	var taxes []models.Tax
	if err := qs.DB.Where("is_active = ?", true).Order("sort_order ASC").Find(&taxes).Error; err != nil {
		return nil, fmt.Errorf("loading taxes: %w", err)
	}

	quotes := make([]pricing.Quote, 0, nights)
	for i := 0; i < nights; i++ {
		night := checkIn.AddDate(0, 0, i)

		if cached, ok := qs.cachedQuote(night, nights, roomTypeID, occupancy); ok {
			quotes = append(quotes, cached)
			continue
		}

		rs, err := qs.LoadRuleSet(night)
		if err != nil {
			return nil, err
		}

		in := pricing.ResolveInput{
			Date:             night,
			RoomTypeID:       roomTypeID,
			OccupancyPercent: occupancy,
			Nights:           nights,
			KnownRoomTypes:   knownRoomTypes,
		}
		q, err := pricing.QuoteNight(rs, taxes, in, roomType.BaseRate, currency.Code, currency.DecimalPlaces)
		if err != nil {
			return nil, err
		}
		for _, w := range q.Warnings {
			log.Printf("quote warning (room type %d, %s): %s", roomTypeID, night.Format("2006-01-02"), w)
		}

		qs.storeQuote(night, nights, roomTypeID, occupancy, q)
		quotes = append(quotes, q)
	}

	return quotes, nil
}

func (qs *QuoteService) defaultCurrency() (models.Currency, error) {
	var currency models.Currency
	if err := qs.DB.Where("is_default = ? AND is_active = ?", true, true).First(&currency).Error; err != nil {
		return currency, fmt.Errorf("no default currency configured: %w", err)
	}
	return currency, nil
}

func (qs *QuoteService) knownRoomTypes() (map[uint]bool, error) {
	var ids []uint
	if err := qs.DB.Model(&models.RoomType{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("loading room types: %w", err)
	}
	known := make(map[uint]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return known, nil
}

func quoteCacheKey(night time.Time, nights int, roomTypeID uint, occupancy int) string {
	return fmt.Sprintf("quote:%d:%s:%d:%d", roomTypeID, night.Format("2006-01-02"), nights, occupancy)
}

func (qs *QuoteService) cachedQuote(night time.Time, nights int, roomTypeID uint, occupancy int) (pricing.Quote, bool) {
	var q pricing.Quote
	if qs.Cache == nil {
		return q, false
	}
	raw, err := qs.Cache.Get(bgContext, quoteCacheKey(night, nights, roomTypeID, occupancy)).Result()
	if err != nil {
		return q, false
	}
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return q, false
	}
	return q, true
}

func (qs *QuoteService) storeQuote(night time.Time, nights int, roomTypeID uint, occupancy int, q pricing.Quote) {
	if qs.Cache == nil {
		return
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	qs.Cache.Set(bgContext, quoteCacheKey(night, nights, roomTypeID, occupancy), raw, quoteCacheTTL)
}
