// Package pricing implements the rate computation pipeline: modifier
// resolution, price composition, tax application, promo/loyalty discounts
// and currency conversion. Everything here is a pure function over the
// rule rows the caller fetched; nothing touches storage.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

// Source identifies which rule category produced a modifier. Categories
// are ranked by specificity: an event override beats a seasonal rate,
// which beats a day-of-week rule, and so on down to the rate plan.
type Source string

const (
	SourceEvent     Source = "event"
	SourceSeasonal  Source = "seasonal"
	SourceDow       Source = "dow"
	SourceOccupancy Source = "occupancy"
	SourceRatePlan  Source = "rate_plan"
)

// specificity rank, lower wins. Unknown sources sort last.
func (s Source) rank() int {
	switch s {
	case SourceEvent:
		return 0
	case SourceSeasonal:
		return 1
	case SourceDow:
		return 2
	case SourceOccupancy:
		return 3
	case SourceRatePlan:
		return 4
	}
	return 5
}

// Modifier is one resolved rate adjustment, detached from the row that
// produced it.
type Modifier struct {
	Source   Source          `json:"source"`
	RuleID   uint            `json:"ruleId"`
	Label    string          `json:"label"`
	Type     string          `json:"type"` // percentage, fixed, absolute
	Value    decimal.Decimal `json:"value"`
	Priority int             `json:"priority"`
}

// RuleSet carries every candidate rule for one resolution pass. The
// service layer fills it from the database; tests fill it by hand.
type RuleSet struct {
	RatePlans      []models.RatePlan
	SeasonalRates  []models.SeasonalRate
	DowRules       []models.DowRule
	OccupancyRules []models.OccupancyRule
	EventOverrides []models.EventOverride
}

// TaxLine is one tax's contribution, itemized for the folio Tax column.
type TaxLine struct {
	TaxID  uint            `json:"taxId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// TaxResult is the output of ApplyTaxes.
type TaxResult struct {
	TaxTotal   decimal.Decimal `json:"taxTotal"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	Breakdown  []TaxLine       `json:"breakdown"`
}
