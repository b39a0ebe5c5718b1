package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

// ApplyTaxes computes every active tax whose scope covers lineCategory
// against the pre-tax subtotal. Taxes are ordered by sort_order and each is
// computed independently on the subtotal; they do not compound on each
// other. Percentage taxes take subtotal*rate/100, fixed taxes add a flat
// amount per line. Each tax line is rounded to the currency's decimal
// places so the itemized breakdown sums exactly to the tax total.
func ApplyTaxes(subtotal decimal.Decimal, taxes []models.Tax, lineCategory string, decimalPlaces int32) (TaxResult, error) {
	if !models.ValidLineCategory(lineCategory) {
		return TaxResult{}, fmt.Errorf("unknown line category %q", lineCategory)
	}

	applicable := make([]models.Tax, 0, len(taxes))
	for _, t := range taxes {
		if !t.IsActive {
			continue
		}
		if t.AppliesTo != models.TaxAppliesAll && t.AppliesTo != lineCategory {
			continue
		}
		applicable = append(applicable, t)
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		if applicable[i].SortOrder != applicable[j].SortOrder {
			return applicable[i].SortOrder < applicable[j].SortOrder
		}
		return applicable[i].ID < applicable[j].ID
	})

	res := TaxResult{TaxTotal: decimal.Zero}
	for _, t := range applicable {
		var amount decimal.Decimal
		switch t.Type {
		case models.ModifierPercentage:
			amount = subtotal.Mul(t.Rate).Div(hundred).Round(decimalPlaces)
		case models.ModifierFixed:
			amount = t.Rate.Round(decimalPlaces)
		default:
			return TaxResult{}, fmt.Errorf("unknown tax type %q on tax %d", t.Type, t.ID)
		}
		res.Breakdown = append(res.Breakdown, TaxLine{TaxID: t.ID, Name: t.Name, Amount: amount})
		res.TaxTotal = res.TaxTotal.Add(amount)
	}

	res.GrandTotal = subtotal.Add(res.TaxTotal)
	return res, nil
}
