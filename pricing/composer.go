package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

var (
	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ComposeResult carries the pre-tax subtotal plus the modifiers that were
// actually applied (an absolute modifier cuts the list short).
type ComposeResult struct {
	Subtotal decimal.Decimal
	Applied  []Modifier
	// Clamped is set when the running subtotal went negative and was
	// clamped to zero. Callers surface this as a warning, never silently.
	Clamped bool
}

// Compose applies resolved modifiers in order to the base rate. Percentage
// and fixed modifiers accumulate; an absolute modifier overrides the
// running subtotal and short-circuits the rest of the pass. Rounding to the
// currency's decimal places happens once at the end, so intermediate steps
// keep full precision. An empty modifier list returns the base rate
// untouched, bit for bit.
func Compose(baseRate decimal.Decimal, modifiers []Modifier, decimalPlaces int32) (ComposeResult, error) {
	if len(modifiers) == 0 {
		return ComposeResult{Subtotal: baseRate}, nil
	}

	subtotal := baseRate
	applied := make([]Modifier, 0, len(modifiers))

	for _, m := range modifiers {
		switch m.Type {
		case models.ModifierPercentage:
			subtotal = subtotal.Mul(one.Add(m.Value.Div(hundred)))
		case models.ModifierFixed:
			subtotal = subtotal.Add(m.Value)
		case models.ModifierAbsolute:
			// Final override: whatever came before is moot, whatever
			// comes after never runs.
			subtotal = m.Value
			applied = append(applied, m)
			return finishCompose(subtotal, applied, decimalPlaces), nil
		default:
			return ComposeResult{}, fmt.Errorf("unknown modifier type %q on %s rule %d", m.Type, m.Source, m.RuleID)
		}
		applied = append(applied, m)
	}

	return finishCompose(subtotal, applied, decimalPlaces), nil
}

func finishCompose(subtotal decimal.Decimal, applied []Modifier, decimalPlaces int32) ComposeResult {
	out := ComposeResult{Applied: applied}
	subtotal = subtotal.Round(decimalPlaces)
	if subtotal.IsNegative() {
		out.Clamped = true
		subtotal = zero
	}
	out.Subtotal = subtotal
	return out
}
