package pricing

import "fmt"

// Promo rejection reasons, surfaced verbatim to the caller. Never collapse
// these into a generic failure; the booking UI shows the specific reason.
const (
	PromoExpired         = "EXPIRED"
	PromoNotYetValid     = "NOT_YET_VALID"
	PromoUsageLimit      = "USAGE_LIMIT"
	PromoGuestLimit      = "GUEST_LIMIT"
	PromoMinNightsNotMet = "MIN_NIGHTS_NOT_MET"
	PromoInactive        = "INACTIVE"
)

// PromoError carries one of the named rejection reasons.
type PromoError struct {
	Code   string
	Reason string
}

func (e *PromoError) Error() string {
	return fmt.Sprintf("promo %s rejected: %s", e.Code, e.Reason)
}

// InvalidRuleError means a rule that should have been rejected at creation
// time reached the resolver (e.g. a date range with start after end).
type InvalidRuleError struct {
	Source Source
	RuleID uint
	Detail string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid %s rule %d: %s", e.Source, e.RuleID, e.Detail)
}

// UnknownCurrencyError is fatal to the conversion call, not to the request;
// callers fall back to the base currency.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown or inactive currency %q", e.Code)
}
