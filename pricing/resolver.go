package pricing

import (
	"fmt"
	"sort"
	"time"
)

// ResolveInput pins down one night to price.
type ResolveInput struct {
	Date             time.Time
	RoomTypeID       uint
	OccupancyPercent int
	// Nights is the stay length; rules with min/max stay constraints that
	// exclude it are filtered out. Zero means ignore stay constraints.
	Nights int
	// KnownRoomTypes, when non-nil, lets the resolver detect rules that
	// reference a deleted room type. Such rules are skipped, not fatal.
	KnownRoomTypes map[uint]bool
}

// SkippedRule records a rule the resolver dropped because of a dangling
// reference. These are logged by the caller for operator review.
type SkippedRule struct {
	Source Source
	RuleID uint
	Detail string
}

// Resolution is the resolver output: the ordered modifiers plus any rules
// skipped on the way.
type Resolution struct {
	Modifiers []Modifier
	Skipped   []SkippedRule
}

// Resolve selects every active rule matching the given night and orders the
// result deterministically: category specificity first (event override >
// seasonal > day-of-week > occupancy > rate plan), then priority ascending,
// then rule ID ascending. A malformed date range means creation-time
// validation was bypassed, so Resolve fails fast rather than guessing.
func Resolve(rs RuleSet, in ResolveInput) (Resolution, error) {
	var res Resolution

	for _, ev := range rs.EventOverrides {
		if ev.Status != "active" {
			continue
		}
		if ev.StartDate.After(ev.EndDate) {
			return Resolution{}, &InvalidRuleError{Source: SourceEvent, RuleID: ev.ID, Detail: "start date after end date"}
		}
		if skip, detail := danglingRoomType(ev.RoomTypeID, in.KnownRoomTypes); skip {
			res.Skipped = append(res.Skipped, SkippedRule{Source: SourceEvent, RuleID: ev.ID, Detail: detail})
			continue
		}
		if !scopeMatches(ev.RoomTypeID, in.RoomTypeID) || !dateInRange(in.Date, ev.StartDate, ev.EndDate) {
			continue
		}
		res.Modifiers = append(res.Modifiers, Modifier{
			Source:   SourceEvent,
			RuleID:   ev.ID,
			Label:    ev.Name,
			Type:     ev.ModifierType,
			Value:    ev.ModifierValue,
			Priority: ev.Priority,
		})
	}

	for _, sr := range rs.SeasonalRates {
		if sr.Status != "active" {
			continue
		}
		if sr.StartDate.After(sr.EndDate) {
			return Resolution{}, &InvalidRuleError{Source: SourceSeasonal, RuleID: sr.ID, Detail: "start date after end date"}
		}
		if in.KnownRoomTypes != nil && !in.KnownRoomTypes[sr.RoomTypeID] {
			res.Skipped = append(res.Skipped, SkippedRule{Source: SourceSeasonal, RuleID: sr.ID, Detail: fmt.Sprintf("room type %d no longer exists", sr.RoomTypeID)})
			continue
		}
		if sr.RoomTypeID != in.RoomTypeID || !dateInRange(in.Date, sr.StartDate, sr.EndDate) {
			continue
		}
		if in.Nights > 0 && sr.MinStay > 0 && in.Nights < sr.MinStay {
			continue
		}
		res.Modifiers = append(res.Modifiers, Modifier{
			Source:   SourceSeasonal,
			RuleID:   sr.ID,
			Label:    sr.Name,
			Type:     sr.ModifierType,
			Value:    sr.ModifierValue,
			Priority: sr.Priority,
		})
	}

	for _, dr := range rs.DowRules {
		if dr.Status != "active" {
			continue
		}
		if skip, detail := danglingRoomType(dr.RoomTypeID, in.KnownRoomTypes); skip {
			res.Skipped = append(res.Skipped, SkippedRule{Source: SourceDow, RuleID: dr.ID, Detail: detail})
			continue
		}
		if !scopeMatches(dr.RoomTypeID, in.RoomTypeID) || int(in.Date.Weekday()) != dr.DayOfWeek {
			continue
		}
		res.Modifiers = append(res.Modifiers, Modifier{
			Source: SourceDow,
			RuleID: dr.ID,
			Label:  fmt.Sprintf("Day-of-week (%s)", in.Date.Weekday()),
			Type:   dr.ModifierType,
			Value:  dr.ModifierValue,
		})
	}

	for _, or := range rs.OccupancyRules {
		if or.Status != "active" {
			continue
		}
		if skip, detail := danglingRoomType(or.RoomTypeID, in.KnownRoomTypes); skip {
			res.Skipped = append(res.Skipped, SkippedRule{Source: SourceOccupancy, RuleID: or.ID, Detail: detail})
			continue
		}
		if !scopeMatches(or.RoomTypeID, in.RoomTypeID) || in.OccupancyPercent < or.ThresholdPercent {
			continue
		}
		res.Modifiers = append(res.Modifiers, Modifier{
			Source:   SourceOccupancy,
			RuleID:   or.ID,
			Label:    fmt.Sprintf("Occupancy >= %d%%", or.ThresholdPercent),
			Type:     or.ModifierType,
			Value:    or.ModifierValue,
			Priority: or.Priority,
		})
	}

	for _, rp := range rs.RatePlans {
		if rp.Status != "active" {
			continue
		}
		if in.Nights > 0 {
			if rp.MinStay > 0 && in.Nights < rp.MinStay {
				continue
			}
			if rp.MaxStay > 0 && in.Nights > rp.MaxStay {
				continue
			}
		}
		res.Modifiers = append(res.Modifiers, Modifier{
			Source:   SourceRatePlan,
			RuleID:   rp.ID,
			Label:    rp.Name,
			Type:     rp.ModifierType,
			Value:    rp.ModifierValue,
			Priority: rp.Priority,
		})
	}

	sort.SliceStable(res.Modifiers, func(i, j int) bool {
		a, b := res.Modifiers[i], res.Modifiers[j]
		if a.Source.rank() != b.Source.rank() {
			return a.Source.rank() < b.Source.rank()
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.RuleID < b.RuleID
	})

	return res, nil
}

// scopeMatches: a nil room type scopes the rule to every room type.
func scopeMatches(ruleRoomType *uint, roomTypeID uint) bool {
	return ruleRoomType == nil || *ruleRoomType == roomTypeID
}

// dateInRange is inclusive on both ends, compared at day granularity.
func dateInRange(d, start, end time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	return !day.Before(start.Truncate(24*time.Hour)) && !day.After(end.Truncate(24*time.Hour))
}

func danglingRoomType(ruleRoomType *uint, known map[uint]bool) (bool, string) {
	if ruleRoomType == nil || known == nil {
		return false, ""
	}
	if known[*ruleRoomType] {
		return false, ""
	}
	return true, fmt.Sprintf("room type %d no longer exists", *ruleRoomType)
}
