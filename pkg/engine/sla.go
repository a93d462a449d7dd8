package engine

import (
	"fmt"
	"time"
)

// SLATable maps a priority tier to the number of calendar days allowed
// for remediation.
type SLATable map[Tier]int

// DefaultSLATable is the standard remediation SLA.
var DefaultSLATable = SLATable{
	TierHighest: 2,
	TierHigh:    5,
	TierMedium:  14,
	TierLow:     30,
}

// Validate checks the table is total over the four tiers, positive, and
// monotonic: a more urgent tier never gets more days than a less urgent
// one.
func (t SLATable) Validate() error {
	prev := 0
	for _, tier := range Tiers {
		days, ok := t[tier]
		if !ok {
			return fmt.Errorf("%w: %s missing from SLA table", ErrUnknownTier, tier)
		}
		if days <= 0 {
			return fmt.Errorf("SLA days for %s must be positive, got %d", tier, days)
		}
		if days < prev {
			return fmt.Errorf("SLA table not monotonic: %s has %d days, more urgent tier has %d", tier, days, prev)
		}
		prev = days
	}
	return nil
}

// DueDate returns referenceDate plus the table's day count for the
// tier. Calendar days, not business days.
func (t SLATable) DueDate(tier Tier, referenceDate time.Time) (time.Time, error) {
	days, ok := t[tier]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
	}
	return referenceDate.AddDate(0, 0, days), nil
}
