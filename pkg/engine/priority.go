package engine

import "fmt"

// Tier is the remediation priority assigned to a finding. Values match
// the ticketing system's priority names.
type Tier string

const (
	TierHighest Tier = "Highest"
	TierHigh    Tier = "High"
	TierMedium  Tier = "Medium"
	TierLow     Tier = "Low"
)

// Tiers lists all tiers from most to least urgent.
var Tiers = []Tier{TierHighest, TierHigh, TierMedium, TierLow}

// Rank returns an integer rank for comparison (Low=1, Highest=4).
func (t Tier) Rank() int {
	switch t {
	case TierLow:
		return 1
	case TierMedium:
		return 2
	case TierHigh:
		return 3
	case TierHighest:
		return 4
	default:
		return 0
	}
}

func (t Tier) String() string {
	return string(t)
}

// Factor weights. Reachability signals (public exposure, the package
// actually being loaded) count more than mere presence in a deployment
// or an OS precondition match.
const (
	weightPublicFacing  = 3
	weightLoadedPackage = 3
	weightDeployed      = 2
	weightOSCondition   = 1
)

// Severity contribution to the scalar. Capped below the reachability
// weights so that severity alone can never push a finding into the top
// bucket.
var severityWeight = map[Severity]int{
	SeverityCritical: 3,
	SeverityHigh:     2,
	SeverityMedium:   1,
	SeverityLow:      0,
}

// Thresholds are the lower bounds of the Highest/High/Medium buckets on
// the combined scalar. A score exactly on a bound lands in the higher
// tier; anything below Medium is Low.
type Thresholds struct {
	Highest int `yaml:"highest"`
	High    int `yaml:"high"`
	Medium  int `yaml:"medium"`
}

// DefaultThresholds buckets the 0..12 scalar.
var DefaultThresholds = Thresholds{Highest: 8, High: 5, Medium: 2}

// Validate checks that the bucket bounds are strictly descending.
func (t Thresholds) Validate() error {
	if t.Highest <= t.High || t.High <= t.Medium {
		return fmt.Errorf("priority thresholds must be strictly descending, got highest=%d high=%d medium=%d",
			t.Highest, t.High, t.Medium)
	}
	return nil
}

// PriorityEngine maps (severity, risk factors) to a tier.
type PriorityEngine struct {
	thresholds Thresholds
}

// NewPriorityEngine builds an engine with the given bucket thresholds.
func NewPriorityEngine(t Thresholds) (*PriorityEngine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &PriorityEngine{thresholds: t}, nil
}

// Score assigns a priority tier to one finding. Pure and total over
// valid severities; an unknown severity is the only error condition.
func (e *PriorityEngine) Score(cve CveReference, factors RiskFactorSet) (Tier, error) {
	sev, ok := severityWeight[cve.Severity]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, cve.Severity)
	}

	score := sev
	if factors.PublicFacing {
		score += weightPublicFacing
	}
	if factors.LoadedPackage {
		score += weightLoadedPackage
	}
	if factors.Deployed {
		score += weightDeployed
	}
	if factors.OSCondition {
		score += weightOSCondition
	}

	switch {
	case score >= e.thresholds.Highest:
		return TierHighest, nil
	case score >= e.thresholds.High:
		return TierHigh, nil
	case score >= e.thresholds.Medium:
		return TierMedium, nil
	default:
		return TierLow, nil
	}
}
