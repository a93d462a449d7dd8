package engine

import (
	"errors"
	"testing"
)

func newTestEngine(t *testing.T) *PriorityEngine {
	t.Helper()
	e, err := NewPriorityEngine(DefaultThresholds)
	if err != nil {
		t.Fatalf("NewPriorityEngine failed: %v", err)
	}
	return e
}

func TestScoreAllFactorsNeverHighestWithoutReachability(t *testing.T) {
	e := newTestEngine(t)

	// Severity alone, no risk factors: HIGHEST must be unreachable.
	for _, sev := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		tier, err := e.Score(CveReference{ID: "CVE-2024-0001", Severity: sev}, RiskFactorSet{})
		if err != nil {
			t.Fatalf("Score failed for %s: %v", sev, err)
		}
		if tier == TierHighest {
			t.Errorf("severity %s with no risk factors reached HIGHEST", sev)
		}
	}
}

func TestScoreCriticalNoFactorsAtMostMedium(t *testing.T) {
	e := newTestEngine(t)

	tier, err := e.Score(CveReference{ID: "CVE-2024-0001", Severity: SeverityCritical}, RiskFactorSet{})
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if tier.Rank() > TierMedium.Rank() {
		t.Errorf("critical CVE with no reachability got %s, want at most Medium", tier)
	}
}

func TestScoreFullExposureCriticalIsHighest(t *testing.T) {
	e := newTestEngine(t)

	factors := RiskFactorSet{Deployed: true, PublicFacing: true, LoadedPackage: true, OSCondition: true}
	tier, err := e.Score(CveReference{ID: "CVE-2024-0001", Severity: SeverityCritical}, factors)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if tier != TierHighest {
		t.Errorf("critical CVE with all factors got %s, want Highest", tier)
	}
}

func TestScoreLowSeverityPublicLoadedAtLeastHigh(t *testing.T) {
	e := newTestEngine(t)

	factors := RiskFactorSet{PublicFacing: true, LoadedPackage: true}
	tier, err := e.Score(CveReference{ID: "CVE-2024-0001", Severity: SeverityLow}, factors)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if tier.Rank() < TierHigh.Rank() {
		t.Errorf("public-facing loaded low-severity CVE got %s, want at least High", tier)
	}
}

func TestScoreMonotonicInSeverity(t *testing.T) {
	e := newTestEngine(t)

	severities := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	factorSets := []RiskFactorSet{
		{},
		{Deployed: true},
		{PublicFacing: true, LoadedPackage: true},
		{Deployed: true, PublicFacing: true, LoadedPackage: true, OSCondition: true},
	}

	for _, factors := range factorSets {
		prev := 0
		for _, sev := range severities {
			tier, err := e.Score(CveReference{ID: "CVE-2024-0001", Severity: sev}, factors)
			if err != nil {
				t.Fatalf("Score failed: %v", err)
			}
			if tier.Rank() < prev {
				t.Errorf("tier decreased when severity increased to %s (factors %+v)", sev, factors)
			}
			prev = tier.Rank()
		}
	}
}

func TestScoreBoundaryRoundsUp(t *testing.T) {
	e := newTestEngine(t)

	// public (3) + loaded (3) + deployed (2) + low severity (0) = 8,
	// exactly the Highest bound.
	factors := RiskFactorSet{PublicFacing: true, LoadedPackage: true, Deployed: true}
	tier, err := e.Score(CveReference{ID: "CVE-2024-0001", Severity: SeverityLow}, factors)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if tier != TierHighest {
		t.Errorf("score on the Highest boundary got %s, want Highest", tier)
	}
}

func TestScoreInvalidSeverity(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Score(CveReference{ID: "CVE-2024-0001", Severity: SeverityUnknown}, RiskFactorSet{})
	if !errors.Is(err, ErrInvalidSeverity) {
		t.Errorf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestThresholdsValidate(t *testing.T) {
	bad := Thresholds{Highest: 5, High: 5, Medium: 2}
	if err := bad.Validate(); err == nil {
		t.Error("expected validation error for non-descending thresholds")
	}
	if _, err := NewPriorityEngine(bad); err == nil {
		t.Error("NewPriorityEngine accepted invalid thresholds")
	}
}
