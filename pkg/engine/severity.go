package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity is the normalized CVE severity scale.
type Severity string

const (
	SeverityUnknown  Severity = "unknown"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns an integer rank for comparison (Low=1, Critical=4).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// Max returns the more severe of s and other.
func (s Severity) Max(other Severity) Severity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// ParseSeverity normalizes a raw severity value. It accepts the textual
// levels (case-insensitive, "moderate" counts as "medium") as well as a
// numeric CVSS score between 0.0 and 10.0.
func ParseSeverity(raw string) (Severity, error) {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "low":
		return SeverityLow, nil
	case "medium", "moderate":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	}
	if score, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return SeverityFromCVSS(score)
	}
	return SeverityUnknown, fmt.Errorf("%w: %q", ErrInvalidSeverity, raw)
}

// SeverityFromCVSS maps a CVSS 0.0-10.0 score onto the standard v3
// qualitative ratings.
func SeverityFromCVSS(score float64) (Severity, error) {
	switch {
	case score < 0 || score > 10:
		return SeverityUnknown, fmt.Errorf("%w: CVSS score %.1f out of range", ErrInvalidSeverity, score)
	case score >= 9.0:
		return SeverityCritical, nil
	case score >= 7.0:
		return SeverityHigh, nil
	case score >= 4.0:
		return SeverityMedium, nil
	default:
		return SeverityLow, nil
	}
}
