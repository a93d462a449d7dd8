package engine

import (
	"errors"
	"testing"
)

func TestParseSeverityLabels(t *testing.T) {
	cases := map[string]Severity{
		"critical": SeverityCritical,
		"CRITICAL": SeverityCritical,
		"High":     SeverityHigh,
		"medium":   SeverityMedium,
		"moderate": SeverityMedium,
		"low":      SeverityLow,
	}
	for raw, want := range cases {
		got, err := ParseSeverity(raw)
		if err != nil {
			t.Errorf("ParseSeverity(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Errorf("ParseSeverity(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseSeverityCVSS(t *testing.T) {
	cases := map[string]Severity{
		"9.8": SeverityCritical,
		"9.0": SeverityCritical,
		"7.5": SeverityHigh,
		"4.0": SeverityMedium,
		"3.9": SeverityLow,
		"0.0": SeverityLow,
	}
	for raw, want := range cases {
		got, err := ParseSeverity(raw)
		if err != nil {
			t.Errorf("ParseSeverity(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Errorf("ParseSeverity(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseSeverityInvalid(t *testing.T) {
	for _, raw := range []string{"", "urgent", "11.0", "-1"} {
		_, err := ParseSeverity(raw)
		if !errors.Is(err, ErrInvalidSeverity) {
			t.Errorf("ParseSeverity(%q): expected ErrInvalidSeverity, got %v", raw, err)
		}
	}
}

func TestSeverityMax(t *testing.T) {
	if got := SeverityMedium.Max(SeverityCritical); got != SeverityCritical {
		t.Errorf("Max(medium, critical) = %s, want critical", got)
	}
	if got := SeverityHigh.Max(SeverityLow); got != SeverityHigh {
		t.Errorf("Max(high, low) = %s, want high", got)
	}
}
