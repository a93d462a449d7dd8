package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/user/cvetriage/pkg/engine"
)

var DebugEnabled bool

// Debugf prints messages only if DebugEnabled is true
func Debugf(format string, args ...interface{}) {
	if DebugEnabled {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// Infof prints messages always (standard output)
func Infof(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Errorf prints messages to stderr in red
func Errorf(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
}

// Successf prints messages in green
func Successf(format string, args ...interface{}) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}

var tierColors = map[engine.Tier]*color.Color{
	engine.TierHighest: color.New(color.FgRed, color.Bold),
	engine.TierHigh:    color.New(color.FgRed),
	engine.TierMedium:  color.New(color.FgYellow),
	engine.TierLow:     color.New(color.FgGreen),
}

// TierLabel renders a priority tier with its urgency color.
func TierLabel(tier engine.Tier) string {
	if c, ok := tierColors[tier]; ok {
		return c.Sprint(tier.String())
	}
	return tier.String()
}
