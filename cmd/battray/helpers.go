package main

import (
	"fmt"

	"github.com/fatih/color"
)

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

// boolText renders a maybe-unknown boolean the way the status output
// wants it.
func boolText(b *bool) string {
	switch {
	case b == nil:
		return color.YellowString("unknown")
	case *b:
		return color.GreenString("yes")
	default:
		return color.RedString("no")
	}
}

// remainingText renders the remaining minutes, including the
// "indeterminate duration" sentinel.
func remainingText(minutes *float64) string {
	switch {
	case minutes == nil:
		return color.YellowString("unknown")
	case *minutes < 0:
		return color.YellowString("unknown")
	default:
		return fmt.Sprintf("%.0f minutes", *minutes)
	}
}
