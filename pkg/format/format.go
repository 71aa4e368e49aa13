// Package format renders raw market values as display strings.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Color is a semantic token for signed price changes. The presentation
// layer maps it to whatever styling it uses.
type Color string

const (
	ColorPositive Color = "positive"
	ColorNegative Color = "negative"
	ColorNeutral  Color = "neutral"
)

var usd = message.NewPrinter(language.English)

// FormatPrice renders a USD price. Sub-cent magnitudes keep 6 to 8
// fractional digits so prices of micro-cap assets stay distinguishable;
// everything else gets the usual two.
func FormatPrice(value float64) string {
	if math.Abs(value) < 0.01 {
		if math.Signbit(value) && value != 0 {
			return "-$" + subCent(-value)
		}
		return "$" + subCent(value)
	}
	if value < 0 {
		return "-" + usd.Sprintf("$%.2f", -value)
	}
	return usd.Sprintf("$%.2f", value)
}

func subCent(value float64) string {
	s := strconv.FormatFloat(value, 'f', 8, 64)
	// Trim trailing zeros down to six fractional digits.
	dot := strings.IndexByte(s, '.')
	for strings.HasSuffix(s, "0") && len(s)-dot-1 > 6 {
		s = s[:len(s)-1]
	}
	return s
}

// FormatPercentage renders a signed 24h change. A nil value means the
// upstream had no data and renders as "N/A".
func FormatPercentage(value *float64) string {
	if value == nil {
		return "N/A"
	}
	if *value > 0 {
		return fmt.Sprintf("+%.2f%%", *value)
	}
	return fmt.Sprintf("%.2f%%", *value)
}

// FormatNumber renders market caps and volumes with a magnitude suffix.
// Thresholds are checked top-down; an exact threshold takes its suffix.
func FormatNumber(value float64) string {
	switch {
	case value >= 1e12:
		return fmt.Sprintf("$%.2fT", value/1e12)
	case value >= 1e9:
		return fmt.Sprintf("$%.2fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("$%.2fM", value/1e6)
	case value >= 1e3:
		return fmt.Sprintf("$%.2fK", value/1e3)
	}
	return fmt.Sprintf("$%.0f", value)
}

// ChangeColor maps a signed change to a semantic color token. NaN counts
// as neutral.
func ChangeColor(value float64) Color {
	if value > 0 {
		return ColorPositive
	}
	if value < 0 {
		return ColorNegative
	}
	return ColorNeutral
}

// ChangeColorPtr is ChangeColor for nullable changes; nil is neutral.
func ChangeColorPtr(value *float64) Color {
	if value == nil {
		return ColorNeutral
	}
	return ChangeColor(*value)
}
