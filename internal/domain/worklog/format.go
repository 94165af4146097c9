package worklog

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatCurrency renders dollars with thousands separators, e.g. "$1,234.56".
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + amountPrinter.Sprintf("%.2f", -amount)
	}
	return "$" + amountPrinter.Sprintf("%.2f", amount)
}

// FormatBreak renders break minutes as "1h 30m" or "45m".
func FormatBreak(minutes int) string {
	if hours := minutes / 60; hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

func OvertimeLabel(isOvertime bool, multiplier float64) string {
	if !isOvertime {
		return "Regular"
	}
	switch multiplier {
	case 1.5:
		return "Time & Half"
	case 2.0:
		return "Double Time"
	case 3.0:
		return "Triple Time"
	}
	return strconv.FormatFloat(multiplier, 'f', -1, 64) + "x Rate"
}

func FormatDate(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006")
}

// Round2 rounds to cents for display and export.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
