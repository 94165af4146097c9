package timesheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/worklog"
)

var (
	clockLayouts = []string{"15:04:05", "3:04 PM", "3:04PM", "3PM", "3 PM"}
	dateLayouts  = []string{"2006-01-02", "01/02/2006", "1/2/2006", "2006/01/02", time.RFC3339}
)

// ParseClockCell accepts HH:MM, HH:MM:SS, 12-hour clock strings and
// spreadsheet fractional days, returning HH:MM. Numbers of one or more are
// date-times and only their fractional part is used.
func ParseClockCell(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: empty time", ErrInvalidCell)
	}
	if minutes, err := earnings.ParseClock(value); err == nil {
		return earnings.FormatClock(minutes), nil
	}
	if fraction, err := strconv.ParseFloat(value, 64); err == nil {
		if fraction >= 1 && !strings.Contains(value, ".") {
			return "", fmt.Errorf("%w: %q is not a time", earnings.ErrInvalidTimeFormat, value)
		}
		return FractionToClock(fraction)
	}
	upper := strings.ToUpper(value)
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, upper); err == nil {
			return earnings.FormatClock(parsed.Hour()*earnings.MinutesPerHour + parsed.Minute()), nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a time", earnings.ErrInvalidTimeFormat, value)
}

// FractionToClock converts a fraction of a day to HH:MM, rounding to the
// nearest minute.
func FractionToClock(fraction float64) (string, error) {
	if fraction < 0 || math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return "", fmt.Errorf("%w: %v is not a time of day", earnings.ErrInvalidTimeFormat, fraction)
	}
	_, frac := math.Modf(fraction)
	minutes := int(math.Round(frac * earnings.MinutesPerDay))
	return earnings.FormatClock(minutes), nil
}

// ParseDateCell accepts ISO and US dates as well as spreadsheet serial numbers.
func ParseDateCell(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidCell)
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial >= 1 {
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidCell, value)
		}
		y, m, d := parsed.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidCell, value)
}

// ParseBreakCell reads whole break minutes; an empty cell reports ok=false.
func ParseBreakCell(value string) (int, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false, nil
	}
	minutes, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: break %q is not a number of minutes", earnings.ErrInvalidBreakTime, value)
	}
	return int(math.Round(minutes)), true, nil
}

// ParseOvertimeCell accepts a multiplier ("1.5", "2x") or a pay type name.
func ParseOvertimeCell(value string) (bool, float64, error) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(value)), "x"))
	if value == "" {
		return false, 1.0, nil
	}
	if multiplier, err := strconv.ParseFloat(value, 64); err == nil {
		if err := earnings.ValidateMultiplier(earnings.NormalizeMultiplier(multiplier)); err != nil {
			return false, 0, err
		}
		multiplier = earnings.NormalizeMultiplier(multiplier)
		return multiplier > earnings.MinOvertimeMultiplier, multiplier, nil
	}
	return worklog.ParsePayType(value)
}

// InferBreak applies the default break policy to a raw shift length.
func InferBreak(spanMinutes int) int {
	if spanMinutes > LongShiftThresholdMinutes {
		return LongShiftBreakMinutes
	}
	return ShortShiftBreakMinutes
}
