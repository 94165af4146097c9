package earnings

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts an H:MM or HH:MM 24-hour string to minutes since
// midnight. Surrounding whitespace is not accepted.
func ParseClock(value string) (int, error) {
	match := clockPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	return hours*MinutesPerHour + minutes, nil
}

// FormatClock renders minutes since midnight as HH:MM, wrapping at one day.
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// SpanMinutes returns the clock distance from start to end. An end earlier
// than start is read as falling on the next day.
func SpanMinutes(startTime, endTime string) (int, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return 0, err
	}
	raw := end - start
	if raw < 0 {
		raw += MinutesPerDay
	}
	return raw, nil
}

func ValidateBreak(breakMinutes int) error {
	if breakMinutes < 0 || breakMinutes > MaxBreakMinutes {
		return fmt.Errorf("%w: %d minutes not in [0,%d]", ErrInvalidBreakTime, breakMinutes, MaxBreakMinutes)
	}
	return nil
}

func ValidateRate(rate float64) error {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return nil
}

// NormalizeMultiplier treats an unset (zero) multiplier as 1.0.
func NormalizeMultiplier(multiplier float64) float64 {
	if multiplier == 0 {
		return MinOvertimeMultiplier
	}
	return multiplier
}

func ValidateMultiplier(multiplier float64) error {
	if math.IsNaN(multiplier) || multiplier < MinOvertimeMultiplier || multiplier > MaxOvertimeMultiplier {
		return fmt.Errorf("%w: %v not in [%.1f,%.1f]", ErrInvalidMultiplier, multiplier, MinOvertimeMultiplier, MaxOvertimeMultiplier)
	}
	return nil
}

// ComputeHours returns worked hours between two clock times minus the break.
// Breaks longer than the span yield zero hours.
func ComputeHours(startTime, endTime string, breakMinutes int) (float64, error) {
	if err := ValidateBreak(breakMinutes); err != nil {
		return 0, err
	}
	span, err := SpanMinutes(startTime, endTime)
	if err != nil {
		return 0, err
	}
	worked := max(span-breakMinutes, 0)
	return float64(worked) / MinutesPerHour, nil
}

func ComputeEffectiveRate(baseRate float64, isOvertime bool, multiplier float64) (float64, error) {
	if err := ValidateRate(baseRate); err != nil {
		return 0, err
	}
	multiplier = NormalizeMultiplier(multiplier)
	if err := ValidateMultiplier(multiplier); err != nil {
		return 0, err
	}
	if isOvertime && multiplier > MinOvertimeMultiplier {
		return baseRate * multiplier, nil
	}
	return baseRate, nil
}

func ComputeGross(hours, effectiveRate float64) float64 {
	return hours * effectiveRate
}

// ComputeDeductions applies the flat composite rate and splits it by the
// fixed federal/provincial/CPP/EI weights.
func ComputeDeductions(grossEarnings float64) Deductions {
	return FlatRateModel{}.Deduct(grossEarnings, 0)
}

func ComputeNet(grossEarnings, totalDeductions float64) float64 {
	return grossEarnings - totalDeductions
}

// Validate reports the first invalid field of the session.
func (s WorkSession) Validate() error {
	if _, err := ParseClock(s.StartTime); err != nil {
		return err
	}
	if _, err := ParseClock(s.EndTime); err != nil {
		return err
	}
	if err := ValidateBreak(s.BreakMinutes); err != nil {
		return err
	}
	if err := ValidateRate(s.BaseHourlyRate); err != nil {
		return err
	}
	return ValidateMultiplier(NormalizeMultiplier(s.OvertimeMultiplier))
}

// Calculator computes breakdowns with a fixed deduction model. The zero value
// uses the flat model.
type Calculator struct {
	Model DeductionModel
}

func NewCalculator(model DeductionModel) *Calculator {
	return &Calculator{Model: model}
}

func (c *Calculator) model() DeductionModel {
	if c == nil || c.Model == nil {
		return FlatRateModel{}
	}
	return c.Model
}

// ModelName reports which deduction model the calculator applies.
func (c *Calculator) ModelName() string {
	return c.model().Name()
}

func (c *Calculator) Calculate(session WorkSession) (Breakdown, error) {
	if err := session.Validate(); err != nil {
		return Breakdown{}, err
	}
	hours, err := ComputeHours(session.StartTime, session.EndTime, session.BreakMinutes)
	if err != nil {
		return Breakdown{}, err
	}
	rate, err := ComputeEffectiveRate(session.BaseHourlyRate, session.IsOvertime, session.OvertimeMultiplier)
	if err != nil {
		return Breakdown{}, err
	}
	gross := ComputeGross(hours, rate)
	deductions := c.model().Deduct(gross, session.BaseHourlyRate)
	return Breakdown{
		TotalHours:          hours,
		EffectiveHourlyRate: rate,
		GrossEarnings:       gross,
		Deductions:          deductions,
		NetEarnings:         ComputeNet(gross, deductions.TotalDeductions),
	}, nil
}

var defaultCalculator = &Calculator{Model: FlatRateModel{}}

// Calculate computes a breakdown with the flat deduction model.
func Calculate(session WorkSession) (Breakdown, error) {
	return defaultCalculator.Calculate(session)
}
