package earnings

import "errors"

var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidBreakTime  = errors.New("invalid break time")
	ErrInvalidMultiplier = errors.New("invalid overtime multiplier")
	ErrInvalidRate       = errors.New("invalid hourly rate")
	ErrUnknownModel      = errors.New("unknown deduction model")
)

// Code maps a calculator error to a stable machine-readable code.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTimeFormat):
		return "invalid_time_format"
	case errors.Is(err, ErrInvalidBreakTime):
		return "invalid_break_time"
	case errors.Is(err, ErrInvalidMultiplier):
		return "invalid_multiplier"
	case errors.Is(err, ErrInvalidRate):
		return "invalid_rate"
	case errors.Is(err, ErrUnknownModel):
		return "unknown_deduction_model"
	default:
		return ""
	}
}
