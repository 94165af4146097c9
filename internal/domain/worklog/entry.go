package worklog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"worktracker/internal/domain/earnings"
)

// NewEntry validates the input and attaches the computed breakdown. A nil
// calculator uses the flat deduction model.
func NewEntry(calc *earnings.Calculator, in EntryInput) (WorkEntry, error) {
	description := strings.TrimSpace(in.Description)
	projectName := strings.TrimSpace(in.ProjectName)
	switch {
	case projectName == "" && strings.TrimSpace(in.ProjectID) == "":
		return WorkEntry{}, fmt.Errorf("%w: project is required", ErrInvalidEntry)
	case in.Date.IsZero():
		return WorkEntry{}, fmt.Errorf("%w: date is required", ErrInvalidEntry)
	case description == "":
		return WorkEntry{}, fmt.Errorf("%w: description is required", ErrInvalidEntry)
	case len([]rune(description)) > MaxDescriptionLength:
		return WorkEntry{}, fmt.Errorf("%w: description longer than %d characters", ErrInvalidEntry, MaxDescriptionLength)
	}

	if calc == nil {
		calc = &earnings.Calculator{}
	}
	breakdown, err := calc.Calculate(in.Session)
	if err != nil {
		return WorkEntry{}, err
	}

	session := in.Session
	session.OvertimeMultiplier = earnings.NormalizeMultiplier(session.OvertimeMultiplier)
	return WorkEntry{
		ID:          uuid.NewString(),
		ProjectID:   strings.TrimSpace(in.ProjectID),
		ProjectName: projectName,
		Date:        truncateDay(in.Date),
		Description: description,
		Session:     session,
		Breakdown:   breakdown,
	}, nil
}

// Recalculate returns a copy of the entry with the breakdown recomputed from
// a changed session.
func (e WorkEntry) Recalculate(calc *earnings.Calculator, session earnings.WorkSession) (WorkEntry, error) {
	if calc == nil {
		calc = &earnings.Calculator{}
	}
	breakdown, err := calc.Calculate(session)
	if err != nil {
		return WorkEntry{}, err
	}
	session.OvertimeMultiplier = earnings.NormalizeMultiplier(session.OvertimeMultiplier)
	e.Session = session
	e.Breakdown = breakdown
	return e, nil
}

// ParsePayType maps a pay type name to its overtime flag and multiplier.
func ParsePayType(value string) (bool, float64, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", PayTypeRegular:
		return false, 1.0, nil
	case PayTypeOvertime:
		return true, 1.5, nil
	case PayTypeDouble:
		return true, 2.0, nil
	case PayTypeTriple:
		return true, 3.0, nil
	default:
		return false, 0, fmt.Errorf("%w: %q", ErrUnknownPayType, value)
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
