package shared

import (
	"fmt"
	"strings"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/domain/worklog"
)

// SessionPayload is the JSON form of a work session. PayType, when set,
// replaces the overtime flag and multiplier with a named pay rate.
type SessionPayload struct {
	StartTime          string  `json:"startTime" validate:"required"`
	EndTime            string  `json:"endTime" validate:"required"`
	BreakMinutes       int     `json:"breakMinutes"`
	BaseHourlyRate     float64 `json:"baseHourlyRate"`
	IsOvertime         bool    `json:"isOvertime"`
	OvertimeMultiplier float64 `json:"overtimeMultiplier"`
	PayType            string  `json:"payType,omitempty"`
}

func (p SessionPayload) ToSession() (earnings.WorkSession, error) {
	session := earnings.WorkSession{
		StartTime:          strings.TrimSpace(p.StartTime),
		EndTime:            strings.TrimSpace(p.EndTime),
		BreakMinutes:       p.BreakMinutes,
		BaseHourlyRate:     p.BaseHourlyRate,
		IsOvertime:         p.IsOvertime,
		OvertimeMultiplier: p.OvertimeMultiplier,
	}
	if strings.TrimSpace(p.PayType) != "" {
		isOvertime, multiplier, err := worklog.ParsePayType(p.PayType)
		if err != nil {
			return earnings.WorkSession{}, err
		}
		session.IsOvertime = isOvertime
		session.OvertimeMultiplier = multiplier
	}
	return session, nil
}

type EntryPayload struct {
	ProjectID   string         `json:"projectId" validate:"max=100"`
	ProjectName string         `json:"projectName" validate:"required_without=ProjectID,max=100"`
	Date        string         `json:"date" validate:"required"`
	Description string         `json:"description" validate:"notblank,max=500"`
	Session     SessionPayload `json:"session"`
}

func (p EntryPayload) ToInput() (worklog.EntryInput, error) {
	date, err := worklog.ParseDate(strings.TrimSpace(p.Date))
	if err != nil || date.IsZero() {
		return worklog.EntryInput{}, fmt.Errorf("%w: date must be YYYY-MM-DD", worklog.ErrInvalidEntry)
	}
	session, err := p.Session.ToSession()
	if err != nil {
		return worklog.EntryInput{}, err
	}
	return worklog.EntryInput{
		ProjectID:   p.ProjectID,
		ProjectName: p.ProjectName,
		Date:        date,
		Description: p.Description,
		Session:     session,
	}, nil
}

// BuildEntries computes every payload with calc. The first failure is
// returned wrapped with the offending index.
func BuildEntries(calc *earnings.Calculator, payloads []EntryPayload) ([]worklog.WorkEntry, error) {
	entries := make([]worklog.WorkEntry, 0, len(payloads))
	for i, payload := range payloads {
		input, err := payload.ToInput()
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		entry, err := worklog.NewEntry(calc, input)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
