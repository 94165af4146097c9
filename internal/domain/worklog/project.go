package worklog

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Normalize fills defaults for status and color.
func (p Project) Normalize() Project {
	p.Name = strings.TrimSpace(p.Name)
	p.Client = strings.TrimSpace(p.Client)
	p.Description = strings.TrimSpace(p.Description)
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	if p.Color == "" {
		p.Color = DefaultProjectColor
	}
	return p
}

func (p Project) Validate() error {
	p = p.Normalize()
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	case len([]rune(p.Name)) > MaxNameLength:
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidProject, MaxNameLength)
	case len([]rune(p.Client)) > MaxNameLength:
		return fmt.Errorf("%w: client longer than %d characters", ErrInvalidProject, MaxNameLength)
	case len([]rune(p.Description)) > MaxDescriptionLength:
		return fmt.Errorf("%w: description longer than %d characters", ErrInvalidProject, MaxDescriptionLength)
	case !(p.HourlyRate > 0) || math.IsInf(p.HourlyRate, 0):
		return fmt.Errorf("%w: hourly rate must be greater than 0", ErrInvalidProject)
	case !slices.Contains(ProjectStatuses, p.Status):
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProject, p.Status)
	case !colorPattern.MatchString(p.Color):
		return fmt.Errorf("%w: color must be #RRGGBB", ErrInvalidProject)
	case p.EndDate != nil && p.EndDate.Before(p.StartDate):
		return fmt.Errorf("%w: end date before start date", ErrInvalidProject)
	}
	return nil
}

// Complete marks the project completed, stamping the end date only once.
func (p Project) Complete(now time.Time) Project {
	p.Status = ProjectStatusCompleted
	if p.EndDate == nil {
		end := now
		p.EndDate = &end
	}
	return p
}

// Duration describes how long the project has run, up to now when it has no end date.
func (p Project) Duration(now time.Time) string {
	end := now
	if p.EndDate != nil {
		end = *p.EndDate
	}
	elapsed := end.Sub(p.StartDate)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := int(math.Ceil(elapsed.Hours() / 24))

	switch {
	case days < 30:
		return fmt.Sprintf("%d days", days)
	case days < 365:
		return plural(days/30, "month")
	default:
		label := plural(days/365, "year")
		if months := (days % 365) / 30; months > 0 {
			label += " " + plural(months, "month")
		}
		return label
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
