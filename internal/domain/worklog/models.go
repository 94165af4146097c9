package worklog

import (
	"time"

	"worktracker/internal/domain/earnings"
)

type EntryInput struct {
	ProjectID   string
	ProjectName string
	Date        time.Time
	Description string
	Session     earnings.WorkSession
}

// WorkEntry is a work session together with the breakdown computed for it.
type WorkEntry struct {
	ID          string               `json:"id"`
	ProjectID   string               `json:"projectId,omitempty"`
	ProjectName string               `json:"projectName"`
	Date        time.Time            `json:"date"`
	Description string               `json:"description"`
	Session     earnings.WorkSession `json:"session"`
	Breakdown   earnings.Breakdown   `json:"breakdown"`
}

type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	HourlyRate  float64    `json:"hourlyRate"`
	Client      string     `json:"client,omitempty"`
	Status      string     `json:"status"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Color       string     `json:"color"`
}
