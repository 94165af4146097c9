package worklog

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on-hold"
	ProjectStatusCancelled = "cancelled"

	DefaultProjectColor = "#667eea"

	MaxDescriptionLength = 500
	MaxNameLength        = 100

	PayTypeRegular  = "regular"
	PayTypeOvertime = "overtime"
	PayTypeDouble   = "double"
	PayTypeTriple   = "triple"
)

var ProjectStatuses = []string{
	ProjectStatusActive,
	ProjectStatusCompleted,
	ProjectStatusOnHold,
	ProjectStatusCancelled,
}

var PayTypes = []string{
	PayTypeRegular,
	PayTypeOvertime,
	PayTypeDouble,
	PayTypeTriple,
}
