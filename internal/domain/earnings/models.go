package earnings

// WorkSession is the raw input of one work session.
type WorkSession struct {
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	BreakMinutes       int     `json:"breakMinutes"`
	BaseHourlyRate     float64 `json:"baseHourlyRate"`
	IsOvertime         bool    `json:"isOvertime"`
	OvertimeMultiplier float64 `json:"overtimeMultiplier"`
}

// Deductions itemizes what is withheld from gross earnings.
type Deductions struct {
	FederalTax      float64 `json:"federalTax"`
	ProvincialTax   float64 `json:"provincialTax"`
	CPPContribution float64 `json:"cppContribution"`
	EIContribution  float64 `json:"eiContribution"`
	TotalDeductions float64 `json:"totalDeductions"`
}

// Breakdown is the fully computed result for a WorkSession.
type Breakdown struct {
	TotalHours          float64 `json:"totalHours"`
	EffectiveHourlyRate float64 `json:"effectiveHourlyRate"`
	GrossEarnings       float64 `json:"grossEarnings"`
	Deductions
	NetEarnings float64 `json:"netEarnings"`
}
