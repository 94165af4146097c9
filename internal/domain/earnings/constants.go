package earnings

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour

	MaxBreakMinutes = 480

	MinOvertimeMultiplier = 1.0
	MaxOvertimeMultiplier = 3.0

	// FlatDeductionRate is the composite share of gross withheld by the flat model.
	FlatDeductionRate = 0.146

	FederalWeight    = 0.40
	ProvincialWeight = 0.20
	CPPWeight        = 0.25
	EIWeight         = 0.15

	ModelFlat       = "flat"
	ModelAnnualized = "annualized"
)

// Inputs of the annualized (legacy) model.
const (
	AnnualHoursPerYear        = 40 * 52
	FederalLowBracketCeiling  = 53359.0
	FederalLowBracketRate     = 0.15
	FederalHighBracketRate    = 0.205
	ProvincialBaseRate        = 0.0505
	CPPRate                   = 0.0595
	EIRate                    = 0.0188
	EmployeeContributionShare = 0.5
)
