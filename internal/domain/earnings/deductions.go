package earnings

import (
	"fmt"
	"strings"
)

// DeductionModel turns gross earnings into itemized deductions. Models are
// alternatives and are never combined.
type DeductionModel interface {
	Name() string
	Deduct(grossEarnings, baseHourlyRate float64) Deductions
}

// FlatRateModel withholds FlatDeductionRate of gross and splits it by fixed weights.
type FlatRateModel struct{}

func (FlatRateModel) Name() string { return ModelFlat }

func (FlatRateModel) Deduct(grossEarnings, _ float64) Deductions {
	total := grossEarnings * FlatDeductionRate
	return Deductions{
		FederalTax:      total * FederalWeight,
		ProvincialTax:   total * ProvincialWeight,
		CPPContribution: total * CPPWeight,
		EIContribution:  total * EIWeight,
		TotalDeductions: total,
	}
}

// AnnualizedModel estimates a yearly income from the base rate at full-time
// hours and picks the federal bracket from it. Provincial, CPP and EI rates
// are flat; CPP and EI count only the employee half.
type AnnualizedModel struct{}

func (AnnualizedModel) Name() string { return ModelAnnualized }

func (AnnualizedModel) Deduct(grossEarnings, baseHourlyRate float64) Deductions {
	federalRate := FederalLowBracketRate
	if baseHourlyRate*AnnualHoursPerYear > FederalLowBracketCeiling {
		federalRate = FederalHighBracketRate
	}
	d := Deductions{
		FederalTax:      grossEarnings * federalRate,
		ProvincialTax:   grossEarnings * ProvincialBaseRate,
		CPPContribution: grossEarnings * CPPRate * EmployeeContributionShare,
		EIContribution:  grossEarnings * EIRate * EmployeeContributionShare,
	}
	d.TotalDeductions = d.FederalTax + d.ProvincialTax + d.CPPContribution + d.EIContribution
	return d
}

// ModelByName resolves a configured model name; empty means flat.
func ModelByName(name string) (DeductionModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ModelFlat:
		return FlatRateModel{}, nil
	case ModelAnnualized:
		return AnnualizedModel{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
}
