package earnings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatDeductionsSplit(t *testing.T) {
	for _, gross := range []float64{0, 1, 175, 240, 1234.56, 98765.4321} {
		d := ComputeDeductions(gross)
		want := FlatDeductionRate * gross
		sum := d.FederalTax + d.ProvincialTax + d.CPPContribution + d.EIContribution
		assert.InDelta(t, want, d.TotalDeductions, 1e-9*math.Max(1, want))
		assert.InDelta(t, want, sum, 1e-9*math.Max(1, want))
		assert.InDelta(t, 0.854*gross, ComputeNet(gross, d.TotalDeductions), 1e-9*math.Max(1, gross))
		for _, part := range []float64{d.FederalTax, d.ProvincialTax, d.CPPContribution, d.EIContribution} {
			assert.GreaterOrEqual(t, part, 0.0)
		}
	}
}

func TestFlatWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, FederalWeight+ProvincialWeight+CPPWeight+EIWeight, 1e-12)
}

func TestAnnualizedModelBrackets(t *testing.T) {
	low := AnnualizedModel{}.Deduct(100, 20)
	assert.InDelta(t, 15.0, low.FederalTax, 1e-9)
	assert.InDelta(t, 5.05, low.ProvincialTax, 1e-9)
	assert.InDelta(t, 2.975, low.CPPContribution, 1e-9)
	assert.InDelta(t, 0.94, low.EIContribution, 1e-9)
	assert.InDelta(t, 23.965, low.TotalDeductions, 1e-9)

	high := AnnualizedModel{}.Deduct(100, 30)
	assert.InDelta(t, 20.5, high.FederalTax, 1e-9)
}

func TestCalculatorUsesConfiguredModel(t *testing.T) {
	session := WorkSession{StartTime: "09:00", EndTime: "17:00", BaseHourlyRate: 20}

	flat, err := NewCalculator(FlatRateModel{}).Calculate(session)
	require.NoError(t, err)
	annualized, err := NewCalculator(AnnualizedModel{}).Calculate(session)
	require.NoError(t, err)

	assert.Equal(t, flat.GrossEarnings, annualized.GrossEarnings)
	assert.NotEqual(t, flat.TotalDeductions, annualized.TotalDeductions)
	assert.InDelta(t, annualized.GrossEarnings-annualized.TotalDeductions, annualized.NetEarnings, 1e-9)
}

func TestZeroCalculatorDefaultsToFlat(t *testing.T) {
	session := WorkSession{StartTime: "09:00", EndTime: "10:00", BaseHourlyRate: 100}
	var calc Calculator
	breakdown, err := calc.Calculate(session)
	require.NoError(t, err)
	assert.InDelta(t, 14.6, breakdown.TotalDeductions, 1e-9)
}

func TestModelByName(t *testing.T) {
	model, err := ModelByName("")
	require.NoError(t, err)
	assert.Equal(t, ModelFlat, model.Name())

	model, err = ModelByName(" Annualized ")
	require.NoError(t, err)
	assert.Equal(t, ModelAnnualized, model.Name())

	_, err = ModelByName("progressive")
	assert.ErrorIs(t, err, ErrUnknownModel)
}
