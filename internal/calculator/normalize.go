package calculator

import (
	"fmt"
	"math"

	"github.com/iwvelando/property-forecast/internal/projection"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
)

// profiles is the mode-independent form both adapters produce.
type profiles struct {
	funding   projection.FundingProfile
	operating projection.OperatingProfile
	params    projection.Parameters
}

type normalizer func(RawInputs) (profiles, error)

func normalizerFor(mode Mode) (normalizer, error) {
	switch mode {
	case ModeSimple:
		return normalizeSimple, nil
	case ModeAdvanced:
		return normalizeAdvanced, nil
	}
	_, err := ParseMode(string(mode))
	return nil, err
}

func normalizeSimple(in RawInputs) (profiles, error) {
	var missing []Field
	if !present(in.PurchasePrice) {
		missing = append(missing, fieldPurchasePrice)
	}
	if !present(in.MonthlyRent) {
		missing = append(missing, fieldMonthlyRent)
	}
	if len(missing) > 0 {
		return profiles{}, missingFieldsError(missing)
	}

	loanTerm, err := checkLoanTerm(valueOr(in.LoanTerm, constants.SimpleLoanTermYears))
	if err != nil {
		return profiles{}, err
	}

	price := *in.PurchasePrice
	rent := *in.MonthlyRent
	downPayment := mathutil.ApplyPercentage(price, valueOr(in.DownPaymentPercent, constants.SimpleDownPaymentPercent))
	closingCosts := mathutil.ApplyPercentage(price, constants.SimpleClosingCostPercent)
	annualExpenses := mathutil.ApplyPercentage(rent*constants.MonthsPerYear,
		valueOr(in.AnnualExpensesPercent, constants.SimpleAnnualExpensesPercent))

	return profiles{
		funding: projection.NewFundingProfile(price, downPayment, closingCosts, 0,
			valueOr(in.InterestRate, constants.SimpleInterestRate), loanTerm),
		operating: projection.OperatingProfile{
			MonthlyRent:          rent,
			VacancyRate:          constants.SimpleVacancyRate,
			EffectiveMonthlyRent: rent,
			PropertyTax:          mathutil.ApplyPercentage(price, constants.SimplePropertyTaxPercent),
			Insurance:            mathutil.ApplyPercentage(price, constants.SimpleInsurancePercent),
			BlendedExpenses:      annualExpenses / constants.MonthsPerYear,
		},
		params: projection.Parameters{
			HoldingPeriodYears: constants.SimpleHoldingPeriodYears,
			AppreciationRate:   constants.SimpleAppreciationRate,
			SellingCostPercent: constants.SimpleSellingCostPercent,
		},
	}, nil
}

func normalizeAdvanced(in RawInputs) (profiles, error) {
	var missing []Field
	if !present(in.PurchasePrice) {
		missing = append(missing, fieldPurchasePrice)
	}
	if !present(in.DownPaymentAmount) {
		missing = append(missing, fieldDownPayment)
	}
	if !present(in.MonthlyRent) {
		missing = append(missing, fieldMonthlyRent)
	}
	if len(missing) > 0 {
		return profiles{}, missingFieldsError(missing)
	}

	loanTerm, err := checkLoanTerm(valueOr(in.LoanTerm, constants.AdvancedLoanTermYears))
	if err != nil {
		return profiles{}, err
	}
	// Fractional years are truncated.
	holdingPeriod := math.Floor(valueOr(in.HoldingPeriod, constants.AdvancedHoldingPeriodYears))
	switch {
	case !(holdingPeriod >= 1):
		return profiles{}, invalidFieldError(fieldHoldingPeriod, "must be at least one year")
	case holdingPeriod > constants.MaxHoldingPeriodYears:
		return profiles{}, invalidFieldError(fieldHoldingPeriod,
			fmt.Sprintf("must be at most %d years", constants.MaxHoldingPeriodYears))
	}

	price := *in.PurchasePrice
	rent := *in.MonthlyRent
	vacancy := valueOr(in.VacancyRate, constants.AdvancedVacancyRate)
	closingCosts := mathutil.ApplyPercentage(price, valueOr(in.ClosingCostPercent, constants.AdvancedClosingCostPercent))

	return profiles{
		funding: projection.NewFundingProfile(price, *in.DownPaymentAmount, closingCosts, valueOr(in.InitialRepairs, 0),
			valueOr(in.InterestRate, constants.AdvancedInterestRate), loanTerm),
		operating: projection.OperatingProfile{
			MonthlyRent:          rent,
			VacancyRate:          vacancy,
			EffectiveMonthlyRent: rent * (1 - vacancy/constants.PercentageMultiplier),
			PropertyTax:          valueOr(in.PropertyTax, 0),
			Insurance:            valueOr(in.Insurance, 0),
			ManagementFee:        mathutil.ApplyPercentage(rent, valueOr(in.ManagementFeePercent, 0)),
			Maintenance: mathutil.ApplyPercentage(price,
				valueOr(in.MaintenancePercent, constants.AdvancedMaintenancePercent)) / constants.MonthsPerYear,
			HOAFees:  valueOr(in.HOAFees, 0),
			Itemized: true,
		},
		params: projection.Parameters{
			HoldingPeriodYears: int(holdingPeriod),
			AppreciationRate:   valueOr(in.AppreciationRate, constants.AdvancedAppreciationRate),
			SellingCostPercent: valueOr(in.SellingCostPercent, constants.AdvancedSellingCostPercent),
		},
	}, nil
}

// checkLoanTerm rejects terms outside (0, MaxLoanTermYears], including NaN.
func checkLoanTerm(years float64) (float64, error) {
	switch {
	case !(years > 0):
		return 0, invalidFieldError(fieldLoanTerm, "must be greater than zero")
	case years > constants.MaxLoanTermYears:
		return 0, invalidFieldError(fieldLoanTerm,
			fmt.Sprintf("must be at most %g years", constants.MaxLoanTermYears))
	}
	return years, nil
}
