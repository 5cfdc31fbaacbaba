package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationEntry is an immutable value object representing one period in a
// repayment schedule.
type AmortizationEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// MonthlyInstallment computes the fixed EMI for a loan using the standard
/// amortization formula:
//
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate (annualRatePercent / 100 / 12) and n the tenure
// in months. The power term uses float64; the result switches back to decimal
// and is rounded to 2 places. A zero rate degenerates to an even split.
func MonthlyInstallment(principal decimal.Decimal, annualRatePercent float64, termMonths int) decimal.Decimal {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	monthlyRate := annualRatePercent / 100.0 / 12.0
	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}

	factor := math.Pow(1+monthlyRate, float64(termMonths))
	emi := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(emi).Round(2)
}

// GenerateAmortizationSchedule computes the full fixed-payment repayment
// schedule for a sanctioned loan. The last period absorbs rounding drift so
// the balance reaches exactly zero.
func GenerateAmortizationSchedule(
	principal decimal.Decimal,
	annualRatePercent float64,
	termMonths int,
	startDate time.Time,
) []AmortizationEntry {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	monthlyPayment := MonthlyInstallment(principal, annualRatePercent, termMonths)
	monthlyRate := decimal.NewFromFloat(annualRatePercent / 100.0 / 12.0)

	schedule := make([]AmortizationEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		dueDate := startDate.AddDate(0, period, 0)

		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := monthlyPayment.Sub(interest)

		if period == termMonths {
			principalPart = remaining
			monthlyPayment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          dueDate,
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}
