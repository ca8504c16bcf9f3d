package salary

import "github.com/shopspring/decimal"

var monthsPerYear = decimal.NewFromInt(12)

// ConvertPeriod rounds annual amounts to the rupee, so a round trip can drift by up to 6.
func ConvertPeriod(amount float64, from Period) float64 {
	if from == PeriodAnnual {
		return decimal.NewFromFloat(amount).Div(monthsPerYear).Round(0).InexactFloat64()
	}
	return amount * 12
}

func Monthly(in Input, period Period) Input {
	if period != PeriodAnnual {
		return in
	}
	return Input{
		Month:            in.Month,
		Basic:            ConvertPeriod(in.Basic, PeriodAnnual),
		HRA:              ConvertPeriod(in.HRA, PeriodAnnual),
		SpecialAllowance: ConvertPeriod(in.SpecialAllowance, PeriodAnnual),
		OtherAllowance:   ConvertPeriod(in.OtherAllowance, PeriodAnnual),
		EmployeePF:       ConvertPeriod(in.EmployeePF, PeriodAnnual),
		EmployerPF:       ConvertPeriod(in.EmployerPF, PeriodAnnual),
		ProfessionalTax:  ConvertPeriod(in.ProfessionalTax, PeriodAnnual),
		IncomeTax:        ConvertPeriod(in.IncomeTax, PeriodAnnual),
	}
}

func ParsePeriod(raw string) (Period, bool) {
	switch Period(raw) {
	case "", PeriodMonthly:
		return PeriodMonthly, true
	case PeriodAnnual:
		return PeriodAnnual, true
	}
	return "", false
}
