package salary

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

type Calculator struct {
	rules Rules
}

func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules}
}

func (c *Calculator) Rules() Rules {
	return c.rules
}

// Compute uses the default rules.
func Compute(in Input) Result {
	return NewCalculator(DefaultRules()).Compute(in)
}

func (c *Calculator) Compute(in Input) Result {
	gross := in.Basic + in.HRA + in.SpecialAllowance + in.OtherAllowance
	deductions := in.EmployeePF + in.ProfessionalTax + in.IncomeTax
	ctc := gross + in.EmployerPF

	return Result{
		GrossSalary:     gross,
		TotalDeductions: deductions,
		InHandSalary:    gross - deductions,
		CTC:             ctc,
		Warnings:        c.warnings(in),
		Breakdown:       breakdown(in, ctc),
	}
}

func (c *Calculator) ExpectedPF(basic float64) float64 {
	return decimal.NewFromFloat(basic).
		Mul(decimal.NewFromFloat(c.rules.PFRate)).
		Round(0).
		InexactFloat64()
}

func (c *Calculator) warnings(in Input) []string {
	warnings := []string{}

	expectedPF := c.ExpectedPF(in.Basic)
	if in.Basic > 0 && math.Abs(in.EmployeePF-expectedPF) > c.rules.PFTolerance {
		warnings = append(warnings, fmt.Sprintf(
			"Your Employee PF (%s) differs from the standard %s%% of basic salary (%s). This could be due to a different PF rate or a cap on PF-eligible salary.",
			FormatINR(in.EmployeePF), percentText(c.rules.PFRate), FormatINR(expectedPF),
		))
	}

	if in.EmployeePF > 0 && in.EmployerPF > 0 {
		ratio := in.EmployerPF / in.EmployeePF
		if ratio < c.rules.PFRatioMin || ratio > c.rules.PFRatioMax {
			warnings = append(warnings, fmt.Sprintf(
				"Employer PF (%s) and Employee PF (%s) don't match closely. Usually both are equal.",
				FormatINR(in.EmployerPF), FormatINR(in.EmployeePF),
			))
		}
	}

	if in.ProfessionalTax > c.rules.ProfessionalTaxCeiling {
		warnings = append(warnings, fmt.Sprintf(
			"Professional Tax (%s) exceeds the usual monthly maximum of %s. Please verify.",
			FormatINR(in.ProfessionalTax), FormatINR(c.rules.ProfessionalTaxCeiling),
		))
	}

	if in.Basic > 0 && in.HRA > 0 {
		hraPercent := in.HRA / in.Basic * 100
		if hraPercent > c.rules.HRAPercentCeiling {
			warnings = append(warnings, fmt.Sprintf(
				"HRA is %s%% of your basic salary, which is higher than the usual 40-50%%. This may affect HRA tax exemption.",
				decimal.NewFromFloat(hraPercent).StringFixed(1),
			))
		}
	}

	return warnings
}

func breakdown(in Input, ctc float64) []BreakdownRow {
	canonical := []struct {
		label  string
		amount float64
		kind   Kind
	}{
		{LabelBasic, in.Basic, KindEarning},
		{LabelHRA, in.HRA, KindEarning},
		{LabelSpecialAllowance, in.SpecialAllowance, KindEarning},
		{LabelOtherAllowance, in.OtherAllowance, KindEarning},
		{LabelEmployeePF, in.EmployeePF, KindDeduction},
		{LabelProfessionalTax, in.ProfessionalTax, KindDeduction},
		{LabelIncomeTax, in.IncomeTax, KindDeduction},
		{LabelEmployerPF, in.EmployerPF, KindEmployer},
	}

	rows := make([]BreakdownRow, 0, len(canonical))
	for _, item := range canonical {
		if item.amount == 0 {
			continue
		}
		percentage := 0.0
		if ctc != 0 {
			percentage = item.amount / ctc * 100
		}
		rows = append(rows, BreakdownRow{
			Label:      item.label,
			Amount:     item.amount,
			Kind:       item.kind,
			Percentage: percentage,
		})
	}
	return rows
}

func percentText(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).String()
}
