package explainer

import (
	"strings"

	"salarydecoder/internal/domain/salary"
)

// BuildSummary renders the plain-text payslip summary sent to the gateway.
func BuildSummary(in salary.Input, res salary.Result) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}
	inr := salary.FormatINR

	line("Month", in.Month)
	line("Basic Salary", inr(in.Basic))
	line("HRA", inr(in.HRA))
	line("Special Allowance", inr(in.SpecialAllowance))
	line("Other Allowances", inr(in.OtherAllowance))
	line("Employee PF", inr(in.EmployeePF))
	line("Employer PF", inr(in.EmployerPF))
	line("Professional Tax", inr(in.ProfessionalTax))
	line("Income Tax (TDS)", inr(in.IncomeTax))
	b.WriteString("---\n")
	line("Gross Salary", inr(res.GrossSalary))
	line("Total Deductions", inr(res.TotalDeductions))
	line("In-Hand Salary", inr(res.InHandSalary))
	b.WriteString("CTC: ")
	b.WriteString(inr(res.CTC))

	if len(res.Warnings) > 0 {
		b.WriteString("\n\nWarnings: ")
		b.WriteString(strings.Join(res.Warnings, "; "))
	}
	return b.String()
}
