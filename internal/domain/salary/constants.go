package salary

const (
	KindEarning   Kind = "earning"
	KindDeduction Kind = "deduction"
	KindEmployer  Kind = "employer"

	PeriodMonthly Period = "monthly"
	PeriodAnnual  Period = "annual"

	LabelBasic            = "Basic Salary"
	LabelHRA              = "HRA"
	LabelSpecialAllowance = "Special Allowance"
	LabelOtherAllowance   = "Other Allowances"
	LabelEmployeePF       = "Employee PF"
	LabelProfessionalTax  = "Professional Tax"
	LabelIncomeTax        = "Income Tax"
	LabelEmployerPF       = "Employer PF"
)

// Rules of thumb, not tax law.
const (
	DefaultPFRate                 = 0.12
	DefaultPFTolerance            = 100
	DefaultPFRatioMin             = 0.8
	DefaultPFRatioMax             = 1.2
	DefaultProfessionalTaxCeiling = 2500
	DefaultHRAPercentCeiling      = 60
)

// MaxAmount caps one line item so stored totals fit NUMERIC(14,2).
const MaxAmount = 10_000_000_000
