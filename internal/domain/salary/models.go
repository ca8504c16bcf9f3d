package salary

type Kind string

type Period string

type Input struct {
	Month            string  `json:"month"`
	Basic            float64 `json:"basic"`
	HRA              float64 `json:"hra"`
	SpecialAllowance float64 `json:"specialAllowance"`
	OtherAllowance   float64 `json:"otherAllowance"`
	EmployeePF       float64 `json:"employeePF"`
	EmployerPF       float64 `json:"employerPF"`
	ProfessionalTax  float64 `json:"professionalTax"`
	IncomeTax        float64 `json:"incomeTax"`
}

type BreakdownRow struct {
	Label      string  `json:"label"`
	Amount     float64 `json:"amount"`
	Kind       Kind    `json:"kind"`
	Percentage float64 `json:"percentage"`
}

type Result struct {
	GrossSalary     float64        `json:"grossSalary"`
	TotalDeductions float64        `json:"totalDeductions"`
	InHandSalary    float64        `json:"inHandSalary"`
	CTC             float64        `json:"ctc"`
	Warnings        []string       `json:"warnings"`
	Breakdown       []BreakdownRow `json:"breakdown"`
}

type Rules struct {
	PFRate                 float64
	PFTolerance            float64
	PFRatioMin             float64
	PFRatioMax             float64
	ProfessionalTaxCeiling float64
	HRAPercentCeiling      float64
}

func DefaultRules() Rules {
	return Rules{
		PFRate:                 DefaultPFRate,
		PFTolerance:            DefaultPFTolerance,
		PFRatioMin:             DefaultPFRatioMin,
		PFRatioMax:             DefaultPFRatioMax,
		ProfessionalTaxCeiling: DefaultProfessionalTaxCeiling,
		HRAPercentCeiling:      DefaultHRAPercentCeiling,
	}
}
