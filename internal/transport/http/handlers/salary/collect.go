package salaryhandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"salarydecoder/internal/domain/salary"
	"salarydecoder/internal/transport/http/api"
	"salarydecoder/internal/transport/http/shared"
)

const maxAmountReason = "must be at most 10000000000"

type inputRequest struct {
	Month            string          `json:"month"`
	Period           string          `json:"period"`
	Basic            json.RawMessage `json:"basic"`
	HRA              json.RawMessage `json:"hra"`
	SpecialAllowance json.RawMessage `json:"specialAllowance"`
	OtherAllowance   json.RawMessage `json:"otherAllowance"`
	EmployeePF       json.RawMessage `json:"employeePF"`
	EmployerPF       json.RawMessage `json:"employerPF"`
	ProfessionalTax  json.RawMessage `json:"professionalTax"`
	IncomeTax        json.RawMessage `json:"incomeTax"`
}

// ParseInput validates a payslip form body and returns monthly amounts.
// On failure it has already written the 400 response.
func ParseInput(w http.ResponseWriter, body []byte, requestID string) (salary.Input, bool) {
	var payload inputRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return salary.Input{}, false
	}

	v := shared.NewValidator()
	month, ok := salary.NormalizeMonth(payload.Month)
	switch {
	case strings.TrimSpace(payload.Month) == "":
		v.Add("month", "is required")
	case !ok:
		v.Add("month", "must be a calendar month name")
	}
	period, ok := salary.ParsePeriod(strings.ToLower(strings.TrimSpace(payload.Period)))
	if !ok {
		v.Add("period", "must be monthly or annual")
	}

	amount := func(field string, raw json.RawMessage) float64 {
		value := v.Amount(field, raw)
		if value > salary.MaxAmount {
			v.Add(field, maxAmountReason)
			return 0
		}
		return value
	}
	in := salary.Input{
		Month:            month,
		Basic:            amount("basic", payload.Basic),
		HRA:              amount("hra", payload.HRA),
		SpecialAllowance: amount("specialAllowance", payload.SpecialAllowance),
		OtherAllowance:   amount("otherAllowance", payload.OtherAllowance),
		EmployeePF:       amount("employeePF", payload.EmployeePF),
		EmployerPF:       amount("employerPF", payload.EmployerPF),
		ProfessionalTax:  amount("professionalTax", payload.ProfessionalTax),
		IncomeTax:        amount("incomeTax", payload.IncomeTax),
	}
	if v.Reject(w, requestID) {
		return salary.Input{}, false
	}
	return salary.Monthly(in, period), true
}
