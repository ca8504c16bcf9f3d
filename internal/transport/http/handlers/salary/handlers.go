package salaryhandler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salarydecoder/internal/domain/report"
	"salarydecoder/internal/domain/salary"
	"salarydecoder/internal/transport/http/api"
	"salarydecoder/internal/transport/http/middleware"
)

type CalculationRecorder interface {
	RecordCalculation(warnings int)
}

type Handler struct {
	Calculator *salary.Calculator
	Metrics    CalculationRecorder
}

func NewHandler(calc *salary.Calculator, metrics CalculationRecorder) *Handler {
	return &Handler{Calculator: calc, Metrics: metrics}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/salary/calculate", h.handleCalculate)
	r.Post("/salary/report", h.handleReport)
}

type calculateResponse struct {
	Input  salary.Input  `json:"input"`
	Result salary.Result `json:"result"`
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	in, res, ok := h.Compute(w, r)
	if !ok {
		return
	}
	api.Success(w, calculateResponse{Input: in, Result: res}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	in, res, ok := h.Compute(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.WritePDF(&buf, in, res); err != nil {
		slog.Error("render payslip pdf failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Attachment(w, "application/pdf", ReportFilename(in.Month), buf.Bytes())
}

// Compute reads and validates the form body, then runs the calculator.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) (salary.Input, salary.Result, bool) {
	requestID := middleware.GetRequestID(r.Context())
	body, ok := ReadBody(w, r, requestID)
	if !ok {
		return salary.Input{}, salary.Result{}, false
	}
	in, ok := ParseInput(w, body, requestID)
	if !ok {
		return salary.Input{}, salary.Result{}, false
	}
	res := h.Calculator.Compute(in)
	if h.Metrics != nil {
		h.Metrics.RecordCalculation(len(res.Warnings))
	}
	return in, res, true
}

func ReadBody(w http.ResponseWriter, r *http.Request, requestID string) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request payload too large", requestID)
			return nil, false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return nil, false
	}
	return body, true
}

func ReportFilename(month string) string {
	if month == "" {
		return "payslip.pdf"
	}
	return "payslip-" + month + ".pdf"
}
