package payslipshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"salarydecoder/internal/domain/audit"
	"salarydecoder/internal/domain/payslip"
	"salarydecoder/internal/domain/report"
	"salarydecoder/internal/domain/salary"
	"salarydecoder/internal/transport/http/api"
	salaryhandler "salarydecoder/internal/transport/http/handlers/salary"
	"salarydecoder/internal/transport/http/middleware"
	"salarydecoder/internal/transport/http/shared"
)

const (
	saveEndpoint = "POST /payslips"
	exportLimit  = 5000
)

type Service interface {
	Save(ctx context.Context, ownerID string, in salary.Input) (payslip.Payslip, error)
	List(ctx context.Context, ownerID string, limit, offset int) (payslip.Page, error)
	Summary(ctx context.Context, ownerID string) (payslip.Summary, error)
	Report(ctx context.Context, ownerID, id string) (payslip.Record, salary.Result, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type Handler struct {
	Service     Service
	Audit       audit.Recorder
	Idempotency middleware.IdempotencyKeeper
}

func NewHandler(service Service, auditor audit.Recorder, idem middleware.IdempotencyKeeper) *Handler {
	return &Handler{Service: service, Audit: auditor, Idempotency: idem}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Post("/", h.handleSave)
		r.Get("/summary", h.handleSummary)
		r.Get("/export", h.handleExport)
		r.Get("/{payslipID}/report", h.handleReport)
		r.Delete("/{payslipID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	page := shared.PayslipPages.Parse(r)

	result, err := h.Service.List(r.Context(), user.UserID, page.Limit, page.Offset)
	if err != nil {
		slog.Error("list payslips failed", "userId", user.UserID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_list_failed", "failed to list payslips", requestID)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, result, requestID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	summary, err := h.Service.Summary(r.Context(), user.UserID)
	if err != nil {
		slog.Error("summarize payslips failed", "userId", user.UserID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_summary_failed", "failed to summarize payslips", requestID)
		return
	}
	api.Success(w, summary, requestID)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	body, ok := salaryhandler.ReadBody(w, r, requestID)
	if !ok {
		return
	}
	in, ok := salaryhandler.ParseInput(w, body, requestID)
	if !ok {
		return
	}

	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	requestHash := middleware.RequestHash(body)
	if key != "" && h.Idempotency != nil {
		stored, found, err := h.Idempotency.Check(r.Context(), user.UserID, saveEndpoint, key, requestHash)
		if errors.Is(err, middleware.ErrIdempotencyConflict) {
			api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key was used with a different payload", requestID)
			return
		}
		if err != nil {
			slog.Error("idempotency check failed", "userId", user.UserID, "err", err)
			api.Fail(w, http.StatusInternalServerError, "idempotency_error", "failed to check idempotency key", requestID)
			return
		}
		if found {
			w.Header().Set("Idempotent-Replay", "true")
			api.Created(w, stored, requestID)
			return
		}
	}

	saved, err := h.Service.Save(r.Context(), user.UserID, in)
	if err != nil {
		slog.Error("save payslip failed", "userId", user.UserID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_save_failed", "failed to save payslip", requestID)
		return
	}
	h.record(r, user.UserID, audit.ActionPayslipSave, saved.ID, saved)

	if key != "" && h.Idempotency != nil {
		payload, err := json.Marshal(saved)
		if err == nil {
			err = h.Idempotency.Save(r.Context(), user.UserID, saveEndpoint, key, requestHash, payload)
		}
		if err != nil {
			slog.Warn("idempotency save failed", "userId", user.UserID, "key", key, "err", err)
		}
	}
	api.Created(w, saved, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "payslipID")

	err := h.Service.Delete(r.Context(), user.UserID, id)
	if errors.Is(err, payslip.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestID)
		return
	}
	if err != nil {
		slog.Error("delete payslip failed", "userId", user.UserID, "payslipId", id, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_delete_failed", "failed to delete payslip", requestID)
		return
	}
	h.record(r, user.UserID, audit.ActionPayslipDelete, id, nil)
	api.Success(w, map[string]string{"id": id, "status": "deleted"}, requestID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "payslipID")

	rec, res, err := h.Service.Report(r.Context(), user.UserID, id)
	if errors.Is(err, payslip.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestID)
		return
	}
	if err != nil {
		slog.Error("load payslip failed", "userId", user.UserID, "payslipId", id, "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", requestID)
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, rec.Input, res); err != nil {
		slog.Error("render payslip pdf failed", "payslipId", id, "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", requestID)
		return
	}
	api.Attachment(w, "application/pdf", salaryhandler.ReportFilename(rec.Month), buf.Bytes())
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	page, err := h.Service.List(r.Context(), user.UserID, exportLimit, 0)
	if err != nil {
		slog.Error("export payslips failed", "userId", user.UserID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_export_failed", "failed to export payslips", requestID)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteHistoryXLSX(&buf, page.Items); err != nil {
		slog.Error("render payslip workbook failed", "userId", user.UserID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_export_failed", "failed to export payslips", requestID)
		return
	}
	api.Attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "payslips.xlsx", buf.Bytes())
}

func (h *Handler) record(r *http.Request, actorID, action, entityID string, after any) {
	if h.Audit == nil {
		return
	}
	err := h.Audit.Record(r.Context(), audit.Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: audit.EntityPayslip,
		EntityID:   entityID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         middleware.ClientIP(r),
		After:      after,
	})
	if err != nil {
		slog.Warn("audit record failed", "action", action, "entityId", entityID, "err", err)
	}
}
