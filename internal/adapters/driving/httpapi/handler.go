// Package httpapi exposes the audit service over HTTP.
package httpapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driving"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// MaxUploadSize caps the request body of POST /audit.
const MaxUploadSize = 32 << 20

// multipartMemory is the part of a multipart form held in memory; the rest spills to disk.
const multipartMemory = 8 << 20

const (
	detailNoReport       = "No report text or file provided."
	detailNotInitialised = "Audit service is not initialised."
	detailTooLarge       = "The upload exceeds the 32 MiB limit."
)

//go:embed static/index.html
var staticFiles embed.FS

// Handler serves the audit endpoints.
type Handler struct {
	audit    driving.AuditService
	gatherer prometheus.Gatherer
}

// New creates a handler. audit may be nil, in which case POST /audit
// answers 503. gatherer may be nil to disable /metrics.
func New(audit driving.AuditService, gatherer prometheus.Gatherer) *Handler {
	return &Handler{audit: audit, gatherer: gatherer}
}

// Routes returns the chi router with every endpoint mounted.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleIndex)
	r.Get("/healthz", h.handleHealth)
	r.Post("/audit", h.handleAudit)
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "An internal error occurred: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		writeDetail(w, http.StatusServiceUnavailable, detailNotInitialised)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	req, err := parseAuditRequest(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > MaxUploadSize {
			writeDetail(w, http.StatusRequestEntityTooLarge, detailTooLarge)
			return
		}
		writeDetail(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}
	if req.Empty() {
		writeDetail(w, http.StatusBadRequest, detailNoReport)
		return
	}

	reqID := middleware.GetReqID(r.Context())
	logger.Info("[%s] Audit request: file=%q (%d bytes), text=%d characters",
		reqID, req.FileName, len(req.FileContent), len(req.ReportText))

	result, err := h.audit.RunAudit(r.Context(), req)
	if errors.Is(err, domain.ErrNoReport) {
		writeDetail(w, http.StatusBadRequest, detailNoReport)
		return
	}
	if err != nil {
		logger.Error("[%s] An error occurred during the audit process: %v", reqID, err)
		writeDetail(w, http.StatusInternalServerError, "An internal error occurred: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseAuditRequest reads report_text and report_file from a multipart or
// urlencoded form. Either field may be absent.
func parseAuditRequest(r *http.Request) (domain.AuditRequest, error) {
	var req domain.AuditRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return req, err
		}
	} else if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.ReportText = r.FormValue("report_text")

	file, header, err := r.FormFile("report_file")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return req, nil
	case err != nil:
		return req, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return req, err
	}
	req.FileContent = content
	req.FileName = header.Filename
	return req, nil
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

// writeJSON encodes body before writing the status so an encoding failure
// can still be reported as a 500.
func writeJSON(w http.ResponseWriter, status int, body any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		logger.Error("Failed to encode response: %v", err)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = enc.Encode(detailResponse{Detail: "An internal error occurred: " + err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("Failed to write response: %v", err)
	}
}
