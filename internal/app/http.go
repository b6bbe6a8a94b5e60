package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"docmint/internal/docstate"
	"docmint/internal/export"
	"docmint/internal/render"
)

// PasscodeHeader carries the profile passcode on mutating requests
// while the profile is locked.
const PasscodeHeader = "X-Docmint-Passcode"

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/ready" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		statusCode := http.StatusOK
		checks := map[string]any{
			"store": map[string]any{"status": "ok"},
		}

		if err := s.service.Ping(ctx); err != nil {
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
			checks["store"] = map[string]any{
				"status": "error",
				"error":  err.Error(),
			}
		}

		writeJSON(w, statusCode, map[string]any{
			"ok":     status == "ready",
			"status": status,
			"checks": checks,
		})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/state" {
		writeJSON(w, http.StatusOK, map[string]any{
			"state":  s.service.State(),
			"locked": s.service.Locked(),
		})
		return
	}

	// Everything below GETs mutates state or the lock; enforce the
	// passcode once the profile is locked.
	if mutating(r) && s.service.Locked() && r.URL.Path != "/api/profile/unlock" {
		if err := s.service.VerifyPasscode(r.Header.Get(PasscodeHeader)); err != nil {
			writeError(w, http.StatusUnauthorized, "LOCKED", "Profile is locked", nil)
			return
		}
	}

	if r.Method == http.MethodPatch && r.URL.Path == "/api/state/field" {
		var body struct {
			Section string `json:"section"`
			Field   string `json:"field"`
			Value   string `json:"value"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if strings.TrimSpace(body.Section) == "" || strings.TrimSpace(body.Field) == "" {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "section and field are required", nil)
			return
		}
		state, warning, err := s.service.EditField(body.Section, body.Field, body.Value)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		payload := map[string]any{"state": state}
		if warning != "" {
			payload["warning"] = warning
		}
		writeJSON(w, http.StatusOK, payload)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/state/reset" {
		writeJSON(w, http.StatusOK, map[string]any{"state": s.service.Reset(r.Context())})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/state/randomize" {
		writeJSON(w, http.StatusOK, map[string]any{"state": s.service.Randomize()})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/documents" {
		writeJSON(w, http.StatusOK, map[string]any{"documents": s.service.Documents()})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/export" {
		var body struct {
			Document string `json:"document"`
			Format   string `json:"format"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		format := export.Format(body.Format)
		if format != export.FormatPDF && format != export.FormatPNG && format != export.FormatZip {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "format must be 'pdf', 'png' or 'zip'", nil)
			return
		}
		result, link, err := s.service.Export(r.Context(), export.Request{
			Document: body.Document,
			Format:   format,
		})
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		if link != "" {
			w.Header().Set("X-Artifact-URL", link)
		}
		w.Header().Set("Content-Disposition", "attachment; filename=\""+result.Filename+"\"")
		w.Header().Set("Content-Type", result.MimeType)
		w.Write(result.Data)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/snapshots" {
		limit := 20
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be an integer", nil)
				return
			}
			limit = parsed
		}
		entries, err := s.service.Snapshots(limit)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"snapshots": entries})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/snapshots" {
		var body struct {
			Message string `json:"message"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		entry, err := s.service.TakeSnapshot(strings.TrimSpace(body.Message))
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"snapshot": entry})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/directory/search" {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		limit := 10
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be an integer", nil)
				return
			}
			limit = parsed
		}
		writeJSON(w, http.StatusOK, s.service.SearchDirectory(q, limit))
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/profile/lock" {
		var body struct {
			Passcode string `json:"passcode"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.Lock(body.Passcode); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"locked": true})
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/profile/unlock" {
		var body struct {
			Passcode string `json:"passcode"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		if err := s.service.Unlock(body.Passcode); err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"locked": false})
		return
	}

	parts := splitPath(r.URL.Path)

	if len(parts) == 4 && parts[0] == "api" && parts[1] == "documents" && parts[3] == "preview" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
			return
		}
		html, err := s.service.Preview(parts[2])
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, html)
		return
	}

	if len(parts) == 4 && parts[0] == "api" && parts[1] == "snapshots" && parts[3] == "restore" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
			return
		}
		state, err := s.service.RestoreSnapshot(parts[2])
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": state})
		return
	}

	if len(parts) >= 4 && parts[0] == "api" && parts[1] == "state" && parts[2] == "list" {
		s.handleList(w, r, parts[3], parts[4:])
		return
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
}

func (s *HTTPServer) handleList(w http.ResponseWriter, r *http.Request, section string, rest []string) {
	switch section {
	case "earnings":
		s.handleEarnings(w, r, rest)
	case "teachingAreas":
		s.handleTeachingAreas(w, r, rest)
	case "taxes", "preTaxReductions", "deductions", "employerContributions":
		s.handleAmounts(w, r, section, rest)
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown list section", nil)
	}
}

func (s *HTTPServer) handleEarnings(w http.ResponseWriter, r *http.Request, rest []string) {
	if r.Method == http.MethodPost && len(rest) == 0 {
		var item docstate.EarningItem
		if err := decodeBody(r, &item); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": s.service.AddEarning(item)})
		return
	}

	if r.Method == http.MethodPut && len(rest) == 1 {
		var item docstate.EarningItem
		if err := decodeBody(r, &item); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		state, err := s.service.UpdateEarning(rest[0], item)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": state})
		return
	}

	if r.Method == http.MethodDelete && len(rest) == 1 {
		state, err := s.service.RemoveEarning(rest[0])
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": state})
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
}

func (s *HTTPServer) handleAmounts(w http.ResponseWriter, r *http.Request, section string, rest []string) {
	if r.Method == http.MethodPost && len(rest) == 0 {
		var item docstate.AmountItem
		if err := decodeBody(r, &item); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		state, err := s.service.AddItem(section, item)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": state})
		return
	}

	if r.Method == http.MethodPut && len(rest) == 1 {
		var item docstate.AmountItem
		if err := decodeBody(r, &item); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		state, err := s.service.UpdateItem(section, rest[0], item)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": state})
		return
	}

	if r.Method == http.MethodDelete && len(rest) == 1 {
		state, err := s.service.RemoveItem(section, rest[0])
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": state})
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
}

func (s *HTTPServer) handleTeachingAreas(w http.ResponseWriter, r *http.Request, rest []string) {
	if r.Method == http.MethodPost && len(rest) == 0 {
		var area docstate.TeachingArea
		if err := decodeBody(r, &area); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": s.service.AddTeachingArea(area)})
		return
	}

	if r.Method == http.MethodPut && len(rest) == 1 {
		var area docstate.TeachingArea
		if err := decodeBody(r, &area); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error(), nil)
			return
		}
		state, err := s.service.UpdateTeachingArea(rest[0], area)
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": state})
		return
	}

	if r.Method == http.MethodDelete && len(rest) == 1 {
		state, err := s.service.RemoveTeachingArea(rest[0])
		if err != nil {
			status, code, message, details := mapError(err)
			writeError(w, status, code, message, details)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"state": state})
		return
	}

	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
}

func mutating(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, "+PasscodeHeader)
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		// An empty body leaves the target at its zero value; callers
		// default the missing fields.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	if errors.Is(err, render.ErrUnknownDocument) {
		return http.StatusNotFound, "UNKNOWN_DOCUMENT", err.Error(), nil
	}
	if errors.Is(err, export.ErrChromeMissing) {
		return http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "PDF runtime not available", nil
	}
	if errors.Is(err, export.ErrUnsupportedFormat) {
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error", nil
}
