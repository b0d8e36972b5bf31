// Package httpio serves export and import over HTTP.
package httpio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/models"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/output"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv/parser"
)

// RequestIDHeader carries the request ID on every response.
const RequestIDHeader = "X-Request-ID"

// UploadField is the multipart form field holding the document to import.
const UploadField = "file"

type ctxKey struct{}

// RequestID returns the ID assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Server routes export and import requests.
type Server struct {
	router    *chi.Mux
	opts      sheetconv.Options
	maxUpload int64
}

// NewServer returns a server exporting with opts and accepting request
// bodies of at most maxUpload bytes.
func NewServer(opts sheetconv.Options, maxUpload int64) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		opts:      opts,
		maxUpload: maxUpload,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestID)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/export", s.handleExport)
	s.router.Post("/import", s.handleImport)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExport reads a JSON export job and answers with the document.
// Query parameters: emptySheets=fail|skip, parseDates=true.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts := s.opts
	if v := r.URL.Query().Get("emptySheets"); v != "" {
		policy, err := sheetconv.ParseEmptySheetPolicy(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		opts.EmptySheets = policy
	}

	var job models.ExportJob
	body := http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := json.NewDecoder(body).Decode(&job); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, r, status, err)
		return
	}

	if parse, _ := strconv.ParseBool(r.URL.Query().Get("parseDates")); parse {
		for i := range job.Sheets {
			models.ParseDates(job.Sheets[i].Rows, time.UTC)
		}
	}

	if err := sheetconv.ExportTo(r.Context(), job, sheetconv.ToResponse(w), opts); err != nil {
		writeError(w, r, statusFor(err), err)
	}
}

// handleImport reads the uploaded document and answers with its records.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	rows, err := sheetconv.Import(r.Context(), sheetconv.FromUpload(r, UploadField, s.maxUpload))
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, r, http.StatusOK, rows)
}

// statusFor maps conversion errors to response codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, sheetconv.ErrNoFile),
		errors.Is(err, sheetconv.ErrEmptySheet),
		errors.Is(err, sheetconv.ErrEmptyJob),
		errors.Is(err, sheetconv.ErrDuplicateSheet),
		errors.Is(err, sheetconv.ErrInvalidSheetName),
		errors.Is(err, parser.ErrInvalidStyle):
		return http.StatusBadRequest
	case errors.Is(err, sheetconv.ErrDecode),
		errors.Is(err, sheetconv.ErrNoSheet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	data, err := output.ToJSON(v, pretty)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logrus.WithFields(logrus.Fields{
		"request_id": RequestID(r.Context()),
		"status":     status,
	}).Warnf("request failed: %v", err)

	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
