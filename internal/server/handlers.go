package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/hitung/internal/calc"
	"github.com/hyperjump/hitung/internal/catalog"
	"github.com/hyperjump/hitung/internal/export"
	"github.com/hyperjump/hitung/internal/formula"
	"github.com/hyperjump/hitung/internal/models"
	"github.com/hyperjump/hitung/internal/pages"
	"github.com/hyperjump/hitung/internal/units"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	breakers := make(map[string]string)
	for _, name := range []string{"postal", "ifsc", "qr"} {
		if st, ok := s.lookup.BreakerState(name); ok {
			breakers[name] = st.String()
		}
	}
	s.respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:      "ok",
		Version:     s.version,
		Calculators: len(catalog.All()),
		Breakers:    breakers,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, catalog.Categories())
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := catalog.CategoryByID(chi.URLParam(r, "category"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "category not found")
		return
	}
	s.respondJSON(w, http.StatusOK, cat)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.logger.Debug("search request", zap.String("query", q))
	response, err := s.searcher.Search(r.Context(), q)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "search failed")
		return
	}
	mode := "exact"
	switch {
	case strings.TrimSpace(q) == "":
		mode = "blank"
	case response.AutoFuzzy:
		mode = "fuzzy"
	}
	s.metrics.Searches.WithLabelValues(mode).Inc()
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, units.Categories())
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req models.ConvertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := models.Validate(&req); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	res, err := calc.Convert(*req.Value, req.From, req.To, units.CategoryID(req.Category))
	if err != nil {
		s.metrics.Conversions.WithLabelValues(req.Category, "error").Inc()
		s.respondError(w, statusFor(err), err.Error())
		return
	}
	s.metrics.Conversions.WithLabelValues(req.Category, "ok").Inc()
	s.respondJSON(w, http.StatusOK, res)
}

// handleSchedule exports the amortization schedule of
// ?principal=&rate=&months= as an XLSX workbook.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := models.ScheduleRequest{}
	var parseErr error
	parse := func(name string) float64 {
		v, err := strconv.ParseFloat(q.Get(name), 64)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("%s must be a number", name)
		}
		return v
	}
	req.Principal = parse("principal")
	req.AnnualRate = parse("rate")
	months := parse("months")
	req.Months = int(months)
	if parseErr == nil && months != float64(req.Months) {
		parseErr = errors.New("months must be a whole number")
	}
	if parseErr != nil {
		s.respondError(w, http.StatusBadRequest, parseErr.Error())
		return
	}
	if err := models.Validate(&req); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var buf bytes.Buffer
	loan := formula.EMIInput{Principal: req.Principal, AnnualRate: req.AnnualRate, Months: req.Months}
	if err := export.AmortizationXLSX(&buf, loan); err != nil {
		if errors.Is(err, formula.ErrInvalidInput) {
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("schedule export failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "export failed")
		return
	}
	s.metrics.Calculations.WithLabelValues("emi-schedule", "ok").Inc()
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="emi-schedule.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	list, err := pages.List()
	if err != nil {
		s.logger.Error("list pages failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "pages unavailable")
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := pages.Render(chi.URLParam(r, "slug"))
	if errors.Is(err, pages.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "page not found")
		return
	}
	if err != nil {
		s.logger.Error("render page failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "pages unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<!doctype html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(page.Title), page.HTML)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(models.ErrorResponse{Error: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.ErrorResponse{Error: message})
}
