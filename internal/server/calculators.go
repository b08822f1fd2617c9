package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/hitung/internal/calc"
	"github.com/hyperjump/hitung/internal/catalog"
	"github.com/hyperjump/hitung/internal/models"
)

// maxRequestBytes caps JSON request bodies.
const maxRequestBytes = 1 << 20

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !s.calcs.Has(slug) {
		if _, listed := catalog.ItemBySlug(slug); listed {
			s.respondError(w, http.StatusNotFound, "calculator has no compute endpoint")
			return
		}
		s.respondError(w, http.StatusNotFound, "calculator not found")
		return
	}

	result, err := s.calcs.Run(slug, http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		s.metrics.Calculations.WithLabelValues(slug, "error").Inc()
		s.logger.Debug("calculation rejected", zap.String("calculator", slug), zap.Error(err))
		s.respondError(w, statusFor(err), err.Error())
		return
	}
	s.metrics.Calculations.WithLabelValues(slug, "ok").Inc()
	s.respondJSON(w, http.StatusOK, models.CalculateResponse{Calculator: slug, Result: result})
}

// statusFor maps calculation and conversion errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, calc.ErrBadBody):
		return http.StatusBadRequest
	case errors.Is(err, calc.ErrUnknownCalculator):
		return http.StatusNotFound
	case calc.IsInputError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
