package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/hitung/internal/lookup"
	"github.com/hyperjump/hitung/internal/models"
)

// Lookup kinds recorded in a session's latest result.
const (
	kindPIN  = "pin"
	kindArea = "area"
	kindIFSC = "ifsc"
)

// lookupCall runs one upstream lookup and shapes its JSON result.
type lookupCall func(ctx context.Context) (any, error)

func (s *Server) handlePIN(w http.ResponseWriter, r *http.Request) {
	pin := chi.URLParam(r, "pin")
	s.runLookup(w, r, "postal", kindPIN, pin, func(ctx context.Context) (any, error) {
		offices, err := s.lookup.PINLookup(ctx, pin)
		if err != nil {
			return nil, err
		}
		return models.PostOfficesResponse{Query: pin, Count: len(offices), PostOffices: offices}, nil
	})
}

func (s *Server) handleArea(w http.ResponseWriter, r *http.Request) {
	area := chi.URLParam(r, "area")
	s.runLookup(w, r, "postal", kindArea, area, func(ctx context.Context) (any, error) {
		offices, err := s.lookup.AreaLookup(ctx, area)
		if err != nil {
			return nil, err
		}
		return models.PostOfficesResponse{Query: area, Count: len(offices), PostOffices: offices}, nil
	})
}

func (s *Server) handleIFSC(w http.ResponseWriter, r *http.Request) {
	code := lookup.NormalizeIFSC(chi.URLParam(r, "code"))
	s.runLookup(w, r, "ifsc", kindIFSC, code, func(ctx context.Context) (any, error) {
		return s.lookup.IFSCLookup(ctx, code)
	})
}

// runLookup executes call and writes its result. When the request carries a
// session header the outcome is offered to that session's slot, which keeps
// only the most recently issued ticket.
func (s *Server) runLookup(w http.ResponseWriter, r *http.Request, service, kind, query string, call lookupCall) {
	ticket := s.seq.Next()
	start := time.Now()
	result, err := call(r.Context())
	outcome := lookupOutcome(err)
	s.metrics.ObserveLookup(service, outcome, time.Since(start))

	if session := r.Header.Get(SessionHeader); session != "" && !errors.Is(err, lookup.ErrInvalidInput) {
		rec := models.LookupResult{
			Ticket:    ticket,
			Kind:      kind,
			Query:     query,
			Result:    result,
			Completed: s.now().UTC(),
		}
		if err != nil {
			rec.Error = lookupMessage(err)
			rec.Result = nil
		}
		slot := s.sessions.GetOrAdd(session, func() *lookup.Slot[models.LookupResult] {
			return &lookup.Slot[models.LookupResult]{}
		})
		if !slot.Store(ticket, rec) {
			s.logger.Debug("dropped stale lookup",
				zap.String("session", session),
				zap.String("kind", kind),
				zap.Uint64("ticket", ticket))
		}
	}

	if err != nil {
		status := lookupStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Warn("lookup failed", zap.String("kind", kind), zap.String("query", query), zap.Error(err))
		}
		s.respondError(w, status, lookupMessageFor(err, status))
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	session := r.Header.Get(SessionHeader)
	if session == "" {
		s.respondError(w, http.StatusBadRequest, SessionHeader+" header is required")
		return
	}
	slot, ok := s.sessions.Get(session)
	if !ok {
		s.respondError(w, http.StatusNotFound, "no lookup for session")
		return
	}
	rec, _, ok := slot.Load()
	if !ok {
		s.respondError(w, http.StatusNotFound, "no lookup for session")
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

// handleQR proxies the QR image for ?data=&size=.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := models.QRRequest{Data: q.Get("data"), Size: lookup.DefaultQRSize}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "size must be a whole number")
			return
		}
		req.Size = size
	}
	if err := models.Validate(&req); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	start := time.Now()
	png, err := s.lookup.FetchQR(r.Context(), req.Data, req.Size)
	s.metrics.ObserveLookup("qr", lookupOutcome(err), time.Since(start))
	if err != nil {
		status := lookupStatus(err)
		if status == http.StatusNotFound {
			status = http.StatusBadGateway
		}
		s.logger.Warn("qr fetch failed", zap.Error(err))
		s.respondError(w, status, lookupMessageFor(err, status))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func lookupOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, lookup.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, lookup.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func lookupStatus(err error) int {
	switch {
	case errors.Is(err, lookup.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, lookup.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func lookupMessage(err error) string {
	return lookupMessageFor(err, lookupStatus(err))
}

// lookupMessageFor hides upstream details behind a fixed message.
func lookupMessageFor(err error, status int) string {
	switch status {
	case http.StatusUnprocessableEntity:
		return err.Error()
	case http.StatusNotFound:
		return "not found"
	default:
		return "failed to fetch data"
	}
}
