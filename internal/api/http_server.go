// Package api exposes the reservation desk over HTTP. Routing sticks to
// net/http and a ServeMux; handlers translate service errors into status
// codes and never leak SQL details to the caller.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"oceanview/internal/config"
	"oceanview/internal/database"
	"oceanview/internal/domain"
	"oceanview/internal/export"
	"oceanview/internal/metrics"
	"oceanview/internal/service"
	"oceanview/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Services bundles everything the HTTP layer needs. Fields left nil
// disable the corresponding routes (the exporter in particular is
// optional in tests).
type Services struct {
	Reservations *service.ReservationService
	Billing      *service.BillingService
	Rooms        *service.RoomService
	Reports      *service.ReportService
	Users        *service.UserService
	Sessions     domain.SessionRepository
	Exporter     *export.Exporter
}

type HTTPServer struct {
	cfg    config.APIConfig
	svc    Services
	server *http.Server
	auth   *HTTPAuth
	logger *zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, svc Services, logger *zerolog.Logger) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{cfg: cfg, svc: svc, logger: logger}
	srv.auth = NewHTTPAuth(cfg, svc.Users)

	mux.HandleFunc("/api/v1/reservations", srv.handleReservations)
	mux.HandleFunc("/api/v1/reservations/", srv.handleReservationByNumber)
	mux.HandleFunc("/api/v1/bills", srv.handleBills)
	mux.HandleFunc("/api/v1/rooms", srv.handleRooms)
	mux.HandleFunc("/api/v1/rooms/types", srv.handleRoomTypes)
	mux.HandleFunc("/api/v1/rooms/availability/", srv.handleAvailability)
	mux.HandleFunc("/api/v1/rooms/", srv.handleRoomByID)
	mux.HandleFunc("/api/v1/reports/summary", srv.handleReportSummary)
	mux.HandleFunc("/api/v1/reports/export", srv.handleReportExport)
	mux.HandleFunc("/api/v1/users/register", srv.handleRegister)
	mux.HandleFunc("/api/v1/users/login", srv.handleLogin)
	mux.HandleFunc("/api/v1/users/logout", srv.handleLogout)
	mux.HandleFunc("/healthz", srv.handleHealthz)
	mux.HandleFunc("/readyz", srv.handleReadyz)

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.Rooms.List(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.IncHTTP(endpointLabel(r.URL.Path))
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// endpointLabel collapses path parameters so the request counter keeps a
// bounded label set.
func endpointLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/v1/reservations/"):
		return "/api/v1/reservations/:number"
	case strings.HasPrefix(path, "/api/v1/rooms/availability/"):
		return "/api/v1/rooms/availability/:type"
	default:
		return path
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps domain errors onto HTTP status codes. Anything
// unrecognized is a 500 with a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Reason,
			"field": verr.Field,
		})
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrRoomNotAvailable):
		writeError(w, http.StatusConflict, "no rooms available for the requested type")
	case errors.Is(err, database.ErrBillExists):
		writeError(w, http.StatusConflict, "bill already generated for this reservation")
	case errors.Is(err, database.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "reservation is not in a state that allows this operation")
	case errors.Is(err, database.ErrRoomNotOccupied):
		writeError(w, http.StatusConflict, "room is not occupied")
	case errors.Is(err, database.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
