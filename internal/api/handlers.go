package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"oceanview/internal/models"
	"oceanview/internal/service"
)

// requireActor resolves the acting staff user for state-changing requests.
// With auth disabled the API runs open and actions are attributed to the
// system user (id 0).
func (s *HTTPServer) requireActor(w http.ResponseWriter, r *http.Request) (int64, bool) {
	sess := s.auth.session(r)
	if sess != nil {
		return sess.UserID, true
	}
	if !s.cfg.Auth.Enabled {
		return 0, true
	}
	writeError(w, http.StatusUnauthorized, "session required")
	return 0, false
}

func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReservations(w, r)
	case http.MethodPost:
		s.createReservation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) listReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := s.svc.Reservations.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, ok := models.ParseReservationStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		filtered := make([]*models.Reservation, 0, len(reservations))
		for _, res := range reservations {
			if res.Status == status {
				filtered = append(filtered, res)
			}
		}
		reservations = filtered
	}

	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (s *HTTPServer) createReservation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	var input service.CreateReservationInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	input.CreatedBy = actorID

	reservation, err := s.svc.Reservations.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (s *HTTPServer) handleReservationByNumber(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/reservations/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	number, action, _ := strings.Cut(rest, "/")
	number = strings.TrimSpace(number)
	if number == "" {
		writeError(w, http.StatusBadRequest, "reservation number is required")
		return
	}

	switch action {
	case "":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		reservation, err := s.svc.Reservations.GetByNumber(r.Context(), number)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reservation)
	case "check-out":
		s.transitionReservation(w, r, number, models.StatusCheckedOut)
	case "cancel":
		s.transitionReservation(w, r, number, models.StatusCancelled)
	case "bill":
		s.handleReservationBill(w, r, number)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) transitionReservation(w http.ResponseWriter, r *http.Request, number string, to models.ReservationStatus) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	actorID, ok := s.requireActor(w, r)
	if !ok {
		return
	}

	reservation, err := s.svc.Reservations.GetByNumber(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	switch to {
	case models.StatusCheckedOut:
		err = s.svc.Reservations.CheckOut(r.Context(), reservation.ID, actorID)
	case models.StatusCancelled:
		err = s.svc.Reservations.Cancel(r.Context(), reservation.ID, actorID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	updated, err := s.svc.Reservations.GetByID(r.Context(), reservation.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleReservationBill(w http.ResponseWriter, r *http.Request, number string) {
	reservation, err := s.svc.Reservations.GetByNumber(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	switch r.Method {
	case http.MethodPost:
		actorID, ok := s.requireActor(w, r)
		if !ok {
			return
		}
		bill, err := s.svc.Billing.GenerateBill(r.Context(), reservation.ID, actorID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, bill)
	case http.MethodGet:
		bill, err := s.svc.Billing.GetByReservationID(r.Context(), reservation.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bill)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBills(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	bills, err := s.svc.Billing.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bills": bills})
}

func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rawType := strings.TrimSpace(r.URL.Query().Get("type"))
	if rawType == "" {
		rooms, err := s.svc.Rooms.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
		return
	}

	roomType, ok := models.ParseRoomType(rawType)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown room type")
		return
	}
	onlyAvailable := r.URL.Query().Get("available") == "true"
	rooms, err := s.svc.Rooms.ListByType(r.Context(), roomType, onlyAvailable)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *HTTPServer) handleRoomTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	types, err := s.svc.Rooms.Types(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"room_types": types})
}

// handleRoomByID covers the manual room actions; today that is only
// POST /api/v1/rooms/{id}/release.
func (s *HTTPServer) handleRoomByID(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/rooms/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	rawID, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "room id is required")
		return
	}

	switch action {
	case "release":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if _, ok := s.requireActor(w, r); !ok {
			return
		}
		if err := s.svc.Rooms.Release(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		room, err := s.svc.Rooms.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, room)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/api/v1/rooms/availability/"
	roomType := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, prefix))
	if roomType == "" || strings.Contains(roomType, "/") {
		writeError(w, http.StatusBadRequest, "room type is required")
		return
	}

	count, err := s.svc.Rooms.AvailableCount(r.Context(), roomType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_type":       roomType,
		"available_count": count,
	})
}

func (s *HTTPServer) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	summary, err := s.svc.Reports.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *HTTPServer) handleReportExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.svc.Exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "exports are not configured")
		return
	}

	summary, err := s.svc.Reports.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	path, err := s.svc.Exporter.ReportToExcel(summary)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": path})
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.svc.Users.Register(r.Context(), body.Username, body.Password, body.FullName, body.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if s.svc.Sessions != nil {
		allowed, err := s.svc.Sessions.CheckRateLimit(r.Context(), "login:"+body.Username, 5, time.Minute)
		if err == nil && !allowed {
			writeError(w, http.StatusTooManyRequests, "too many login attempts")
			return
		}
	}

	session, err := s.svc.Users.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":      session.Token,
		"username":   session.Username,
		"role":       session.Role,
		"expires_at": session.ExpiresAt,
	})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	token, ok := strings.CutPrefix(raw, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		writeError(w, http.StatusBadRequest, "missing bearer token")
		return
	}
	if err := s.svc.Users.Logout(r.Context(), strings.TrimSpace(token)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
