package reservations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-boarding/internal/domain/history"
	"pet-boarding/internal/middleware"
	"pet-boarding/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /reservations y /reservation-statuses.
// adminRoles decide qué claims cuentan como administrador.
func RegisterRoutes(r chi.Router, svc *Service, adminRoles []string) {
	h := &handler{svc: svc, adminRoles: adminRoles}

	r.Route("/reservations", func(rr chi.Router) {
		rr.Post("/", h.create)
		rr.Get("/", h.list)
		rr.Get("/analytics", h.analytics)
		rr.Get("/{reservationID}", h.get)
		rr.Patch("/{reservationID}", h.patch)
		rr.Put("/{reservationID}", h.put)
		rr.Delete("/{reservationID}", h.delete)
		rr.Post("/{reservationID}/cancel", h.cancel)
		rr.Get("/{reservationID}/history", h.history)
	})

	r.Route("/reservation-statuses", func(sr chi.Router) {
		sr.Get("/", h.listStatuses)
		sr.Get("/{statusID}", h.getStatus)
		sr.Post("/", h.createStatus)
	})
}

type handler struct {
	svc        *Service
	adminRoles []string
}

type createReservationRequest struct {
	PetID        string `json:"pet_id"`
	StatusID     string `json:"status_id"`    // opcional, default Pending
	StartDate    string `json:"start_date"`   // YYYY-MM-DD
	EndDate      string `json:"end_date"`     // YYYY-MM-DD
	Observations string `json:"observations"` // opcional
}

type updateReservationRequest struct {
	PetID        *string `json:"pet_id"`
	StatusID     *string `json:"status_id"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Observations *string `json:"observations"`
	Version      *int    `json:"version"`
}

type refResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type reservationResponse struct {
	ID           string       `json:"id"`
	Pet          refResponse  `json:"pet"`
	Status       *refResponse `json:"status"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	Observations string       `json:"observations"`
	Version      int          `json:"version"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type cancelResponse struct {
	Detail      string              `json:"detail"`
	Reservation reservationResponse `json:"reservation"`
}

type analyticsItemResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	TotalReservations int    `json:"total_reservations"`
}

type historyEntryResponse struct {
	ID            string            `json:"id"`
	ReservationID string            `json:"reservation_id"`
	Type          history.EntryType `json:"type"`
	OccurredAt    time.Time         `json:"occurred_at"`
	ActorUserID   string            `json:"actor_user_id"`
	ActorAdmin    bool              `json:"actor_admin"`
	StatusName    string            `json:"status_name,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}

type createStatusRequest struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// create godoc
// @Summary Crear reserva
// @Description Reserva una mascota propia para un rango de fechas. Sin status_id se asigna "Pending". start_date no puede ser anterior a hoy.
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createReservationRequest true "Datos de la reserva; fechas YYYY-MM-DD"
// @Success 201 {object} reservationResponse
// @Failure 400 {object} errorResponse "validation"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 403 {object} errorResponse "la mascota no es del usuario"
// @Failure 404 {object} errorResponse "status_id inexistente"
// @Failure 500 {object} errorResponse "internal"
// @Router /reservations [post]
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation", Detail: "invalid json"})
		return
	}

	start, err := parseRequiredDate("start_date", req.StartDate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	end, err := parseRequiredDate("end_date", req.EndDate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.svc.Create(r.Context(), actor, CreateInput{
		PetID:        req.PetID,
		StatusID:     req.StatusID,
		StartDate:    start,
		EndDate:      end,
		Observations: req.Observations,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(res))
}

// list godoc
// @Summary Listar reservas
// @Description Administradores ven todas (filtro opcional por nombre de estado); el resto solo las de sus mascotas. Orden: start_date, created_at.
// @Tags reservations
// @Produce json
// @Param status query string false "Nombre del estado (solo administradores)"
// @Param limit query int false "Máximo de filas"
// @Param offset query int false "Filas a saltear"
// @Success 200 {array} reservationResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /reservations [get]
func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit, err := parseIntParam("limit", q.Get("limit"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	offset, err := parseIntParam("offset", q.Get("offset"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items, err := h.svc.List(r.Context(), actor, ListFilter{
		Status: q.Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]reservationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toReservationResponse(it))
	}
	writeJSON(w, http.StatusOK, out)
}

// analytics godoc
// @Summary Reservas agrupadas
// @Description Cantidad de reservas por mascota (by=pet, default) o por dueño (by=user), de mayor a menor. Solo administradores.
// @Tags reservations
// @Produce json
// @Param by query string false "pet | user"
// @Success 200 {array} analyticsItemResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /reservations/analytics [get]
func (h *handler) analytics(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	counts, err := h.svc.Analytics(r.Context(), actor, r.URL.Query().Get("by"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]analyticsItemResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, analyticsItemResponse{ID: c.ItemID, Name: c.ItemName, TotalReservations: c.Total})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	res, err := h.svc.Get(r.Context(), actor, chi.URLParam(r, "reservationID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

// patch godoc
// @Summary Actualizar reserva (parcial)
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "ID de la reserva"
// @Param payload body updateReservationRequest true "Campos a modificar; version opcional para control de concurrencia"
// @Success 200 {object} reservationResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse "version desactualizada"
// @Router /reservations/{reservationID} [patch]
func (h *handler) patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// put godoc
// @Summary Actualizar reserva (completa)
// @Description Igual que PATCH pero pet_id, start_date y end_date son obligatorios.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "ID de la reserva"
// @Param payload body updateReservationRequest true "Reserva completa"
// @Success 200 {object} reservationResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /reservations/{reservationID} [put]
func (h *handler) put(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request, full bool) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req updateReservationRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation", Detail: "invalid json"})
		return
	}

	if full {
		switch {
		case req.PetID == nil:
			h.writeError(w, r, invalid("pet_id", "required"))
			return
		case req.StartDate == nil:
			h.writeError(w, r, invalid("start_date", "required"))
			return
		case req.EndDate == nil:
			h.writeError(w, r, invalid("end_date", "required"))
			return
		}
	}

	in := UpdateInput{
		PetID:        req.PetID,
		StatusID:     req.StatusID,
		Observations: req.Observations,
		Version:      req.Version,
	}
	if req.StartDate != nil {
		d, err := parseRequiredDate("start_date", *req.StartDate)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		in.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := parseRequiredDate("end_date", *req.EndDate)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		in.EndDate = &d
	}

	res, err := h.svc.Update(r.Context(), actor, chi.URLParam(r, "reservationID"), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), actor, chi.URLParam(r, "reservationID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cancel godoc
// @Summary Cancelar reserva
// @Description Solo el dueño de la mascota y solo si la reserva todavía no empezó. Cancelar una reserva ya cancelada responde 200 sin cambios.
// @Tags reservations
// @Produce json
// @Param reservationID path string true "ID de la reserva"
// @Success 200 {object} cancelResponse
// @Failure 400 {object} errorResponse "ya empezó"
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse "estado Cancelled no configurado"
// @Router /reservations/{reservationID}/cancel [post]
func (h *handler) cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	res, changed, err := h.svc.Cancel(r.Context(), actor, chi.URLParam(r, "reservationID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	detail := "reservation cancelled"
	if !changed {
		detail = "reservation already cancelled"
	}
	writeJSON(w, http.StatusOK, cancelResponse{Detail: detail, Reservation: toReservationResponse(res)})
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.History(r.Context(), actor, chi.URLParam(r, "reservationID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResponse{
			ID:            e.ID,
			ReservationID: e.ReservationID,
			Type:          e.Type,
			OccurredAt:    e.OccurredAt,
			ActorUserID:   e.ActorUserID,
			ActorAdmin:    e.ActorAdmin,
			StatusName:    e.StatusName,
			Notes:         e.Notes,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// listStatuses godoc
// @Summary Vocabulario de estados
// @Tags reservation-statuses
// @Produce json
// @Success 200 {array} refResponse
// @Router /reservation-statuses [get]
func (h *handler) listStatuses(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListStatuses(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]refResponse, 0, len(items))
	for _, st := range items {
		out = append(out, refResponse{ID: st.ID, Name: st.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.GetStatus(r.Context(), chi.URLParam(r, "statusID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refResponse{ID: st.ID, Name: st.Name})
}

// createStatus godoc
// @Summary Agregar estado
// @Description Solo administradores. El nombre es único sin distinguir mayúsculas.
// @Tags reservation-statuses
// @Accept json
// @Produce json
// @Param payload body createStatusRequest true "Nombre del estado"
// @Success 201 {object} refResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 409 {object} errorResponse "nombre repetido"
// @Router /reservation-statuses [post]
func (h *handler) createStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req createStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation", Detail: "invalid json"})
		return
	}

	st, err := h.svc.CreateStatus(r.Context(), actor, req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, refResponse{ID: st.ID, Name: st.Name})
}

// actor arma el Actor desde los claims; sin usuario responde 401.
func (h *handler) actor(w http.ResponseWriter, r *http.Request) (Actor, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Detail: "authentication required"})
		return Actor{}, false
	}
	return Actor{UserID: claims.UserID, Admin: claims.IsAdmin(h.adminRoles)}, true
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := errorResponse{Detail: err.Error()}
	var fe *FieldError
	if errors.As(err, &fe) {
		body.Field = fe.Field
		body.Detail = fe.Message
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrValidation):
		status, body.Error = http.StatusBadRequest, "validation"
	case errors.Is(err, ErrNotFound):
		status, body.Error = http.StatusNotFound, "not_found"
	case errors.Is(err, ErrForbidden):
		status, body.Error = http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrConflict):
		status, body.Error = http.StatusConflict, "conflict"
	default:
		// ErrConfiguration ya quedó en el log del servicio con el estado faltante
		if !errors.Is(err, ErrConfiguration) {
			logger.FromContext(r.Context(), nil).Error("reservation request failed", map[string]any{"error": err})
		}
		body = errorResponse{Error: "internal", Detail: "internal error"}
	}
	writeJSON(w, status, body)
}

func parseRequiredDate(field, v string) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return time.Time{}, invalid(field, "required")
	}
	d, err := ParseDate(v)
	if err != nil {
		return time.Time{}, invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func parseIntParam(field, v string) (int, error) {
	if strings.TrimSpace(v) == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, invalid(field, "must be a non-negative integer")
	}
	return n, nil
}

func toReservationResponse(r Reservation) reservationResponse {
	out := reservationResponse{
		ID:           r.ID,
		Pet:          refResponse{ID: r.PetID, Name: r.PetName},
		StartDate:    FormatDate(r.StartDate),
		EndDate:      FormatDate(r.EndDate),
		Observations: r.Observations,
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.StatusID != "" {
		out.Status = &refResponse{ID: r.StatusID, Name: r.StatusName}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
