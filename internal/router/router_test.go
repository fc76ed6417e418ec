package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-boarding/internal/router"
)

// "hoy" fijo para todas las pruebas: 2026-06-10
var fixedNow = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

func newServer(t *testing.T, seed bool) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		AdminRoles:   []string{"admin"},
		SeedStatuses: seed,
		Now:          func() time.Time { return fixedNow },
		Location:     time.UTC,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_ReservationLifecycle(t *testing.T) {
	ts := newServer(t, true)

	ownerID := "owner-1"
	otherID := "other-1"

	petID := createPet(t, ts.URL, ownerID, "Milo")

	// 1) Sin status => Pending
	resID := createReservation(t, ts.URL, ownerID, petID, "2026-06-17", "2026-06-20")
	{
		st, body := doReq(t, ts.URL, "GET", "/reservations/"+resID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get reservation, got %d body=%s", st, string(body))
		}
		var res reservationBody
		_ = json.Unmarshal(body, &res)
		if res.Status == nil || res.Status.Name != "Pending" {
			t.Fatalf("expected Pending status, got %s", string(body))
		}
		if res.Pet.Name != "Milo" || res.StartDate != "2026-06-17" || res.Version != 1 {
			t.Fatalf("unexpected reservation body=%s", string(body))
		}
	}

	// 2) Fecha de inicio en el pasado => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/reservations", ownerID, map[string]any{
			"pet_id":     petID,
			"start_date": "2026-06-09",
			"end_date":   "2026-06-12",
		})
		assertError(t, st, body, http.StatusBadRequest, "validation", "start_date")
	}

	// 3) Otro usuario no puede ver ni cancelar
	{
		st, body := doReq(t, ts.URL, "GET", "/reservations/"+resID, otherID, nil)
		assertError(t, st, body, http.StatusForbidden, "forbidden", "")

		st, body = doReq(t, ts.URL, "POST", "/reservations/"+resID+"/cancel", otherID, nil)
		assertError(t, st, body, http.StatusForbidden, "forbidden", "")
	}

	// 4) Otro usuario no puede reservar una mascota ajena
	{
		st, body := doReq(t, ts.URL, "POST", "/reservations", otherID, map[string]any{
			"pet_id":     petID,
			"start_date": "2026-06-17",
			"end_date":   "2026-06-18",
		})
		assertError(t, st, body, http.StatusForbidden, "forbidden", "pet_id")
	}

	// 5) Dueño cancela; la segunda vez es idempotente
	{
		st, body := doReq(t, ts.URL, "POST", "/reservations/"+resID+"/cancel", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
		var resp cancelBody
		_ = json.Unmarshal(body, &resp)
		if resp.Detail != "reservation cancelled" || resp.Reservation.Status == nil || resp.Reservation.Status.Name != "Cancelled" {
			t.Fatalf("unexpected cancel body=%s", string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/reservations/"+resID+"/cancel", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on repeated cancel, got %d body=%s", st, string(body))
		}
		var again cancelBody
		_ = json.Unmarshal(body, &again)
		if again.Detail != "reservation already cancelled" || again.Reservation.Version != resp.Reservation.Version {
			t.Fatalf("repeated cancel changed state: %s", string(body))
		}
	}

	// 6) Reserva que empieza hoy no se puede cancelar
	{
		todayID := createReservation(t, ts.URL, ownerID, petID, "2026-06-10", "2026-06-11")
		st, body := doReq(t, ts.URL, "POST", "/reservations/"+todayID+"/cancel", ownerID, nil)
		assertError(t, st, body, http.StatusBadRequest, "validation", "start_date")
	}

	// 7) Historial: más reciente primero
	{
		st, body := doReq(t, ts.URL, "GET", "/reservations/"+resID+"/history", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var entries []struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(body, &entries)
		if len(entries) != 2 || entries[0].Type != "CANCELLED" || entries[1].Type != "CREATED" {
			t.Fatalf("unexpected history body=%s", string(body))
		}
	}

	// 8) Delete del dueño
	{
		st, body := doReq(t, ts.URL, "DELETE", "/reservations/"+resID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/reservations/"+resID, ownerID, nil)
		assertError(t, st, body, http.StatusNotFound, "not_found", "id")
	}
}

func TestHTTP_UpdateReservation(t *testing.T) {
	ts := newServer(t, true)

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, "Milo")
	resID := createReservation(t, ts.URL, ownerID, petID, "2026-06-17", "2026-06-20")

	// PATCH parcial: fechas en el pasado están permitidas en update
	{
		st, body := doReq(t, ts.URL, "PATCH", "/reservations/"+resID, ownerID, map[string]any{
			"start_date":   "2026-06-01",
			"observations": "llega temprano",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
		}
		var res reservationBody
		_ = json.Unmarshal(body, &res)
		if res.StartDate != "2026-06-01" || res.EndDate != "2026-06-20" || res.Observations != "llega temprano" || res.Version != 2 {
			t.Fatalf("unexpected patch result body=%s", string(body))
		}
	}

	// rango invertido => 400
	{
		st, body := doReq(t, ts.URL, "PATCH", "/reservations/"+resID, ownerID, map[string]any{
			"end_date": "2026-05-01",
		})
		assertError(t, st, body, http.StatusBadRequest, "validation", "end_date")
	}

	// versión vieja => 409
	{
		st, body := doReq(t, ts.URL, "PATCH", "/reservations/"+resID, ownerID, map[string]any{
			"observations": "x",
			"version":      1,
		})
		assertError(t, st, body, http.StatusConflict, "conflict", "version")
	}

	// status inexistente => 404
	{
		st, body := doReq(t, ts.URL, "PATCH", "/reservations/"+resID, ownerID, map[string]any{
			"status_id": "2b1d0c7e-0000-4000-8000-000000000000",
		})
		assertError(t, st, body, http.StatusNotFound, "not_found", "status_id")
	}

	// PUT exige pet_id, start_date y end_date
	{
		st, body := doReq(t, ts.URL, "PUT", "/reservations/"+resID, ownerID, map[string]any{
			"start_date": "2026-06-17",
			"end_date":   "2026-06-18",
		})
		assertError(t, st, body, http.StatusBadRequest, "validation", "pet_id")
	}
}

func TestHTTP_ListScopingAndOrder(t *testing.T) {
	ts := newServer(t, true)

	u1, u2 := "owner-1", "owner-2"
	p1 := createPet(t, ts.URL, u1, "Milo")
	p2 := createPet(t, ts.URL, u2, "Luna")

	late := createReservation(t, ts.URL, u1, p1, "2026-07-01", "2026-07-02")
	early := createReservation(t, ts.URL, u1, p1, "2026-06-15", "2026-06-16")
	createReservation(t, ts.URL, u2, p2, "2026-06-20", "2026-06-21")

	// dueño: solo lo suyo, ordenado por start_date
	{
		st, body := doReq(t, ts.URL, "GET", "/reservations?status=Cancelled", u1, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var items []reservationBody
		_ = json.Unmarshal(body, &items)
		if len(items) != 2 || items[0].ID != early || items[1].ID != late {
			t.Fatalf("unexpected owner list body=%s", string(body))
		}
	}

	// admin: todo, y el filtro por estado aplica
	{
		st, body := doReqAs(t, ts.URL, "GET", "/reservations", "admin-1", "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin list, got %d body=%s", st, string(body))
		}
		var items []reservationBody
		_ = json.Unmarshal(body, &items)
		if len(items) != 3 {
			t.Fatalf("expected 3 reservations for admin, got %s", string(body))
		}

		st, body = doReqAs(t, ts.URL, "GET", "/reservations?status=cancelled", "admin-1", "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin filtered list, got %d", st)
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("expected no cancelled reservations, got %s", string(body))
		}

		st, body = doReqAs(t, ts.URL, "GET", "/reservations?limit=1&offset=1", "admin-1", "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 paged list, got %d", st)
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].Pet.Name != "Luna" {
			t.Fatalf("unexpected page body=%s", string(body))
		}
	}

	// sin usuario => 401
	{
		st, body := doReq(t, ts.URL, "GET", "/reservations", "", nil)
		assertError(t, st, body, http.StatusUnauthorized, "unauthorized", "")
	}
}

func TestHTTP_AnalyticsByUser(t *testing.T) {
	ts := newServer(t, true)

	u1, u2 := "owner-1", "owner-2"
	p1 := createPetAs(t, ts.URL, u1, "ana", "Milo")
	p2 := createPetAs(t, ts.URL, u2, "beto", "Luna")

	for i := 0; i < 3; i++ {
		createReservation(t, ts.URL, u1, p1, "2026-06-20", "2026-06-21")
	}
	for i := 0; i < 2; i++ {
		createReservation(t, ts.URL, u2, p2, "2026-06-20", "2026-06-21")
	}

	st, body := doReqAs(t, ts.URL, "GET", "/reservations/analytics?by=user", "admin-1", "admin", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 analytics, got %d body=%s", st, string(body))
	}
	var items []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Total int    `json:"total_reservations"`
	}
	_ = json.Unmarshal(body, &items)
	if len(items) != 2 || items[0].ID != u1 || items[0].Name != "ana" || items[0].Total != 3 || items[1].Total != 2 {
		t.Fatalf("unexpected analytics body=%s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/reservations/analytics?by=user", u1, nil)
	assertError(t, st, body, http.StatusForbidden, "forbidden", "")

	st, body = doReqAs(t, ts.URL, "GET", "/reservations/analytics?by=species", "admin-1", "admin", nil)
	assertError(t, st, body, http.StatusBadRequest, "validation", "by")
}

func TestHTTP_StatusVocabulary(t *testing.T) {
	ts := newServer(t, true)

	st, body := doReq(t, ts.URL, "GET", "/reservation-statuses", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list statuses, got %d", st)
	}
	var items []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	_ = json.Unmarshal(body, &items)
	if len(items) != 4 || items[0].Name != "Cancelled" {
		t.Fatalf("unexpected statuses body=%s", string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/reservation-statuses", "user-1", map[string]any{"name": "Waitlisted"})
	assertError(t, st, body, http.StatusForbidden, "forbidden", "")

	st, body = doReqAs(t, ts.URL, "POST", "/reservation-statuses", "admin-1", "admin", map[string]any{"name": "Waitlisted"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create status, got %d body=%s", st, string(body))
	}

	st, body = doReqAs(t, ts.URL, "POST", "/reservation-statuses", "admin-1", "admin", map[string]any{"name": "waitlisted"})
	assertError(t, st, body, http.StatusConflict, "conflict", "name")
}

func TestHTTP_WithoutSeed_StartsWithEmptyCatalogs(t *testing.T) {
	ts := newServer(t, false)

	for _, path := range []string{"/reservation-statuses", "/pet-types"} {
		st, body := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusOK || string(bytes.TrimSpace(body)) != "[]" {
			t.Fatalf("expected empty %s, got %d body=%s", path, st, string(body))
		}
	}

	// la mascota no existe: gana el chequeo de dueño antes que el de configuración
	st, body := doReq(t, ts.URL, "POST", "/reservations", "owner-1", map[string]any{
		"pet_id":     "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		"start_date": "2026-06-17",
		"end_date":   "2026-06-18",
	})
	assertError(t, st, body, http.StatusForbidden, "forbidden", "pet_id")
}

type refBody struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type reservationBody struct {
	ID           string   `json:"id"`
	Pet          refBody  `json:"pet"`
	Status       *refBody `json:"status"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Observations string   `json:"observations"`
	Version      int      `json:"version"`
}

type cancelBody struct {
	Detail      string          `json:"detail"`
	Reservation reservationBody `json:"reservation"`
}

func assertError(t *testing.T, st int, body []byte, wantStatus int, wantCategory, wantField string) {
	t.Helper()
	if st != wantStatus {
		t.Fatalf("expected %d, got %d body=%s", wantStatus, st, string(body))
	}
	var e struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatalf("error body is not json: %s", string(body))
	}
	if e.Error != wantCategory || e.Field != wantField {
		t.Fatalf("expected error=%s field=%s, got body=%s", wantCategory, wantField, string(body))
	}
}

func dogTypeID(t *testing.T, baseURL string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/pet-types", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 pet types, got %d", st)
	}
	var types []refBody
	_ = json.Unmarshal(body, &types)
	for _, pt := range types {
		if pt.Name == "Dog" {
			return pt.ID
		}
	}
	t.Fatalf("Dog pet type not seeded: %s", string(body))
	return ""
}

func createPet(t *testing.T, baseURL, userID, name string) string {
	t.Helper()
	return createPetAs(t, baseURL, userID, "", name)
}

func createPetAs(t *testing.T, baseURL, userID, username, name string) string {
	t.Helper()

	st, body := doRequest(t, baseURL, "POST", "/pets", userID, username, "", map[string]any{
		"name":        name,
		"age":         3,
		"pet_type_id": dogTypeID(t, baseURL),
		"breed":       "mixed",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createReservation(t *testing.T, baseURL, userID, petID, start, end string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/reservations", userID, map[string]any{
		"pet_id":     petID,
		"start_date": start,
		"end_date":   end,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create reservation, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create reservation: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()
	return doRequest(t, baseURL, method, path, debugUserID, "", "", body)
}

func doReqAs(t *testing.T, baseURL, method, path, debugUserID, role string, body any) (int, []byte) {
	t.Helper()
	return doRequest(t, baseURL, method, path, debugUserID, "", role, body)
}

func doRequest(t *testing.T, baseURL, method, path, debugUserID, username, role string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if username != "" {
		req.Header.Set("X-Debug-Username", username)
	}
	if role != "" {
		req.Header.Set("X-Debug-Role", role)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
