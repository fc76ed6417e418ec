package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-boarding/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /pets (dueño), /pet-types y los reportes /admin/*.
// adminOnly es el middleware que exige rol administrador.
func RegisterRoutes(r chi.Router, svc *Service, adminOnly func(http.Handler) http.Handler) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})

	r.Get("/pet-types", listPetTypesHandler(svc))

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(adminOnly)
		ar.Get("/pets", listAllPetsHandler(svc))
		ar.Get("/user-pet-counts", userPetCountsHandler(svc))
	})
}

type createPetRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	PetTypeID   string `json:"pet_type_id"`
	Breed       string `json:"breed"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string `json:"name"`
	Age         *int    `json:"age"`
	PetTypeID   *string `json:"pet_type_id"`
	Breed       *string `json:"breed"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photo_url"`
}

type petTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type petResponse struct {
	ID          string          `json:"id"`
	OwnerUserID string          `json:"owner_user_id"`
	Name        string          `json:"name"`
	Age         int             `json:"age"`
	PetType     petTypeResponse `json:"pet_type"`
	Breed       string          `json:"breed"`
	Description string          `json:"description"`
	PhotoURL    string          `json:"photo_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type userPetCountResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	PetCount int    `json:"pet_count"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, claims.DisplayName(), CreateInput{
			Name:        req.Name,
			Age:         req.Age,
			PetTypeID:   req.PetTypeID,
			Breed:       req.Breed,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.ResolveOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateInput{
			Name:        req.Name,
			Age:         req.Age,
			PetTypeID:   req.PetTypeID,
			Breed:       req.Breed,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writePetError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listPetTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListTypes(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]petTypeResponse, 0, len(items))
		for _, t := range items {
			out = append(out, petTypeResponse{ID: t.ID, Name: t.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listAllPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func userPetCountsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.CountByOwner(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]userPetCountResponse, 0, len(items))
		for _, c := range items {
			out = append(out, userPetCountResponse{
				UserID:   c.UserID,
				Username: c.Username,
				PetCount: c.PetCount,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrPetTypeRequired),
		errors.Is(err, ErrUnknownPetType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrNotOwner):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Age:         p.Age,
		PetType:     petTypeResponse{ID: p.PetTypeID, Name: p.PetTypeName},
		Breed:       p.Breed,
		Description: p.Description,
		PhotoURL:    p.PhotoURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
