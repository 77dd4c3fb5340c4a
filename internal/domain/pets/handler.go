package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listHandler(svc))
		pr.Post("/", createHandler(svc))
		pr.Get("/my-pets", myPetsHandler(svc))
		pr.Get("/{petID}", getHandler(svc))
		pr.Patch("/{petID}", updateHandler(svc))
		pr.Patch("/{petID}/status", updateStatusHandler(svc))
		pr.Delete("/{petID}", deleteHandler(svc))
	})
}

type createPetRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`

	AgeYears  int    `json:"age_years"`
	AgeMonths int    `json:"age_months"`
	Size      string `json:"size"`
	Gender    string `json:"gender"`

	Description  string `json:"description"`
	Personality  string `json:"personality"`
	HealthInfo   string `json:"health_info"`
	SpecialNeeds string `json:"special_needs"`

	GoodWithKids bool `json:"good_with_kids"`
	GoodWithPets bool `json:"good_with_pets"`
	NeedsYard    bool `json:"needs_yard"`

	ImageURL         string   `json:"image_url"`
	AdditionalImages []string `json:"additional_images"`

	Status string `json:"status"`
}

type updatePetRequest struct {
	Name    *string `json:"name"`
	Species *string `json:"species"`
	Breed   *string `json:"breed"`

	AgeYears  *int    `json:"age_years"`
	AgeMonths *int    `json:"age_months"`
	Size      *string `json:"size"`
	Gender    *string `json:"gender"`

	Description  *string `json:"description"`
	Personality  *string `json:"personality"`
	HealthInfo   *string `json:"health_info"`
	SpecialNeeds *string `json:"special_needs"`

	GoodWithKids *bool `json:"good_with_kids"`
	GoodWithPets *bool `json:"good_with_pets"`
	NeedsYard    *bool `json:"needs_yard"`

	ImageURL         *string   `json:"image_url"`
	AdditionalImages *[]string `json:"additional_images"`
}

type updatePetStatusRequest struct {
	Status string `json:"status"`
}

type petResponse struct {
	ID    string `json:"id"`
	OngID string `json:"ong_id"`

	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`

	AgeYears  int    `json:"age_years"`
	AgeMonths int    `json:"age_months"`
	Size      string `json:"size,omitempty"`
	Gender    string `json:"gender,omitempty"`

	Description  string `json:"description,omitempty"`
	Personality  string `json:"personality,omitempty"`
	HealthInfo   string `json:"health_info,omitempty"`
	SpecialNeeds string `json:"special_needs,omitempty"`

	GoodWithKids bool `json:"good_with_kids"`
	GoodWithPets bool `json:"good_with_pets"`
	NeedsYard    bool `json:"needs_yard"`

	ImageURL         string   `json:"image_url,omitempty"`
	AdditionalImages []string `json:"additional_images,omitempty"`

	Status string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createHandler godoc
// @Summary Publicar mascota
// @Description Crea una mascota para la ONG autenticada. Status default: available.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Router /pets [post]
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleOng {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:             req.Name,
			Species:          req.Species,
			Breed:            req.Breed,
			AgeYears:         req.AgeYears,
			AgeMonths:        req.AgeMonths,
			Size:             req.Size,
			Gender:           req.Gender,
			Description:      req.Description,
			Personality:      req.Personality,
			HealthInfo:       req.HealthInfo,
			SpecialNeeds:     req.SpecialNeeds,
			GoodWithKids:     req.GoodWithKids,
			GoodWithPets:     req.GoodWithPets,
			NeedsYard:        req.NeedsYard,
			ImageURL:         req.ImageURL,
			AdditionalImages: req.AdditionalImages,
			Status:           req.Status,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listHandler godoc
// @Summary Listado público de mascotas
// @Description Solo available e in_process. Filtros: species, size, ong_id, search.
// @Tags pets
// @Produce json
// @Param species query string false "dog|cat|other"
// @Param size query string false "small|medium|large"
// @Param ong_id query string false "ID de la ONG"
// @Param search query string false "Busca en nombre y raza"
// @Success 200 {array} petResponse
// @Router /pets [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := Filter{
			Species: Species(strings.TrimSpace(q.Get("species"))),
			Size:    Size(strings.TrimSpace(q.Get("size"))),
			OngID:   strings.TrimSpace(q.Get("ong_id")),
			Search:  strings.TrimSpace(q.Get("search")),
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// myPetsHandler lista todas las mascotas de la ONG autenticada, con
// cualquier status (a diferencia del listado público).
func myPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleOng {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByOng(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponses(items))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, claims.Role, UpdateInput{
			Name:             req.Name,
			Species:          req.Species,
			Breed:            req.Breed,
			AgeYears:         req.AgeYears,
			AgeMonths:        req.AgeMonths,
			Size:             req.Size,
			Gender:           req.Gender,
			Description:      req.Description,
			Personality:      req.Personality,
			HealthInfo:       req.HealthInfo,
			SpecialNeeds:     req.SpecialNeeds,
			GoodWithKids:     req.GoodWithKids,
			GoodWithPets:     req.GoodWithPets,
			NeedsYard:        req.NeedsYard,
			ImageURL:         req.ImageURL,
			AdditionalImages: req.AdditionalImages,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "petID"), claims.UserID, claims.Role, Status(strings.TrimSpace(req.Status)))
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID, claims.Role); err != nil {
			writePetError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:               p.ID,
		OngID:            p.OngID,
		Name:             p.Name,
		Species:          string(p.Species),
		Breed:            p.Breed,
		AgeYears:         p.AgeYears,
		AgeMonths:        p.AgeMonths,
		Size:             string(p.Size),
		Gender:           string(p.Gender),
		Description:      p.Description,
		Personality:      p.Personality,
		HealthInfo:       p.HealthInfo,
		SpecialNeeds:     p.SpecialNeeds,
		GoodWithKids:     p.GoodWithKids,
		GoodWithPets:     p.GoodWithPets,
		NeedsYard:        p.NeedsYard,
		ImageURL:         p.ImageURL,
		AdditionalImages: p.AdditionalImages,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
