package favorites

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las rutas de favoritos (todas requieren rol adopter).
func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/favorites", func(fr chi.Router) {
		fr.Get("/", listHandler(svc, petsSvc))
		fr.Get("/ids", idsHandler(svc))
		fr.Get("/check/{petID}", checkHandler(svc))
		fr.Post("/{petID}", addHandler(svc))
		fr.Delete("/{petID}", removeHandler(svc))
	})
}

type favoritePetSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Status   string `json:"status"`
}

type favoriteResponse struct {
	ID        string             `json:"id"`
	PetID     string             `json:"pet_id"`
	CreatedAt time.Time          `json:"created_at"`
	Pet       favoritePetSummary `json:"pet"`
}

type checkResponse struct {
	IsFavorited bool `json:"is_favorited"`
}

func adopterClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	if claims.Role != auth.RoleAdopter {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return claims, true
}

// listHandler devuelve cada favorito con un resumen del pet; si el pet ya
// no existe, el favorito se omite sin fallar.
func listHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adopterClaims(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]favoriteResponse, 0, len(items))
		for _, f := range items {
			p, err := petsSvc.GetByID(r.Context(), f.PetID)
			if err != nil {
				continue
			}
			out = append(out, favoriteResponse{
				ID:        f.ID,
				PetID:     f.PetID,
				CreatedAt: f.CreatedAt,
				Pet: favoritePetSummary{
					ID:       p.ID,
					Name:     p.Name,
					Species:  string(p.Species),
					Breed:    p.Breed,
					ImageURL: p.ImageURL,
					Status:   string(p.Status),
				},
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func idsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adopterClaims(w, r)
		if !ok {
			return
		}

		ids, err := svc.PetIDs(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ids)
	}
}

func checkHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adopterClaims(w, r)
		if !ok {
			return
		}

		fav, err := svc.IsFavorited(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, checkResponse{IsFavorited: fav})
	}
}

func addHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adopterClaims(w, r)
		if !ok {
			return
		}

		f, err := svc.Add(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			case errors.Is(err, ErrDuplicate):
				http.Error(w, "already favorited", http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, favoriteResponse{
			ID:        f.ID,
			PetID:     f.PetID,
			CreatedAt: f.CreatedAt,
		})
	}
}

func removeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := adopterClaims(w, r)
		if !ok {
			return
		}

		if err := svc.Remove(r.Context(), claims.UserID, chi.URLParam(r, "petID")); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
