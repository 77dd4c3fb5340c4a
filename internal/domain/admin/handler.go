package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /admin. Todas las rutas exigen rol admin; el
// middleware requireAdmin corta antes de llegar a los handlers.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(requireAdmin)

		ar.Get("/dashboard", dashboardHandler(svc))

		ar.Get("/users", listUsersHandler(svc))
		ar.Post("/users", createUserHandler(svc))
		ar.Patch("/users/{userID}", updateUserHandler(svc))
		ar.Delete("/users/{userID}", deleteUserHandler(svc))

		ar.Get("/pets", listPetsHandler(svc))
		ar.Post("/pets", createPetHandler(svc))
		ar.Patch("/pets/{petID}", updatePetHandler(svc))
		ar.Delete("/pets/{petID}", deletePetHandler(svc))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type adminUserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`

	Phone string `json:"phone,omitempty"`
	CPF   string `json:"cpf,omitempty"`
	CNPJ  string `json:"cnpj,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type adminCreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`

	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
	CNPJ  string `json:"cnpj"`

	Description string `json:"description"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
}

type adminUpdateUserRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`

	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

type adminPetResponse struct {
	ID    string `json:"id"`
	OngID string `json:"ong_id"`

	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`

	AgeYears  int    `json:"age_years"`
	AgeMonths int    `json:"age_months"`
	Size      string `json:"size,omitempty"`
	Gender    string `json:"gender,omitempty"`

	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Status      string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type adminCreatePetRequest struct {
	OngID string `json:"ong_id"`

	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`

	AgeYears  int    `json:"age_years"`
	AgeMonths int    `json:"age_months"`
	Size      string `json:"size"`
	Gender    string `json:"gender"`

	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Status      string `json:"status"`
}

// dashboardHandler godoc
// @Summary Dashboard de administración
// @Description Contadores globales: usuarios por rol y pets por status.
// @Tags admin
// @Produce json
// @Success 200 {object} DashboardStats
// @Failure 403 {string} string "forbidden"
// @Router /admin/dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Dashboard(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListUsers(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]adminUserResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toAdminUserResponse(u))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminCreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.CreateUser(r.Context(), users.RegisterInput{
			Name:        req.Name,
			Email:       req.Email,
			Password:    req.Password,
			Role:        req.UserType,
			Phone:       req.Phone,
			CPF:         req.CPF,
			CNPJ:        req.CNPJ,
			Description: req.Description,
			Website:     req.Website,
			Address:     req.Address,
			City:        req.City,
			State:       req.State,
			ZipCode:     req.ZipCode,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAdminUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminUpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.UpdateUser(r.Context(), chi.URLParam(r, "userID"), users.AdminUpdateInput{
			UpdateInput: users.UpdateInput{
				Name:        req.Name,
				Phone:       req.Phone,
				Description: req.Description,
				Website:     req.Website,
				Address:     req.Address,
				City:        req.City,
				State:       req.State,
				ZipCode:     req.ZipCode,
			},
			Password: req.Password,
			IsActive: req.IsActive,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAdminUserResponse(u))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
			writeUserError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPets(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]adminPetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toAdminPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminCreatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.OngID) == "" {
			http.Error(w, "ong_id is required", http.StatusBadRequest)
			return
		}

		p, err := svc.CreatePet(r.Context(), req.OngID, pets.CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			AgeYears:    req.AgeYears,
			AgeMonths:   req.AgeMonths,
			Size:        req.Size,
			Gender:      req.Gender,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Status:      req.Status,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAdminPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        *string `json:"name"`
			Species     *string `json:"species"`
			Breed       *string `json:"breed"`
			AgeYears    *int    `json:"age_years"`
			AgeMonths   *int    `json:"age_months"`
			Size        *string `json:"size"`
			Gender      *string `json:"gender"`
			Description *string `json:"description"`
			ImageURL    *string `json:"image_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.UpdatePet(r.Context(), chi.URLParam(r, "petID"), pets.UpdateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			AgeYears:    req.AgeYears,
			AgeMonths:   req.AgeMonths,
			Size:        req.Size,
			Gender:      req.Gender,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAdminPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePet(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writePetError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrEmailTaken), errors.Is(err, users.ErrCPFTaken), errors.Is(err, users.ErrCNPJTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, users.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, users.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pets.ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, pets.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAdminPetResponse(p pets.Pet) adminPetResponse {
	return adminPetResponse{
		ID:          p.ID,
		OngID:       p.OngID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breed:       p.Breed,
		AgeYears:    p.AgeYears,
		AgeMonths:   p.AgeMonths,
		Size:        string(p.Size),
		Gender:      string(p.Gender),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toAdminUserResponse(u users.User) adminUserResponse {
	return adminUserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		UserType:  string(u.Role),
		Phone:     u.Phone,
		CPF:       u.CPF,
		CNPJ:      u.CNPJ,
		City:      u.City,
		State:     u.State,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
