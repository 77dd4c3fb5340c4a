package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/domain/applications"
	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, appsSvc *applications.Service) {
	// Auth (público)
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))
	})

	r.Route("/users", func(ur chi.Router) {
		ur.Get("/me", meHandler(svc))
		ur.Patch("/me", updateMeHandler(svc))
		ur.Get("/ongs", listOngsHandler(svc))

		// Dashboard de la ONG (solo rol ong, siempre sobre su propio id)
		ur.Get("/ong/{ongID}/statistics", ongStatisticsHandler(petsSvc, appsSvc))
	})
}

type registerRequest struct {
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
	BirthDate   string `json:"birth_date"` // YYYY-MM-DD opcional
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`

	Phone string `json:"phone,omitempty"`
	CPF   string `json:"cpf,omitempty"`
	CNPJ  string `json:"cnpj,omitempty"`

	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`

	BirthDate *time.Time `json:"birth_date,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authResponse struct {
	User        userResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

type updateMeRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`
	BirthDate   *string `json:"birth_date"` // YYYY-MM-DD
}

// registerHandler godoc
// @Summary Registro de adoptante u ONG
// @Description Crea la cuenta (adopter u ong) y devuelve el usuario + access token. CPF obligatorio para adopter, CNPJ para ong.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de registro"
// @Success 201 {object} authResponse
// @Failure 400 {string} string "invalid input"
// @Failure 409 {string} string "email/cpf/cnpj already registered"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		u, token, err := svc.Register(r.Context(), RegisterInput{
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
			BirthDate:   bd,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrCPFTaken), errors.Is(err, ErrCNPJTaken):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, authResponse{
			User:        toUserResponse(u),
			AccessToken: token,
		})
	}
}

// loginHandler godoc
// @Summary Login
// @Description Autentica por (email, user_type) y devuelve el usuario + access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} authResponse
// @Failure 401 {string} string "invalid credentials / user inactive"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, token, err := svc.Login(r.Context(), req.Email, req.Password, req.UserType)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUserInactive):
				http.Error(w, err.Error(), http.StatusUnauthorized)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, authResponse{
			User:        toUserResponse(u),
			AccessToken: token,
		})
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateMeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if req.BirthDate != nil {
			t, err := time.Parse("2006-01-02", *req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		u, err := svc.Update(r.Context(), claims.UserID, UpdateInput{
			Name:        req.Name,
			Phone:       req.Phone,
			Description: req.Description,
			Website:     req.Website,
			Address:     req.Address,
			City:        req.City,
			State:       req.State,
			ZipCode:     req.ZipCode,
			BirthDate:   bd,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "user not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func listOngsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListOngs(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// ongStatisticsHandler arma el resumen del dashboard componiendo pets y
// candidaturas (el original lo resolvía con una vista de la base).
func ongStatisticsHandler(petsSvc *pets.Service, appsSvc *applications.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleOng {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Siempre sobre la propia ONG, sin importar el id del path.
		ongID := claims.UserID

		items, err := petsSvc.ListByOng(r.Context(), ongID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		stats := OngStatistics{OngID: ongID, TotalPets: len(items)}
		for _, p := range items {
			switch p.Status {
			case pets.StatusAvailable:
				stats.AvailablePets++
			case pets.StatusAdopted:
				stats.AdoptedPets++
			case pets.StatusInProcess, pets.StatusUnavailable:
			}
		}

		counts, err := appsSvc.StatsByOng(r.Context(), ongID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		stats.TotalApplications = counts.Total
		stats.PendingApplications = counts.Pending
		stats.ApprovedApplications = counts.Approved

		writeJSON(w, http.StatusOK, stats)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		UserType:    string(u.Role),
		Phone:       u.Phone,
		CPF:         u.CPF,
		CNPJ:        u.CNPJ,
		Description: u.Description,
		Website:     u.Website,
		Address:     u.Address,
		City:        u.City,
		State:       u.State,
		ZipCode:     u.ZipCode,
		BirthDate:   u.BirthDate,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
