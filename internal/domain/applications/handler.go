package applications

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/applications", func(ar chi.Router) {
		ar.Post("/", submitHandler(svc))
		ar.Get("/", listHandler(svc))
		ar.Get("/{applicationID}", getHandler(svc))
		ar.Patch("/{applicationID}/status", updateStatusHandler(svc))
		ar.Delete("/{applicationID}", cancelHandler(svc))
		ar.Get("/pet/{petID}/stats", statsByPetHandler(svc))
	})
}

type questionnaireDTO struct {
	// Etapa 1
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birth_date"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`

	// Etapa 2
	HousingType      string `json:"housing_type"`
	HousingOwnership string `json:"housing_ownership"`
	HasYard          bool   `json:"has_yard"`
	YardFenced       *bool  `json:"yard_fenced,omitempty"`
	HouseholdSize    int    `json:"household_size"`
	HasChildren      bool   `json:"has_children"`
	ChildrenAges     string `json:"children_ages,omitempty"`
	AllAgree         bool   `json:"all_agree"`

	// Etapa 3
	HasCurrentPets         bool     `json:"has_current_pets"`
	CurrentPetsDescription string   `json:"current_pets_description,omitempty"`
	PreviousPetsExperience string   `json:"previous_pets_experience,omitempty"`
	DailyHoursAlone        string   `json:"daily_hours_alone"`
	WhoCaresWhenAway       string   `json:"who_cares_when_away"`
	FinancialReadiness     string   `json:"financial_readiness"`
	MonthlyBudget          *float64 `json:"monthly_budget,omitempty"`

	// Etapa 4
	AdoptionReason        string `json:"adoption_reason"`
	WhatIfMoving          string `json:"what_if_moving"`
	LongTermCommitment    bool   `json:"long_term_commitment"`
	AcceptsFollowUpVisits bool   `json:"accepts_follow_up_visits"`
}

type submitRequest struct {
	PetID         string           `json:"pet_id"`
	Questionnaire questionnaireDTO `json:"questionnaire"`
}

type updateStatusRequest struct {
	Status          string `json:"status"`
	Notes           string `json:"notes"`
	RejectionReason string `json:"rejection_reason"`
}

type applicationResponse struct {
	ID        string `json:"id"`
	PetID     string `json:"pet_id"`
	AdopterID string `json:"adopter_id"`

	Questionnaire questionnaireDTO `json:"questionnaire"`

	Status          string `json:"status"`
	OngNotes        string `json:"ong_notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

type statsResponse struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	UnderReview int `json:"under_review"`
	Approved    int `json:"approved"`
	Rejected    int `json:"rejected"`
	Cancelled   int `json:"cancelled"`
}

// submitHandler godoc
// @Summary Enviar candidatura de adopción
// @Description Crea la candidatura en pending. Requiere rol adopter, pet available y que no exista otra candidatura viva del mismo adoptante para ese pet.
// @Tags applications
// @Accept json
// @Produce json
// @Param payload body submitRequest true "Pet y cuestionario completo"
// @Success 201 {object} applicationResponse
// @Failure 400 {string} string "invalid input / questionnaire"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "pet not available / duplicate active application"
// @Router /applications [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RoleAdopter {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Submit(r.Context(), claims.UserID, req.PetID, fromQuestionnaireDTO(req.Questionnaire))
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

// listHandler godoc
// @Summary Listar candidaturas visibles
// @Description adopter: las propias. ong: las de sus pets. admin: todas. Orden: más reciente primero.
// @Tags applications
// @Produce json
// @Success 200 {array} applicationResponse
// @Router /applications [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID, claims.Role)
		if err != nil {
			writeAppError(w, err)
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toApplicationResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "applicationID"), claims.UserID, claims.Role)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// updateStatusHandler godoc
// @Summary Transicionar una candidatura
// @Description Solo la ONG dueña del pet. Estados válidos: pending, under_review, approved, rejected. cancelled solo vía DELETE.
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la candidatura"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} applicationResponse
// @Failure 400 {string} string "invalid status"
// @Failure 403 {string} string "forbidden"
// @Router /applications/{applicationID}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "applicationID"),
			claims.UserID, claims.Role, Status(req.Status), req.Notes, req.RejectionReason)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// cancelHandler godoc
// @Summary Cancelar la propia candidatura
// @Description Solo el adoptante dueño. Prohibido sobre approved; idempotente sobre rejected/cancelled.
// @Tags applications
// @Produce json
// @Param applicationID path string true "ID de la candidatura"
// @Success 200 {object} applicationResponse
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "approved application cannot be cancelled"
// @Router /applications/{applicationID} [delete]
func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Cancel(r.Context(), chi.URLParam(r, "applicationID"), claims.UserID)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func statsByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.StatsByPet(r.Context(), chi.URLParam(r, "petID"), claims.UserID, claims.Role)
		if err != nil {
			writeAppError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statsResponse{
			Total:       c.Total,
			Pending:     c.Pending,
			UnderReview: c.UnderReview,
			Approved:    c.Approved,
			Rejected:    c.Rejected,
			Cancelled:   c.Cancelled,
		})
	}
}

func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrPetNotAvailable):
		http.Error(w, "pet not available for adoption", http.StatusConflict)
	case errors.Is(err, ErrDuplicate):
		http.Error(w, "you already have an active application for this pet", http.StatusConflict)
	case errors.Is(err, ErrBadState):
		http.Error(w, "approved application cannot be cancelled", http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func fromQuestionnaireDTO(d questionnaireDTO) Questionnaire {
	return Questionnaire{
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		CPF:       d.CPF,
		BirthDate: d.BirthDate,
		Address:   d.Address,
		City:      d.City,
		State:     d.State,
		ZipCode:   d.ZipCode,

		HousingType:      d.HousingType,
		HousingOwnership: d.HousingOwnership,
		HasYard:          d.HasYard,
		YardFenced:       d.YardFenced,
		HouseholdSize:    d.HouseholdSize,
		HasChildren:      d.HasChildren,
		ChildrenAges:     d.ChildrenAges,
		AllAgree:         d.AllAgree,

		HasCurrentPets:         d.HasCurrentPets,
		CurrentPetsDescription: d.CurrentPetsDescription,
		PreviousPetsExperience: d.PreviousPetsExperience,
		DailyHoursAlone:        d.DailyHoursAlone,
		WhoCaresWhenAway:       d.WhoCaresWhenAway,
		FinancialReadiness:     d.FinancialReadiness,
		MonthlyBudget:          d.MonthlyBudget,

		AdoptionReason:        d.AdoptionReason,
		WhatIfMoving:          d.WhatIfMoving,
		LongTermCommitment:    d.LongTermCommitment,
		AcceptsFollowUpVisits: d.AcceptsFollowUpVisits,
	}
}

func toQuestionnaireDTO(q Questionnaire) questionnaireDTO {
	return questionnaireDTO{
		FullName:  q.FullName,
		Email:     q.Email,
		Phone:     q.Phone,
		CPF:       q.CPF,
		BirthDate: q.BirthDate,
		Address:   q.Address,
		City:      q.City,
		State:     q.State,
		ZipCode:   q.ZipCode,

		HousingType:      q.HousingType,
		HousingOwnership: q.HousingOwnership,
		HasYard:          q.HasYard,
		YardFenced:       q.YardFenced,
		HouseholdSize:    q.HouseholdSize,
		HasChildren:      q.HasChildren,
		ChildrenAges:     q.ChildrenAges,
		AllAgree:         q.AllAgree,

		HasCurrentPets:         q.HasCurrentPets,
		CurrentPetsDescription: q.CurrentPetsDescription,
		PreviousPetsExperience: q.PreviousPetsExperience,
		DailyHoursAlone:        q.DailyHoursAlone,
		WhoCaresWhenAway:       q.WhoCaresWhenAway,
		FinancialReadiness:     q.FinancialReadiness,
		MonthlyBudget:          q.MonthlyBudget,

		AdoptionReason:        q.AdoptionReason,
		WhatIfMoving:          q.WhatIfMoving,
		LongTermCommitment:    q.LongTermCommitment,
		AcceptsFollowUpVisits: q.AcceptsFollowUpVisits,
	}
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:              a.ID,
		PetID:           a.PetID,
		AdopterID:       a.AdopterID,
		Questionnaire:   toQuestionnaireDTO(a.Questionnaire),
		Status:          string(a.Status),
		OngNotes:        a.OngNotes,
		RejectionReason: a.RejectionReason,
		SubmittedAt:     a.SubmittedAt,
		ReviewedAt:      a.ReviewedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
