package applications

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Status define el ciclo de vida de una candidatura.
// @Enum pending, under_review, approved, rejected, cancelled
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCancelled   Status = "cancelled"
)

// IsLive reporta si la candidatura sigue "viva": cuenta para la regla de
// una sola candidatura activa por (pet, adoptante).
func IsLive(s Status) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved:
		return true
	default:
		return false
	}
}

// ValidUpdateStatus acota los estados que la ONG puede setear vía
// UpdateStatus. cancelled solo se alcanza con Cancel.
func ValidUpdateStatus(s Status) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// HousingType / HousingOwnership / FinancialReadiness son los enums
// cerrados del formulario.
const (
	HousingHouse     = "house"
	HousingApartment = "apartment"

	OwnershipOwn    = "own"
	OwnershipRent   = "rent"
	OwnershipFamily = "family"

	ReadinessReady     = "ready"
	ReadinessPartially = "partially"
	ReadinessLearning  = "learning"
)

// Questionnaire es el formulario completo de adopción. Se copia tal cual
// al crear la candidatura y es inmutable después.
type Questionnaire struct {
	// Etapa 1: datos personales y dirección
	FullName  string
	Email     string
	Phone     string
	CPF       string
	BirthDate string // YYYY-MM-DD
	Address   string
	City      string
	State     string
	ZipCode   string

	// Etapa 2: vivienda
	HousingType      string
	HousingOwnership string
	HasYard          bool
	YardFenced       *bool
	HouseholdSize    int
	HasChildren      bool
	ChildrenAges     string
	AllAgree         bool

	// Etapa 3: experiencia con mascotas
	HasCurrentPets         bool
	CurrentPetsDescription string
	PreviousPetsExperience string
	DailyHoursAlone        string
	WhoCaresWhenAway       string
	FinancialReadiness     string
	MonthlyBudget          *float64

	// Etapa 4: motivación y compromiso
	AdoptionReason        string
	WhatIfMoving          string
	LongTermCommitment    bool
	AcceptsFollowUpVisits bool
}

var errQuestionnaire = errors.New("invalid questionnaire")

// Validate chequea requeridos y enums. No normaliza: los campos se guardan
// tal como llegan.
func (q Questionnaire) Validate() error {
	required := []string{
		q.FullName, q.Phone, q.CPF, q.BirthDate,
		q.Address, q.City, q.State, q.ZipCode,
		q.DailyHoursAlone, q.WhoCaresWhenAway,
		q.AdoptionReason, q.WhatIfMoving,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return errQuestionnaire
		}
	}
	if _, err := mail.ParseAddress(q.Email); err != nil {
		return errQuestionnaire
	}
	if _, err := time.Parse("2006-01-02", q.BirthDate); err != nil {
		return errQuestionnaire
	}

	switch q.HousingType {
	case HousingHouse, HousingApartment:
	default:
		return errQuestionnaire
	}
	switch q.HousingOwnership {
	case OwnershipOwn, OwnershipRent, OwnershipFamily:
	default:
		return errQuestionnaire
	}
	switch q.FinancialReadiness {
	case ReadinessReady, ReadinessPartially, ReadinessLearning:
	default:
		return errQuestionnaire
	}

	if q.HouseholdSize < 1 {
		return errQuestionnaire
	}
	if q.MonthlyBudget != nil && *q.MonthlyBudget < 0 {
		return errQuestionnaire
	}
	return nil
}

// Application es la candidatura de adopción: referencia un pet y un
// adoptante pero no es dueña de ninguno; los mutadores permitidos se
// derivan de esas dos referencias.
type Application struct {
	ID        string
	PetID     string
	AdopterID string

	Questionnaire Questionnaire

	Status          Status
	OngNotes        string
	RejectionReason string

	SubmittedAt time.Time
	ReviewedAt  *time.Time
}

// StatusCounts es el agregado de StatsByPet: la suma de los contadores
// por estado siempre es igual a Total.
type StatusCounts struct {
	Total       int
	Pending     int
	UnderReview int
	Approved    int
	Rejected    int
	Cancelled   int
}

func countStatuses(items []Application) StatusCounts {
	var c StatusCounts
	c.Total = len(items)
	for _, a := range items {
		switch a.Status {
		case StatusPending:
			c.Pending++
		case StatusUnderReview:
			c.UnderReview++
		case StatusApproved:
			c.Approved++
		case StatusRejected:
			c.Rejected++
		case StatusCancelled:
			c.Cancelled++
		}
	}
	return c
}
