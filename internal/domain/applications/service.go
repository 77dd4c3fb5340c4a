package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrPetNotAvailable = errors.New("pet not available")
	ErrDuplicate       = errors.New("duplicate active application")
	ErrBadState        = errors.New("invalid state")
)

// ApprovalPolicy decide el efecto sobre el pet cuando una transición cae
// en approved.
type ApprovalPolicy string

const (
	// ApprovalKeepsPetStatus no toca el status del pet: lo resuelve la
	// ONG a mano vía PATCH /pets/{petID}/status.
	ApprovalKeepsPetStatus ApprovalPolicy = "keep"
	// ApprovalMarksInProcess pasa el pet a in_process al aprobar.
	ApprovalMarksInProcess ApprovalPolicy = "in_process"
)

// Service es el gestor del ciclo de vida de candidaturas: el único
// componente que escribe sobre la entidad Application.
type Service struct {
	repo      Repository
	gate      PetGate
	onApprove ApprovalPolicy
	now       func() time.Time
}

func NewService(repo Repository, gate PetGate, onApprove ApprovalPolicy) *Service {
	if onApprove == "" {
		onApprove = ApprovalKeepsPetStatus
	}
	return &Service{
		repo:      repo,
		gate:      gate,
		onApprove: onApprove,
		now:       time.Now,
	}
}

// Submit crea la candidatura en pending.
// Precondiciones: el pet existe, está available y no hay otra candidatura
// viva del mismo adoptante para ese pet. Ningún rechazo deja fila creada.
func (s *Service) Submit(ctx context.Context, adopterID, petID string, q Questionnaire) (Application, error) {
	adopterID = strings.TrimSpace(adopterID)
	petID = strings.TrimSpace(petID)
	if adopterID == "" || petID == "" {
		return Application{}, ErrInvalidInput
	}
	if err := q.Validate(); err != nil {
		return Application{}, ErrInvalidInput
	}

	p, err := s.gate.Get(ctx, petID)
	if err != nil {
		return Application{}, ErrNotFound
	}
	if p.Status != pets.StatusAvailable {
		return Application{}, ErrPetNotAvailable
	}

	live, err := s.repo.HasLive(ctx, petID, adopterID)
	if err != nil {
		return Application{}, err
	}
	if live {
		return Application{}, ErrDuplicate
	}

	a := Application{
		ID:            uuid.NewString(),
		PetID:         petID,
		AdopterID:     adopterID,
		Questionnaire: q,
		Status:        StatusPending,
		SubmittedAt:   s.now(),
	}

	// El chequeo de arriba no es atómico contra el insert; el repo
	// devuelve ErrDuplicate si el índice parcial detecta la carrera.
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// List devuelve las candidaturas visibles para el solicitante.
func (s *Service) List(ctx context.Context, requesterID string, role auth.Role) ([]Application, error) {
	requesterID = strings.TrimSpace(requesterID)
	if requesterID == "" {
		return nil, ErrInvalidInput
	}

	switch role {
	case auth.RoleAdopter:
		return s.repo.ListByAdopter(ctx, requesterID)
	case auth.RoleOng:
		ids, err := s.gate.IDsByOng(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		// ONG sin pets: conjunto vacío, sin query al store.
		if len(ids) == 0 {
			return []Application{}, nil
		}
		return s.repo.ListByPetIDs(ctx, ids)
	case auth.RoleAdmin:
		return s.repo.ListAll(ctx)
	default:
		return nil, ErrForbidden
	}
}

// GetByID aplica la autorización por referencia: el adoptante dueño de la
// candidatura, la ONG dueña del pet, o un admin.
func (s *Service) GetByID(ctx context.Context, id, requesterID string, role auth.Role) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, ErrNotFound
	}

	switch role {
	case auth.RoleAdopter:
		if a.AdopterID != requesterID {
			return Application{}, ErrForbidden
		}
	case auth.RoleOng:
		p, err := s.gate.Get(ctx, a.PetID)
		if err != nil || p.OngID != requesterID {
			return Application{}, ErrForbidden
		}
	case auth.RoleAdmin:
		// bypass
	default:
		return Application{}, ErrForbidden
	}

	return a, nil
}

// UpdateStatus transiciona la candidatura. Solo la ONG dueña del pet;
// cancelled no es alcanzable por acá (solo vía Cancel). Las
// back-transitions no se bloquean.
func (s *Service) UpdateStatus(ctx context.Context, id, requesterID string, role auth.Role, newStatus Status, notes, rejectionReason string) (Application, error) {
	switch role {
	case auth.RoleOng:
		// único rol permitido
	case auth.RoleAdopter, auth.RoleAdmin:
		return Application{}, ErrForbidden
	default:
		return Application{}, ErrForbidden
	}

	if !ValidUpdateStatus(newStatus) {
		return Application{}, ErrInvalidInput
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, ErrNotFound
	}

	p, err := s.gate.Get(ctx, a.PetID)
	if err != nil || p.OngID != requesterID {
		return Application{}, ErrForbidden
	}

	now := s.now()
	a.Status = newStatus
	a.ReviewedAt = &now
	if strings.TrimSpace(notes) != "" {
		a.OngNotes = notes
	}
	if newStatus == StatusRejected && strings.TrimSpace(rejectionReason) != "" {
		a.RejectionReason = rejectionReason
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}

	if newStatus == StatusApproved && s.onApprove == ApprovalMarksInProcess {
		if err := s.gate.SetStatus(ctx, a.PetID, pets.StatusInProcess); err != nil {
			return Application{}, fmt.Errorf("update pet status on approve: %w", err)
		}
	}

	return a, nil
}

// Cancel la ejecuta solo el adoptante dueño; prohibido sobre approved.
// Sobre rejected/cancelled es idempotente: vuelve a dejar cancelled.
func (s *Service) Cancel(ctx context.Context, id, requesterID string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, ErrNotFound
	}

	if a.AdopterID != requesterID {
		return Application{}, ErrForbidden
	}
	if a.Status == StatusApproved {
		return Application{}, ErrBadState
	}

	a.Status = StatusCancelled

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// StatsByPet cuenta candidaturas por estado para un pet. La ruta original
// exigía rol ong y nada más: no se chequea que la ONG sea dueña del pet.
func (s *Service) StatsByPet(ctx context.Context, petID, requesterID string, role auth.Role) (StatusCounts, error) {
	switch role {
	case auth.RoleOng:
	case auth.RoleAdopter, auth.RoleAdmin:
		return StatusCounts{}, ErrForbidden
	default:
		return StatusCounts{}, ErrForbidden
	}

	petID = strings.TrimSpace(petID)
	if petID == "" {
		return StatusCounts{}, ErrInvalidInput
	}
	if _, err := s.gate.Get(ctx, petID); err != nil {
		return StatusCounts{}, ErrNotFound
	}

	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return StatusCounts{}, err
	}
	return countStatuses(items), nil
}

// StatsByOng agrega los contadores de todas las candidaturas de los pets
// de una ONG (alimenta el dashboard de la ONG; la ruta ya autorizó).
func (s *Service) StatsByOng(ctx context.Context, ongID string) (StatusCounts, error) {
	ongID = strings.TrimSpace(ongID)
	if ongID == "" {
		return StatusCounts{}, ErrInvalidInput
	}

	ids, err := s.gate.IDsByOng(ctx, ongID)
	if err != nil {
		return StatusCounts{}, err
	}
	if len(ids) == 0 {
		return StatusCounts{}, nil
	}

	items, err := s.repo.ListByPetIDs(ctx, ids)
	if err != nil {
		return StatusCounts{}, err
	}
	return countStatuses(items), nil
}
