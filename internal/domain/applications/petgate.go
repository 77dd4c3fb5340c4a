package applications

import (
	"context"

	"pet-adoption-api/internal/domain/pets"
)

// GatePet es la vista mínima del pet que necesita el ciclo de vida:
// disponibilidad y dueño.
type GatePet struct {
	ID     string
	OngID  string
	Status pets.Status
}

// PetGate responde "¿puede crearse una candidatura para este pet ahora?"
// y resuelve ownership. Es una lectura puntual, sin caching ni locking:
// el índice parcial del store es el respaldo contra la carrera
// check-then-insert.
type PetGate interface {
	Get(ctx context.Context, petID string) (GatePet, error)
	IDsByOng(ctx context.Context, ongID string) ([]string, error)
	SetStatus(ctx context.Context, petID string, status pets.Status) error
}

type petsGate struct {
	svc *pets.Service
}

// NewPetGate adapta pets.Service al gate del ciclo de vida.
func NewPetGate(svc *pets.Service) PetGate {
	return &petsGate{svc: svc}
}

func (g *petsGate) Get(ctx context.Context, petID string) (GatePet, error) {
	p, err := g.svc.GetByID(ctx, petID)
	if err != nil {
		return GatePet{}, ErrNotFound
	}
	return GatePet{ID: p.ID, OngID: p.OngID, Status: p.Status}, nil
}

func (g *petsGate) IDsByOng(ctx context.Context, ongID string) ([]string, error) {
	return g.svc.IDsByOng(ctx, ongID)
}

func (g *petsGate) SetStatus(ctx context.Context, petID string, status pets.Status) error {
	return g.svc.SetStatus(ctx, petID, status)
}
