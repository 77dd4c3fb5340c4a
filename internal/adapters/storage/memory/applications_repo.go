package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/applications"
)

type applicationRepo struct {
	mu   sync.RWMutex
	byID map[string]applications.Application
}

func NewApplicationRepo() applications.Repository {
	return &applicationRepo{
		byID: make(map[string]applications.Application),
	}
}

// Create replica bajo el mutex la garantía del índice parcial de Postgres:
// una sola candidatura viva por (pet, adoptante).
func (r *applicationRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("application already exists")
	}

	if applications.IsLive(a.Status) {
		for _, other := range r.byID {
			if other.PetID == a.PetID && other.AdopterID == a.AdopterID && applications.IsLive(other.Status) {
				return applications.ErrDuplicate
			}
		}
	}

	r.byID[a.ID] = a
	return nil
}

func (r *applicationRepo) Update(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return applications.Application{}, ErrNotFound
	}
	return a, nil
}

func (r *applicationRepo) HasLive(ctx context.Context, petID, adopterID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.PetID == petID && a.AdopterID == adopterID && applications.IsLive(a.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) ListByAdopter(ctx context.Context, adopterID string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if a.AdopterID == adopterID {
			out = append(out, a)
		}
	}
	sortBySubmittedDesc(out)
	return out, nil
}

func (r *applicationRepo) ListByPetIDs(ctx context.Context, petIDs []string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(petIDs))
	for _, id := range petIDs {
		wanted[id] = struct{}{}
	}

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if _, ok := wanted[a.PetID]; ok {
			out = append(out, a)
		}
	}
	sortBySubmittedDesc(out)
	return out, nil
}

func (r *applicationRepo) ListByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if a.PetID == petID {
			out = append(out, a)
		}
	}
	sortBySubmittedDesc(out)
	return out, nil
}

func (r *applicationRepo) ListAll(ctx context.Context) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sortBySubmittedDesc(out)
	return out, nil
}

// Orden por submitted_at desc (más reciente primero)
func sortBySubmittedDesc(items []applications.Application) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})
}
