package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/favorites"
)

type favoriteRepo struct {
	mu   sync.RWMutex
	byID map[string]favorites.Favorite
}

func NewFavoriteRepo() favorites.Repository {
	return &favoriteRepo{
		byID: make(map[string]favorites.Favorite),
	}
}

func (r *favoriteRepo) Create(ctx context.Context, f favorites.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.ID) == "" {
		return errors.New("favorite id required")
	}
	for _, other := range r.byID {
		if other.UserID == f.UserID && other.PetID == f.PetID {
			return errors.New("favorite already exists")
		}
	}
	r.byID[f.ID] = f
	return nil
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, f := range r.byID {
		if f.UserID == userID && f.PetID == petID {
			delete(r.byID, id)
			return nil
		}
	}
	// idempotente: borrar lo que no está no es error
	return nil
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, petID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.byID {
		if f.UserID == userID && f.PetID == petID {
			return true, nil
		}
	}
	return false, nil
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]favorites.Favorite, 0)
	for _, f := range r.byID {
		if f.UserID == userID {
			out = append(out, f)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
