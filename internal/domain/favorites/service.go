package favorites

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-api/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrDuplicate    = errors.New("already favorited")
)

// PetChecker valida que el pet exista antes de marcarlo favorito.
type PetChecker interface {
	Exists(ctx context.Context, petID string) (bool, error)
}

type petsChecker struct {
	svc *pets.Service
}

func NewPetChecker(svc *pets.Service) PetChecker {
	return &petsChecker{svc: svc}
}

func (c *petsChecker) Exists(ctx context.Context, petID string) (bool, error) {
	if _, err := c.svc.GetByID(ctx, petID); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return false, nil
		}
		// fallo del store: no se confunde con "pet no existe"
		return false, err
	}
	return true, nil
}

type Service struct {
	repo Repository
	gate PetChecker
	now  func() time.Time
}

func NewService(repo Repository, gate PetChecker) *Service {
	return &Service{
		repo: repo,
		gate: gate,
		now:  time.Now,
	}
}

func (s *Service) Add(ctx context.Context, userID, petID string) (Favorite, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return Favorite{}, ErrInvalidInput
	}

	ok, err := s.gate.Exists(ctx, petID)
	if err != nil {
		return Favorite{}, err
	}
	if !ok {
		return Favorite{}, ErrNotFound
	}

	if exists, err := s.repo.Exists(ctx, userID, petID); err != nil {
		return Favorite{}, err
	} else if exists {
		return Favorite{}, ErrDuplicate
	}

	f := Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     petID,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return Favorite{}, err
	}
	return f, nil
}

func (s *Service) Remove(ctx context.Context, userID, petID string) error {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, userID, petID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) IsFavorited(ctx context.Context, userID, petID string) (bool, error) {
	return s.repo.Exists(ctx, userID, petID)
}

// PetIDs devuelve solo los ids (el frontend pinta corazones con esto).
func (s *Service) PetIDs(ctx context.Context, userID string) ([]string, error) {
	items, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, f := range items {
		ids = append(ids, f.PetID)
	}
	return ids, nil
}
