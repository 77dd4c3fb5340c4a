package applications

import "context"

// Repository persiste candidaturas. Los listados vienen ordenados por
// SubmittedAt descendente.
type Repository interface {
	// Create devuelve ErrDuplicate si el store detecta otra candidatura
	// viva para el mismo (pet, adoptante) — índice parcial en Postgres.
	Create(ctx context.Context, a Application) error
	Update(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)

	// HasLive reporta si existe una candidatura viva (pending,
	// under_review o approved) para el par (pet, adoptante).
	HasLive(ctx context.Context, petID, adopterID string) (bool, error)

	ListByAdopter(ctx context.Context, adopterID string) ([]Application, error)
	ListByPetIDs(ctx context.Context, petIDs []string) ([]Application, error)
	ListByPet(ctx context.Context, petID string) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
}
