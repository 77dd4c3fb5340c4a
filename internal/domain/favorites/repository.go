package favorites

import "context"

type Repository interface {
	Create(ctx context.Context, f Favorite) error
	// Delete es idempotente: borrar un favorito inexistente no es error.
	Delete(ctx context.Context, userID, petID string) error
	Exists(ctx context.Context, userID, petID string) (bool, error)
	// ListByUser viene ordenado por CreatedAt descendente.
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}
