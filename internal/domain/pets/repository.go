package pets

import "context"

// Filter acota el listado público. Search matchea nombre o raza.
type Filter struct {
	Species  Species
	Size     Size
	OngID    string
	Search   string
	Statuses []Status // vacío = todos
}

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context, f Filter) ([]Pet, error)
	ListByOng(ctx context.Context, ongID string) ([]Pet, error)
}
