package users

import (
	"context"

	"pet-adoption-api/internal/ports/auth"
)

type ListFilter struct {
	Role       *auth.Role
	ActiveOnly bool
}

type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmailAndRole(ctx context.Context, email string, role auth.Role) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error)
	List(ctx context.Context, f ListFilter) ([]User, error)
}
