package admin

import (
	"context"

	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/ports/auth"
)

// DashboardStats alimenta el dashboard del admin.
type DashboardStats struct {
	Ongs          int `json:"ongs"`
	Adopters      int `json:"adopters"`
	TotalPets     int `json:"total_pets"`
	AvailablePets int `json:"available_pets"`
	InProcessPets int `json:"in_process_pets"`
	AdoptedPets   int `json:"adopted_pets"`
}

// Service compone los módulos users y pets para las operaciones de
// administración. No tiene repo propio.
type Service struct {
	users *users.Service
	pets  *pets.Service
}

func NewService(usersSvc *users.Service, petsSvc *pets.Service) *Service {
	return &Service{
		users: usersSvc,
		pets:  petsSvc,
	}
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats

	allUsers, err := s.users.ListAll(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	for _, u := range allUsers {
		switch u.Role {
		case auth.RoleOng:
			out.Ongs++
		case auth.RoleAdopter:
			out.Adopters++
		case auth.RoleAdmin:
			// no se cuenta en el dashboard
		}
	}

	allPets, err := s.pets.ListAll(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	out.TotalPets = len(allPets)
	for _, p := range allPets {
		switch p.Status {
		case pets.StatusAvailable:
			out.AvailablePets++
		case pets.StatusInProcess:
			out.InProcessPets++
		case pets.StatusAdopted:
			out.AdoptedPets++
		case pets.StatusUnavailable:
		}
	}

	return out, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]users.User, error) {
	return s.users.ListAll(ctx)
}

// CreateUser delega en el registro normal (hash incluido); el admin solo
// puede crear adopters y ONGs, igual que el registro público.
func (s *Service) CreateUser(ctx context.Context, in users.RegisterInput) (users.User, error) {
	u, _, err := s.users.Register(ctx, in)
	return u, err
}

func (s *Service) UpdateUser(ctx context.Context, id string, in users.AdminUpdateInput) (users.User, error) {
	return s.users.AdminUpdate(ctx, id, in)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) ListPets(ctx context.Context) ([]pets.Pet, error) {
	return s.pets.ListAll(ctx)
}

func (s *Service) CreatePet(ctx context.Context, ongID string, in pets.CreateInput) (pets.Pet, error) {
	return s.pets.Create(ctx, ongID, in)
}

func (s *Service) UpdatePet(ctx context.Context, id string, in pets.UpdateInput) (pets.Pet, error) {
	return s.pets.Update(ctx, id, "", auth.RoleAdmin, in)
}

func (s *Service) DeletePet(ctx context.Context, id string) error {
	return s.pets.Delete(ctx, id, "", auth.RoleAdmin)
}
