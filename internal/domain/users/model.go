package users

import (
	"time"

	"pet-adoption-api/internal/ports/auth"
)

// User representa una cuenta: adoptante, ONG o admin.
// CPF aplica a adoptantes, CNPJ a ONGs; ambos únicos cuando están presentes.
type User struct {
	ID string

	Name         string
	Email        string
	PasswordHash string
	Role         auth.Role

	Phone string
	CPF   string
	CNPJ  string

	// Perfil ONG
	Description string
	Website     string

	Address string
	City    string
	State   string
	ZipCode string

	BirthDate *time.Time

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OngStatistics es el resumen que ve la ONG en su dashboard.
type OngStatistics struct {
	OngID                string `json:"ong_id"`
	TotalPets            int    `json:"total_pets"`
	AvailablePets        int    `json:"available_pets"`
	AdoptedPets          int    `json:"adopted_pets"`
	TotalApplications    int    `json:"total_applications"`
	PendingApplications  int    `json:"pending_applications"`
	ApprovedApplications int    `json:"approved_applications"`
}
