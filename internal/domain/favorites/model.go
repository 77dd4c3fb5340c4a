package favorites

import "time"

// Favorite es un bookmark puro: existe o no existe, único por (user, pet).
type Favorite struct {
	ID     string
	UserID string
	PetID  string

	CreatedAt time.Time
}
