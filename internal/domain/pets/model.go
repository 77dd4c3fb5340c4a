package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Size define el porte del animal.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Gender define el sexo de la mascota.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Status define el estado de adopción de la mascota.
// Solo available admite nuevas candidaturas.
// @Enum available, in_process, adopted, unavailable
type Status string

const (
	StatusAvailable   Status = "available"
	StatusInProcess   Status = "in_process"
	StatusAdopted     Status = "adopted"
	StatusUnavailable Status = "unavailable"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusInProcess, StatusAdopted, StatusUnavailable:
		return true
	default:
		return false
	}
}

// Pet representa un animal publicado por una ONG.
type Pet struct {
	ID    string
	OngID string

	Name    string
	Species Species
	Breed   string

	AgeYears  int
	AgeMonths int
	Size      Size
	Gender    Gender

	Description  string
	Personality  string
	HealthInfo   string
	SpecialNeeds string

	GoodWithKids bool
	GoodWithPets bool
	NeedsYard    bool

	ImageURL         string
	AdditionalImages []string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
