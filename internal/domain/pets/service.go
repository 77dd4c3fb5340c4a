package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-api/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string

	AgeYears  int
	AgeMonths int
	Size      string
	Gender    string

	Description  string
	Personality  string
	HealthInfo   string
	SpecialNeeds string

	GoodWithKids bool
	GoodWithPets bool
	NeedsYard    bool

	ImageURL         string
	AdditionalImages []string

	Status string // opcional, default available
}

func (s *Service) Create(ctx context.Context, ongID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ongID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	species := Species(strings.TrimSpace(in.Species))
	switch species {
	case SpeciesDog, SpeciesCat, SpeciesOther:
	default:
		return Pet{}, ErrInvalidInput
	}

	size := Size(strings.TrimSpace(in.Size))
	if size != "" {
		switch size {
		case SizeSmall, SizeMedium, SizeLarge:
		default:
			return Pet{}, ErrInvalidInput
		}
	}

	gender := Gender(strings.TrimSpace(in.Gender))
	if gender != "" {
		switch gender {
		case GenderMale, GenderFemale:
		default:
			return Pet{}, ErrInvalidInput
		}
	}

	if in.AgeYears < 0 || in.AgeMonths < 0 {
		return Pet{}, ErrInvalidInput
	}

	status := Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusAvailable
	}
	if !ValidStatus(status) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:               uuid.NewString(),
		OngID:            ongID,
		Name:             strings.TrimSpace(in.Name),
		Species:          species,
		Breed:            strings.TrimSpace(in.Breed),
		AgeYears:         in.AgeYears,
		AgeMonths:        in.AgeMonths,
		Size:             size,
		Gender:           gender,
		Description:      strings.TrimSpace(in.Description),
		Personality:      strings.TrimSpace(in.Personality),
		HealthInfo:       strings.TrimSpace(in.HealthInfo),
		SpecialNeeds:     strings.TrimSpace(in.SpecialNeeds),
		GoodWithKids:     in.GoodWithKids,
		GoodWithPets:     in.GoodWithPets,
		NeedsYard:        in.NeedsYard,
		ImageURL:         strings.TrimSpace(in.ImageURL),
		AdditionalImages: in.AdditionalImages,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// List es el listado público: solo available e in_process, más filtros.
func (s *Service) List(ctx context.Context, f Filter) ([]Pet, error) {
	f.Statuses = []Status{StatusAvailable, StatusInProcess}
	return s.repo.List(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByOng(ctx context.Context, ongID string) ([]Pet, error) {
	ongID = strings.TrimSpace(ongID)
	if ongID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOng(ctx, ongID)
}

// ListAll devuelve todos los pets sin filtrar por status (uso admin).
func (s *Service) ListAll(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx, Filter{})
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string
	Species      *string
	Breed        *string
	AgeYears     *int
	AgeMonths    *int
	Size         *string
	Gender       *string
	Description  *string
	Personality  *string
	HealthInfo   *string
	SpecialNeeds *string

	GoodWithKids     *bool
	GoodWithPets     *bool
	NeedsYard        *bool
	ImageURL         *string
	AdditionalImages *[]string
}

// Update aplica permisos: la ONG dueña o un admin. Adopters nunca editan.
func (s *Service) Update(ctx context.Context, id, requesterID string, role auth.Role, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	switch role {
	case auth.RoleOng:
		if p.OngID != requesterID {
			return Pet{}, ErrForbidden
		}
	case auth.RoleAdmin:
		// bypass
	default:
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		sp := Species(strings.TrimSpace(*in.Species))
		switch sp {
		case SpeciesDog, SpeciesCat, SpeciesOther:
			p.Species = sp
		default:
			return Pet{}, ErrInvalidInput
		}
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.AgeYears != nil {
		if *in.AgeYears < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.AgeYears = *in.AgeYears
	}
	if in.AgeMonths != nil {
		if *in.AgeMonths < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.AgeMonths = *in.AgeMonths
	}
	if in.Size != nil {
		sz := Size(strings.TrimSpace(*in.Size))
		switch sz {
		case SizeSmall, SizeMedium, SizeLarge:
			p.Size = sz
		default:
			return Pet{}, ErrInvalidInput
		}
	}
	if in.Gender != nil {
		g := Gender(strings.TrimSpace(*in.Gender))
		switch g {
		case GenderMale, GenderFemale:
			p.Gender = g
		default:
			return Pet{}, ErrInvalidInput
		}
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Personality != nil {
		p.Personality = strings.TrimSpace(*in.Personality)
	}
	if in.HealthInfo != nil {
		p.HealthInfo = strings.TrimSpace(*in.HealthInfo)
	}
	if in.SpecialNeeds != nil {
		p.SpecialNeeds = strings.TrimSpace(*in.SpecialNeeds)
	}
	if in.GoodWithKids != nil {
		p.GoodWithKids = *in.GoodWithKids
	}
	if in.GoodWithPets != nil {
		p.GoodWithPets = *in.GoodWithPets
	}
	if in.NeedsYard != nil {
		p.NeedsYard = *in.NeedsYard
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.AdditionalImages != nil {
		p.AdditionalImages = *in.AdditionalImages
		// Si se reemplazan las fotos, la principal sigue a la primera.
		if p.ImageURL == "" && len(p.AdditionalImages) > 0 {
			p.ImageURL = p.AdditionalImages[0]
		}
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// UpdateStatus cambia solo el status (dueña u admin).
func (s *Service) UpdateStatus(ctx context.Context, id, requesterID string, role auth.Role, status Status) (Pet, error) {
	if !ValidStatus(status) {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	switch role {
	case auth.RoleOng:
		if p.OngID != requesterID {
			return Pet{}, ErrForbidden
		}
	case auth.RoleAdmin:
	default:
		return Pet{}, ErrForbidden
	}

	p.Status = status
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, requesterID string, role auth.Role) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch role {
	case auth.RoleOng:
		if p.OngID != requesterID {
			return ErrForbidden
		}
	case auth.RoleAdmin:
	default:
		return ErrForbidden
	}

	return s.repo.Delete(ctx, p.ID)
}
