package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pet-adoption-api/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, ong_id, name, species, breed,
	age_years, age_months, size, gender,
	description, personality, health_info, special_needs,
	good_with_kids, good_with_pets, needs_yard,
	image_url, additional_images,
	status, created_at, updated_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	images, err := json.Marshal(p.AdditionalImages)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, ong_id, name, species, breed,
			age_years, age_months, size, gender,
			description, personality, health_info, special_needs,
			good_with_kids, good_with_pets, needs_yard,
			image_url, additional_images,
			status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`,
		p.ID,
		p.OngID,
		p.Name,
		string(p.Species),
		nullStr(p.Breed),
		p.AgeYears,
		p.AgeMonths,
		nullStr(string(p.Size)),
		nullStr(string(p.Gender)),
		nullStr(p.Description),
		nullStr(p.Personality),
		nullStr(p.HealthInfo),
		nullStr(p.SpecialNeeds),
		p.GoodWithKids,
		p.GoodWithPets,
		p.NeedsYard,
		nullStr(p.ImageURL),
		images,
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	images, err := json.Marshal(p.AdditionalImages)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets SET
			name = $2,
			species = $3,
			breed = $4,
			age_years = $5,
			age_months = $6,
			size = $7,
			gender = $8,
			description = $9,
			personality = $10,
			health_info = $11,
			special_needs = $12,
			good_with_kids = $13,
			good_with_pets = $14,
			needs_yard = $15,
			image_url = $16,
			additional_images = $17,
			status = $18,
			updated_at = $19
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Species),
		nullStr(p.Breed),
		p.AgeYears,
		p.AgeMonths,
		nullStr(string(p.Size)),
		nullStr(string(p.Gender)),
		nullStr(p.Description),
		nullStr(p.Personality),
		nullStr(p.HealthInfo),
		nullStr(p.SpecialNeeds),
		p.GoodWithKids,
		p.GoodWithPets,
		p.NeedsYard,
		nullStr(p.ImageURL),
		images,
		string(p.Status),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	return scanPet(row)
}

func (r *PetsRepo) List(ctx context.Context, f pets.Filter) ([]pets.Pet, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + petColumns + ` FROM pets WHERE 1=1`)

	args := []any{}
	argN := 1

	if f.Species != "" {
		sb.WriteString(fmt.Sprintf(" AND species = $%d", argN))
		args = append(args, string(f.Species))
		argN++
	}
	if f.Size != "" {
		sb.WriteString(fmt.Sprintf(" AND size = $%d", argN))
		args = append(args, string(f.Size))
		argN++
	}
	if f.OngID != "" {
		sb.WriteString(fmt.Sprintf(" AND ong_id = $%d", argN))
		args = append(args, f.OngID)
		argN++
	}
	if len(f.Statuses) > 0 {
		placeholders := make([]string, 0, len(f.Statuses))
		for _, st := range f.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(st))
			argN++
		}
		sb.WriteString(" AND status IN (" + strings.Join(placeholders, ",") + ")")
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR breed ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

func (r *PetsRepo) ListByOng(ctx context.Context, ongID string) ([]pets.Pet, error) {
	ongID = strings.TrimSpace(ongID)
	if ongID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+` FROM pets WHERE ong_id = $1 ORDER BY created_at DESC
	`, ongID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPets(rows)
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var species, status string
	var breed, size, gender, description, personality, healthInfo, specialNeeds, imageURL sql.NullString
	var images []byte

	if err := row.Scan(
		&p.ID,
		&p.OngID,
		&p.Name,
		&species,
		&breed,
		&p.AgeYears,
		&p.AgeMonths,
		&size,
		&gender,
		&description,
		&personality,
		&healthInfo,
		&specialNeeds,
		&p.GoodWithKids,
		&p.GoodWithPets,
		&p.NeedsYard,
		&imageURL,
		&images,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	p.Status = pets.Status(status)
	p.Breed = breed.String
	p.Size = pets.Size(size.String)
	p.Gender = pets.Gender(gender.String)
	p.Description = description.String
	p.Personality = personality.String
	p.HealthInfo = healthInfo.String
	p.SpecialNeeds = specialNeeds.String
	p.ImageURL = imageURL.String

	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.AdditionalImages); err != nil {
			return pets.Pet{}, err
		}
	}

	return p, nil
}
