package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"pet-adoption-api/internal/domain/applications"
)

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

const applicationColumns = `
	id, pet_id, adopter_id,
	questionnaire,
	status, ong_notes, rejection_reason,
	submitted_at, reviewed_at
`

// Create inserta la candidatura. El índice parcial
// uq_applications_live_pair garantiza una sola viva por (pet, adoptante);
// si la carrera llega hasta acá, el 23505 se traduce a ErrDuplicate.
func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	q, err := json.Marshal(a.Questionnaire)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO adoption_applications (
			id, pet_id, adopter_id,
			questionnaire,
			status, ong_notes, rejection_reason,
			submitted_at, reviewed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.PetID,
		a.AdopterID,
		q,
		string(a.Status),
		nullStr(a.OngNotes),
		nullStr(a.RejectionReason),
		a.SubmittedAt,
		a.ReviewedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "uq_applications_live_pair") {
			return applications.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationsRepo) Update(ctx context.Context, a applications.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_applications SET
			status = $2,
			ong_notes = $3,
			rejection_reason = $4,
			reviewed_at = $5
		WHERE id = $1
	`,
		a.ID,
		string(a.Status),
		nullStr(a.OngNotes),
		nullStr(a.RejectionReason),
		a.ReviewedAt,
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

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return applications.Application{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+` FROM adoption_applications WHERE id = $1
	`, id)
	return scanApplication(row)
}

func (r *ApplicationsRepo) HasLive(ctx context.Context, petID, adopterID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM adoption_applications
			WHERE pet_id = $1 AND adopter_id = $2
			  AND status IN ('pending','under_review','approved')
		)
	`, petID, adopterID).Scan(&ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *ApplicationsRepo) ListByAdopter(ctx context.Context, adopterID string) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE adopter_id = $1
		ORDER BY submitted_at DESC
	`, adopterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationsRepo) ListByPetIDs(ctx context.Context, petIDs []string) ([]applications.Application, error) {
	if len(petIDs) == 0 {
		return []applications.Application{}, nil
	}

	placeholders := make([]string, 0, len(petIDs))
	args := make([]any, 0, len(petIDs))
	for i, id := range petIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE pet_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY submitted_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationsRepo) ListByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE pet_id = $1
		ORDER BY submitted_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationsRepo) ListAll(ctx context.Context) ([]applications.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		ORDER BY submitted_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func collectApplications(rows *sql.Rows) ([]applications.Application, error) {
	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(row rowScanner) (applications.Application, error) {
	var a applications.Application
	var status string
	var questionnaire []byte
	var notes, reason sql.NullString
	var reviewedAt sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.AdopterID,
		&questionnaire,
		&status,
		&notes,
		&reason,
		&a.SubmittedAt,
		&reviewedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return applications.Application{}, ErrNotFound
		}
		return applications.Application{}, err
	}

	if err := json.Unmarshal(questionnaire, &a.Questionnaire); err != nil {
		return applications.Application{}, err
	}

	a.Status = applications.Status(status)
	a.OngNotes = notes.String
	a.RejectionReason = reason.String
	if reviewedAt.Valid {
		t := reviewedAt.Time
		a.ReviewedAt = &t
	}

	return a, nil
}
