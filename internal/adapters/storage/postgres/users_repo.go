package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/ports/auth"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `
	id, name, email, password_hash, user_type,
	phone, cpf, cnpj,
	description, website,
	address, city, state, zip_code,
	birth_date, is_active,
	created_at, updated_at
`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, password_hash, user_type,
			phone, cpf, cnpj,
			description, website,
			address, city, state, zip_code,
			birth_date, is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		nullStr(u.Phone),
		nullStr(u.CPF),
		nullStr(u.CNPJ),
		nullStr(u.Description),
		nullStr(u.Website),
		nullStr(u.Address),
		nullStr(u.City),
		nullStr(u.State),
		nullStr(u.ZipCode),
		u.BirthDate,
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			name = $2,
			password_hash = $3,
			phone = $4,
			description = $5,
			website = $6,
			address = $7,
			city = $8,
			state = $9,
			zip_code = $10,
			birth_date = $11,
			is_active = $12,
			updated_at = $13
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		u.PasswordHash,
		nullStr(u.Phone),
		nullStr(u.Description),
		nullStr(u.Website),
		nullStr(u.Address),
		nullStr(u.City),
		nullStr(u.State),
		nullStr(u.ZipCode),
		u.BirthDate,
		u.IsActive,
		u.UpdatedAt,
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

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmailAndRole(ctx context.Context, email string, role auth.Role) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1 AND user_type = $2
	`, email, string(role))
	return scanUser(row)
}

func (r *UsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UsersRepo) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE cpf = $1)`, cpf)
}

func (r *UsersRepo) ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE cnpj = $1)`, cnpj)
}

func (r *UsersRepo) exists(ctx context.Context, query, arg string) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *UsersRepo) List(ctx context.Context, f users.ListFilter) ([]users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []any{}

	if f.Role != nil {
		query += ` AND user_type = $1`
		args = append(args, string(*f.Role))
	}
	if f.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var role string
	var phone, cpf, cnpj, description, website, address, city, state, zip sql.NullString
	var birthDate sql.NullTime

	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&role,
		&phone,
		&cpf,
		&cnpj,
		&description,
		&website,
		&address,
		&city,
		&state,
		&zip,
		&birthDate,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}

	u.Role = auth.Role(role)
	u.Phone = phone.String
	u.CPF = cpf.String
	u.CNPJ = cnpj.String
	u.Description = description.String
	u.Website = website.String
	u.Address = address.String
	u.City = city.String
	u.State = state.String
	u.ZipCode = zip.String
	if birthDate.Valid {
		bd := birthDate.Time
		u.BirthDate = &bd
	}

	return u, nil
}

// nullStr mapea "" a NULL para que los índices únicos parciales (cpf, cnpj)
// no choquen entre filas sin documento.
func nullStr(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
