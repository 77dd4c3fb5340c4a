package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"pet-adoption-api/internal/crypto"
	"pet-adoption-api/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCPFTaken           = errors.New("cpf already registered")
	ErrCNPJTaken          = errors.New("cnpj already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user inactive")
)

// TokenIssuer emite el token firmado post login/registro.
type TokenIssuer interface {
	Issue(userID, email string, role auth.Role) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string

	Phone string
	CPF   string // obligatorio para adopter
	CNPJ  string // obligatorio para ong

	Description string
	Website     string
	Address     string
	City        string
	State       string
	ZipCode     string
	BirthDate   *time.Time
}

// Register crea la cuenta y devuelve el usuario + token de acceso.
// El registro público solo admite adopter y ong; admins se siembran aparte.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	role, err := auth.ParseRole(in.Role)
	if err != nil || role == auth.RoleAdmin {
		return User{}, "", ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if len(name) < 3 {
		return User{}, "", ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, "", ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return User{}, "", ErrInvalidInput
	}

	cpf := strings.TrimSpace(in.CPF)
	cnpj := strings.TrimSpace(in.CNPJ)

	switch role {
	case auth.RoleAdopter:
		if cpf == "" {
			return User{}, "", ErrInvalidInput
		}
	case auth.RoleOng:
		if cnpj == "" {
			return User{}, "", ErrInvalidInput
		}
	case auth.RoleAdmin:
		return User{}, "", ErrInvalidInput
	}

	if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return User{}, "", err
	} else if taken {
		return User{}, "", ErrEmailTaken
	}
	if cpf != "" {
		if taken, err := s.repo.ExistsByCPF(ctx, cpf); err != nil {
			return User{}, "", err
		} else if taken {
			return User{}, "", ErrCPFTaken
		}
	}
	if cnpj != "" {
		if taken, err := s.repo.ExistsByCNPJ(ctx, cnpj); err != nil {
			return User{}, "", err
		} else if taken {
			return User{}, "", ErrCNPJTaken
		}
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return User{}, "", err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		CPF:          cpf,
		CNPJ:         cnpj,
		Description:  strings.TrimSpace(in.Description),
		Website:      strings.TrimSpace(in.Website),
		Address:      strings.TrimSpace(in.Address),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		ZipCode:      strings.TrimSpace(in.ZipCode),
		BirthDate:    in.BirthDate,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, "", err
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

// Login autentica por (email, rol): el mismo email puede existir como
// adopter y como ong, igual que en el esquema original.
func (s *Service) Login(ctx context.Context, email, password, roleStr string) (User, string, error) {
	role, err := auth.ParseRole(roleStr)
	if err != nil {
		return User{}, "", ErrInvalidInput
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, "", ErrInvalidInput
	}

	u, err := s.repo.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}
	if !crypto.VerifyPassword(password, u.PasswordHash) {
		return User{}, "", ErrInvalidCredentials
	}
	if !u.IsActive {
		return User{}, "", ErrUserInactive
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	// Email, rol y hash de contraseña no se tocan por este camino.
	Name        *string
	Phone       *string
	Description *string
	Website     *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	BirthDate   *time.Time
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 3 {
			return User{}, ErrInvalidInput
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Description != nil {
		u.Description = strings.TrimSpace(*in.Description)
	}
	if in.Website != nil {
		u.Website = strings.TrimSpace(*in.Website)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}
	if in.City != nil {
		u.City = strings.TrimSpace(*in.City)
	}
	if in.State != nil {
		u.State = strings.TrimSpace(*in.State)
	}
	if in.ZipCode != nil {
		u.ZipCode = strings.TrimSpace(*in.ZipCode)
	}
	if in.BirthDate != nil {
		u.BirthDate = in.BirthDate
	}

	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ListOngs devuelve las ONGs activas (listado público para el buscador).
func (s *Service) ListOngs(ctx context.Context) ([]User, error) {
	role := auth.RoleOng
	return s.repo.List(ctx, ListFilter{Role: &role, ActiveOnly: true})
}

// ListAll devuelve todos los usuarios, incluidos inactivos (uso admin).
func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx, ListFilter{})
}

type AdminUpdateInput struct {
	UpdateInput
	Password *string // si viene, se re-hashea
	IsActive *bool
}

// AdminUpdate permite además cambiar contraseña y activar/desactivar.
func (s *Service) AdminUpdate(ctx context.Context, id string, in AdminUpdateInput) (User, error) {
	u, err := s.Update(ctx, id, in.UpdateInput)
	if err != nil {
		return User{}, err
	}

	changed := false
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return User{}, ErrInvalidInput
		}
		hash, err := crypto.HashPassword(*in.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
		changed = true
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
		changed = true
	}

	if changed {
		u.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, u); err != nil {
			return User{}, err
		}
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}
