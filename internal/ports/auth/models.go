package auth

import (
	"errors"
	"strings"
)

// Role es el tipo de usuario. Variante cerrada: todo switch sobre Role
// debe cubrir los tres casos (adopter, ong, admin).
type Role string

const (
	RoleAdopter Role = "adopter"
	RoleOng     Role = "ong"
	RoleAdmin   Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole valida el rol recibido (token, header de dev, body de registro).
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdopter:
		return RoleAdopter, nil
	case RoleOng:
		return RoleOng, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
