// Package crypto implementa hashing de contraseñas del lado servidor.
package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword devuelve el hash bcrypt (cost 10, el default).
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compara password contra el hash almacenado.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
