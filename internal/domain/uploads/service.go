package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"pet-adoption-api/internal/ports/objectstore"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnsupported   = errors.New("unsupported image type")
	ErrTooLarge      = errors.New("file too large")
	ErrNotConfigured = errors.New("object store not configured")
)

// MaxImageSize limita el tamaño aceptado por el proxy de subida.
const MaxImageSize = 5 << 20 // 5MB

type Service struct {
	store objectstore.ObjectStore
	newID func() string
}

func NewService(store objectstore.ObjectStore) *Service {
	return &Service{
		store: store,
		newID: uuid.NewString,
	}
}

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadPetImage sube la imagen bajo pets/<uuid>.<ext> y devuelve la URL
// pública. El nombre original solo aporta la extensión. Rechaza archivos
// que pasen de MaxImageSize.
func (s *Service) UploadPetImage(ctx context.Context, filename string, body io.Reader) (string, error) {
	if s.store == nil {
		return "", ErrNotConfigured
	}
	if body == nil {
		return "", ErrInvalidInput
	}

	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	contentType, ok := allowedExt[ext]
	if !ok {
		return "", ErrUnsupported
	}

	// Se lee un byte de más para distinguir "justo en el límite" de
	// "se pasó": truncar y subir igual corrompería la imagen.
	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}

	path := "pets/" + s.newID() + ext

	url, err := s.store.Upload(ctx, path, contentType, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return url, nil
}

// DeleteImage borra por URL pública.
func (s *Service) DeleteImage(ctx context.Context, publicURL string) error {
	if s.store == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(publicURL) == "" {
		return ErrInvalidInput
	}
	return s.store.Remove(ctx, publicURL)
}
