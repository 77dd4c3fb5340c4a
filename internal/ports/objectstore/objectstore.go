// Package objectstore define el puerto hacia el almacenamiento de
// objetos (imágenes de mascotas). La implementación vive en
// adapters/storage/bucket.
package objectstore

import (
	"context"
	"io"
)

// ObjectStore sube y borra objetos direccionables por URL pública.
type ObjectStore interface {
	// Upload guarda el objeto bajo path y devuelve su URL pública.
	Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error)
	// Remove borra el objeto a partir de su URL pública.
	Remove(ctx context.Context, publicURL string) error
}
