package ports

import (
	"context"
	"io"
)

// ImageStorage almacenamiento de imágenes de producto.
// Save guarda el contenido bajo name y devuelve la URL pública (ej. /uploads/<name>).
type ImageStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}
