// Package storage guarda imágenes de producto en disco local.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mrvekratl/BE124/internal/application/ports"
	"github.com/mrvekratl/BE124/internal/domain"
)

var _ ports.ImageStorage = (*LocalStorage)(nil)

// LocalStorage escribe archivos bajo dir y los expone bajo baseURL (servido como estático).
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage crea el directorio si no existe.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save escribe el contenido y devuelve baseURL/name.
func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := safeName(name)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.dir, clean)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("cerrar archivo: %w", err)
	}
	return s.baseURL + "/" + clean, nil
}

// Delete elimina el archivo de una URL devuelta por Save. Un archivo inexistente no es error.
func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return fmt.Errorf("%w: url fuera del almacenamiento", domain.ErrValidation)
	}
	clean, err := safeName(path.Base(url))
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

func safeName(name string) (string, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == ".." || strings.ContainsAny(base, `/\`) {
		return "", fmt.Errorf("%w: nombre de archivo inválido", domain.ErrValidation)
	}
	return base, nil
}
