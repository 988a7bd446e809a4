// Package storage guarda en disco las fotos de comprobantes (guías de remisión, facturas).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mineria-admin/internal/domain"
)

// extensiones aceptadas para comprobantes.
var extensiones = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true}

// ErrExtension el archivo no es una imagen ni un PDF. Se reporta como error de validación.
var ErrExtension = domain.NewValidationError("comprobante", "tipo de archivo no permitido")

// Local escribe archivos bajo un directorio raíz, agrupados por año/mes.
// Las URLs devueltas son relativas a la raíz; se leen de vuelta con Open.
type Local struct {
	root string
	now  func() time.Time
}

// NewLocal crea el directorio raíz si no existe.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", root, err)
	}
	return &Local{root: root, now: time.Now}, nil
}

// Save escribe r de forma síncrona y hace fsync antes de devolver la URL relativa.
func (l *Local) Save(_ context.Context, nombreOriginal string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(nombreOriginal))
	if !extensiones[ext] {
		return "", fmt.Errorf("%w: %s", ErrExtension, ext)
	}
	now := l.now()
	rel := filepath.Join("comprobantes", now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	abs := filepath.Join(l.root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(abs)
		return "", fmt.Errorf("storage: escribir: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(abs)
		return "", fmt.Errorf("storage: sync: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("storage: cerrar: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// Remove borra un archivo guardado por Save. Un archivo inexistente no es error.
func (l *Local) Remove(_ context.Context, url string) error {
	abs, err := l.ruta(url)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar: %w", err)
	}
	return nil
}

// Open abre un archivo guardado por Save. El llamador cierra el lector.
func (l *Local) Open(_ context.Context, url string) (io.ReadCloser, error) {
	abs, err := l.ruta(url)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("storage: %s: %w", url, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: abrir: %w", err)
	}
	return f, nil
}

// ruta resuelve url dentro de la raíz; rechaza rutas que escapan de ella.
func (l *Local) ruta(url string) (string, error) {
	abs := filepath.Join(l.root, filepath.FromSlash(url))
	rel, err := filepath.Rel(l.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("storage: ruta fuera del directorio: %s", url)
	}
	return abs, nil
}
