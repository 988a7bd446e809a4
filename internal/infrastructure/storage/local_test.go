package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mineria-admin/internal/domain"
	"github.com/jhoicas/mineria-admin/internal/infrastructure/storage"
)

func TestLocal_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Save(ctx, "guia.JPG", strings.NewReader("contenido"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "comprobantes/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(url)))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))

	require.NoError(t, s.Remove(ctx, url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(url)))
	assert.True(t, os.IsNotExist(err))

	// segunda vez: no existe, no es error
	assert.NoError(t, s.Remove(ctx, url))
}

func TestLocal_RechazaExtension(t *testing.T) {
	s, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	_, err = s.Save(context.Background(), "script.sh", strings.NewReader("x"))
	assert.ErrorIs(t, err, storage.ErrExtension)
}

func TestLocal_RemoveFueraDeRaiz(t *testing.T) {
	s, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Remove(context.Background(), "../../etc/passwd"))
}

func TestLocal_Open(t *testing.T) {
	s, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Save(ctx, "factura.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	rc, err := s.Open(ctx, url)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	_, err = s.Open(ctx, "comprobantes/2026/10/no-existe.jpg")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Open(ctx, "../fuera.jpg")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
