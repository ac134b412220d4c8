// Package storage guarda en disco los PDF adjuntos a facturas.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
)

var _ usecase.DocumentStore = (*LocalDocumentStore)(nil)

// LocalDocumentStore escribe cada documento en un archivo propio bajo dir.
// La referencia devuelta es el nombre del archivo, nunca una ruta.
type LocalDocumentStore struct {
	dir string
}

// NewLocalDocumentStore crea el directorio si no existe.
func NewLocalDocumentStore(dir string) (*LocalDocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de documentos: %w", err)
	}
	return &LocalDocumentStore{dir: dir}, nil
}

// Save copia content a <invoiceID>_<uuid>.pdf. El archivo solo aparece completo.
func (s *LocalDocumentStore) Save(_ context.Context, invoiceID string, content io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s.pdf", filepath.Base(invoiceID), uuid.New().String())

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// Open abre el documento. Inexistente -> domain.ErrNotFound.
func (s *LocalDocumentStore) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	return f, err
}

// Delete borra el documento; si ya no existe no es error.
func (s *LocalDocumentStore) Delete(_ context.Context, ref string) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalDocumentStore) path(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || ref == "." || ref == ".." {
		return "", fmt.Errorf("%w: referencia de documento %q", domain.ErrInvalidDocument, ref)
	}
	return filepath.Join(s.dir, ref), nil
}
