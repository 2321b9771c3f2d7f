// Package persistence implementa el Persister del almacén sobre un único
// blob JSON en disco: { products, settings, language }. Al cargar, la
// configuración se fusiona con los valores por defecto (las claves ausentes
// a cualquier nivel se rellenan); productos e idioma se usan tal cual si
// están presentes.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/domain"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
	"github.com/jhoicas/almacen-lite/internal/domain/settings"
)

// blob esquema en disco. Settings queda crudo para que el merge decida qué
// claves trae realmente el archivo.
type blob struct {
	Products []entity.Product `json:"products"`
	Settings json.RawMessage  `json:"settings"`
	Language string           `json:"language"`
}

// FileStore persiste el snapshot en un archivo JSON con escritura atómica
// (archivo temporal + rename).
type FileStore struct {
	path string
}

// NewFileStore construye el almacén de archivo sobre la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load lee y fusiona el blob. Si el archivo no existe todavía (primer
// arranque) devuelve un snapshot con los valores por defecto, sin error.
func (f *FileStore) Load() (store.Snapshot, error) {
	empty := store.Snapshot{
		Settings: entity.DefaultSettings(),
		Language: entity.DefaultLanguage,
	}

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("%w: leer %s: %v", domain.ErrPersistence, f.path, err)
	}

	var b blob
	if err := json.Unmarshal(raw, &b); err != nil {
		return empty, fmt.Errorf("%w: blob ilegible en %s: %v", domain.ErrPersistence, f.path, err)
	}

	merged, err := settings.MergeWithDefaults(b.Settings)
	if err != nil {
		return empty, fmt.Errorf("%w: configuración ilegible: %v", domain.ErrPersistence, err)
	}

	lang := b.Language
	if lang == "" {
		lang = entity.DefaultLanguage
	}
	return store.Snapshot{
		Products: b.Products,
		Settings: merged,
		Language: lang,
	}, nil
}

// Save escribe el snapshot completo. La escritura es atómica: nunca queda un
// blob a medias aunque el proceso muera en medio.
func (f *FileStore) Save(snap store.Snapshot) error {
	rawSettings, err := json.Marshal(snap.Settings)
	if err != nil {
		return err
	}
	products := snap.Products
	if products == nil {
		products = []entity.Product{}
	}
	raw, err := json.MarshalIndent(blob{
		Products: products,
		Settings: rawSettings,
		Language: snap.Language,
	}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".almacen-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.path)
}
