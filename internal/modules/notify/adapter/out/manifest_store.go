package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomoterm/internal/modules/notify/domain"
	notifyout "pomoterm/internal/modules/notify/port/out"
)

// FileManifestStore reads plugins.json from the plugins directory. Relative
// binary paths resolve against that directory.
type FileManifestStore struct {
	dir  string
	path string
}

func NewFileManifestStore(pluginsDir string) notifyout.ManifestStore {
	return &FileManifestStore{dir: pluginsDir, path: filepath.Join(pluginsDir, "plugins.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.dir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
