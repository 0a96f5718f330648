package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pomoterm/internal/modules/notify/adapter/out"
)

func TestManifestStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	store := out.NewFileManifestStore(t.TempDir())

	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected no manifests, got %+v", manifests)
	}
}

func TestManifestStoreResolvesRelativeBinaryPaths(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	payload := `[
  {"name":"echo","version":"1.0.0","binary":"echo-notifier","sha256":"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa","enabled":true},
  {"name":"abs","version":"1.0.0","binary":"/usr/local/bin/abs-notifier","sha256":"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb","enabled":false}
]`
	if err := os.WriteFile(filepath.Join(dir, "plugins.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("seed manifests: %v", err)
	}
	store := out.NewFileManifestStore(dir)

	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("expected two manifests, got %+v", manifests)
	}
	if want := filepath.Join(dir, "echo-notifier"); manifests[0].Binary != want {
		t.Fatalf("relative binary must resolve against the plugins dir: got %q want %q", manifests[0].Binary, want)
	}
	if manifests[1].Binary != "/usr/local/bin/abs-notifier" {
		t.Fatalf("absolute binary must be left alone: %q", manifests[1].Binary)
	}
}

func TestManifestStoreRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	payload := `[{"name":"echo","version":"1.0.0","binary":"b","sha256":"aa","enabled":true,"surprise":1}]`
	if err := os.WriteFile(filepath.Join(dir, "plugins.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("seed manifests: %v", err)
	}
	store := out.NewFileManifestStore(dir)

	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error for unknown fields")
	}
}
