package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/outline"
	"github.com/five82/folio/internal/storage"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "folio.log")

	logger, closeLog, err := NewLogger(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible", "key", "value")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "msg=visible") || !strings.Contains(out, "key=value") {
		t.Fatalf("log output = %q, want the info record", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("log output = %q, debug should be filtered", out)
	}
}

func TestNewLogger_EmptyPathDiscards(t *testing.T) {
	logger, closeLog, err := NewLogger("", slog.LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer closeLog()
	logger.Info("ignored")
}

func TestOpenStorage_FallsBackToDisabled(t *testing.T) {
	cfg := config.Config{StorageDriver: "etcd"}
	store := OpenStorage(cfg, quietLogger())
	if _, ok := store.(storage.Disabled); !ok {
		t.Fatalf("OpenStorage = %T, want storage.Disabled", store)
	}
}

func TestOpenStorage_File(t *testing.T) {
	cfg := config.Config{StorageDriver: storage.DriverFile, StoragePath: filepath.Join(t.TempDir(), "storage.toml")}
	store := OpenStorage(cfg, quietLogger())
	defer store.Close()
	if _, ok := store.(*storage.File); !ok {
		t.Fatalf("OpenStorage = %T, want *storage.File", store)
	}
}

func TestNewSource(t *testing.T) {
	online, err := NewSource(config.Config{APIURL: "wiki.example.com", APIToken: "tok"})
	if err != nil {
		t.Fatalf("NewSource online: %v", err)
	}
	if _, ok := online.(*outline.Client); !ok {
		t.Fatalf("online source = %T, want *outline.Client", online)
	}

	empty, err := NewSource(config.Config{})
	if err != nil {
		t.Fatalf("NewSource offline: %v", err)
	}
	if _, ok := empty.(*outline.Fixture); !ok {
		t.Fatalf("offline source = %T, want *outline.Fixture", empty)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	fixture := "collections:\n  - id: c1\n    name: Handbook\ndocuments:\n  - id: d1\n    title: Welcome\n    collectionId: c1\n"
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	src, err := NewSource(config.Config{CatalogFile: path})
	if err != nil {
		t.Fatalf("NewSource fixture: %v", err)
	}
	docs, err := src.ListDocuments(t.Context())
	if err != nil || len(docs) != 1 || docs[0].Title != "Welcome" {
		t.Fatalf("ListDocuments = %#v, %v", docs, err)
	}

	if _, err := NewSource(config.Config{CatalogFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("NewSource should fail for a missing fixture")
	}
}
