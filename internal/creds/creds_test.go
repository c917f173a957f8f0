package creds

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func usePath(t *testing.T, path string) {
	t.Helper()
	saved := Path
	Path = func() (string, error) { return path, nil }
	t.Cleanup(func() { Path = saved })
}

func TestStoreLoad(t *testing.T) {
	usePath(t, filepath.Join(t.TempDir(), ".terralens.json"))

	if err := Store("SECRIT"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	key, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if key != "SECRIT" {
		t.Errorf("Load() = %q, want %q", key, "SECRIT")
	}
}

func TestStoreFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".terralens.json")
	usePath(t, path)

	if err := Store("shazbot"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("credentials file is not JSON: %v", err)
	}
	if raw["key"] != "shazbot" {
		t.Errorf(`credentials file key = %q, want %q`, raw["key"], "shazbot")
	}
}

func TestLoadMissing(t *testing.T) {
	usePath(t, filepath.Join(t.TempDir(), "absent.json"))

	if _, err := Load(); err == nil {
		t.Error("Load() of missing file did not fail")
	}
}
