package owners

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owners.yaml")
	content := "p1: u1\napi-service: u2\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	dir, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	owner, ok := dir.Lookup("p1")
	if !ok || owner != "u1" {
		t.Errorf("Lookup(p1) = %q, %v; want u1, true", owner, ok)
	}

	// Falls through id to name
	owner, ok = dir.Lookup("unknown-id", "api-service")
	if !ok || owner != "u2" {
		t.Errorf("Lookup by name = %q, %v; want u2, true", owner, ok)
	}
}

func TestLookupMissIsNotAnError(t *testing.T) {
	dir := Directory{"p1": "u1"}
	owner, ok := dir.Lookup("p2", "other-name")
	if ok || owner != "" {
		t.Errorf("expected miss, got %q, %v", owner, ok)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	dir, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if _, ok := dir.Lookup("anything"); ok {
		t.Error("empty directory should miss every lookup")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owners.yaml")
	if err := os.WriteFile(path, []byte("- not\n- a\n- mapping"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error for non-mapping YAML")
	}
}
