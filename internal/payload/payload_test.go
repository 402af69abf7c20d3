package payload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePayload(t *testing.T, files map[string]string) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fixum-payload-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	for name, content := range files {
		path := filepath.Join(tempDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	return tempDir
}

func TestLoadWithManifest(t *testing.T) {
	dir := writePayload(t, map[string]string{
		"payload.toml": `name = "Alfred-Workflow"
version = "1.40"
`,
		"workflow.py": "# library code\n",
	})

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Name != "Alfred-Workflow" {
		t.Errorf("Expected name Alfred-Workflow, got %q", p.Name)
	}
	if p.Version.String() != "1.40" {
		t.Errorf("Expected version 1.40, got %s", p.Version)
	}
	if p.Marker != DefaultMarker {
		t.Errorf("Expected default marker, got %q", p.Marker)
	}
}

func TestLoadManifestMarkerOverride(t *testing.T) {
	dir := writePayload(t, map[string]string{
		"payload.toml": `version = "2.0"
marker = "Custom Author <custom@example.com>"
`,
	})

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Marker != "Custom Author <custom@example.com>" {
		t.Errorf("Expected custom marker, got %q", p.Marker)
	}
}

func TestLoadFallsBackToVersionFile(t *testing.T) {
	dir := writePayload(t, map[string]string{
		"version": "1.17.2\n",
	})

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Version.String() != "1.17.2" {
		t.Errorf("Expected version 1.17.2, got %s", p.Version)
	}
}

func TestLoadManifestWithoutVersionUsesVersionFile(t *testing.T) {
	dir := writePayload(t, map[string]string{
		"payload.toml": `name = "Alfred-Workflow"
`,
		"version": "1.31\n",
	})

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Version.String() != "1.31" {
		t.Errorf("Expected version 1.31, got %s", p.Version)
	}
}

func TestLoadNoVersionAnywhere(t *testing.T) {
	dir := writePayload(t, map[string]string{
		"workflow.py": "# code\n",
	})

	if _, err := Load(dir); !errors.Is(err, ErrNoVersion) {
		t.Errorf("Expected ErrNoVersion, got %v", err)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	if _, err := Load("/nonexistent/fixum-payload"); !errors.Is(err, ErrPayloadNotFound) {
		t.Errorf("Expected ErrPayloadNotFound, got %v", err)
	}
}

func TestLoadInvalidManifest(t *testing.T) {
	dir := writePayload(t, map[string]string{
		"payload.toml": "version = [not toml",
	})

	if _, err := Load(dir); err == nil {
		t.Error("Expected error for invalid TOML")
	}
}

func TestLoadInvalidManifestVersion(t *testing.T) {
	dir := writePayload(t, map[string]string{
		"payload.toml": `version = "bogus"` + "\n",
	})

	if _, err := Load(dir); err == nil {
		t.Error("Expected error for unparseable version")
	}
}
