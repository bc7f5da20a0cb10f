package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signatures.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write table file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeTable(t, `
version: "2026-08"
signatures:
  - verbs: [create, apply]
    pattern: already exists
  - pattern: \(AlreadyExists\)
`)

	l := NewLoader(zerolog.Nop())
	table, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if table.Version != "2026-08" {
		t.Errorf("Version = %q, want 2026-08", table.Version)
	}
	if len(table.Signatures) != 2 {
		t.Fatalf("Signatures = %d, want 2", len(table.Signatures))
	}
	if !table.Match("create", "thing already exists") {
		t.Error("loaded table must match after compile")
	}
}

func TestLoaderLoadErrors(t *testing.T) {
	l := NewLoader(zerolog.Nop())

	tests := []struct {
		name    string
		content string
	}{
		{name: "empty signature list", content: "version: v1\nsignatures: []\n"},
		{name: "broken yaml", content: "signatures: [\n"},
		{name: "broken pattern", content: "signatures:\n  - pattern: '['\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTable(t, tt.content)
			if _, err := l.Load(path); err == nil {
				t.Error("expected load error, got nil")
			}
		})
	}

	if _, err := l.Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
