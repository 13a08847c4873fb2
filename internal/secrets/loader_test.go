package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  s3cret\n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	secret, err := Load(Source{Name: "gemini api key", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "s3cret" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadFilePrecedesValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	secret, err := Load(Source{Name: "key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("file should take precedence, got %q", secret)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "empty"}); err == nil {
		t.Fatalf("expected error for unconfigured secret")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("   "), 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}
	if _, err := Load(Source{Name: "blank", File: empty}); err == nil {
		t.Fatalf("expected error for blank secret file")
	}

	if _, err := Load(Source{Name: "missing", File: "/nonexistent/key"}); err == nil {
		t.Fatalf("expected error for missing secret file")
	}
}
