package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("  from-file \n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	keyring.MockInit()
	if err := Store("rolecolor-test", "stored", " from-keyring "); err != nil {
		t.Fatalf("store keyring secret: %v", err)
	}

	original := lookupEnv
	t.Cleanup(func() { lookupEnv = original })
	lookupEnv = func(key string) (string, bool) {
		if key == "GEMINI_API_KEY" {
			return " from-env ", true
		}
		return "", false
	}

	tests := []struct {
		name    string
		src     Source
		expect  string
		errPart string
	}{
		{name: "file wins", src: Source{Name: "key", File: keyFile, Value: "inline", Env: "GEMINI_API_KEY"}, expect: "from-file"},
		{name: "inline before env", src: Source{Name: "key", Value: " inline ", Env: "GEMINI_API_KEY"}, expect: "inline"},
		{name: "env fallback", src: Source{Name: "key", Env: "GEMINI_API_KEY"}, expect: "from-env"},
		{name: "missing env", src: Source{Name: "gemini api key", Env: "MISSING"}, errPart: "set MISSING"},
		{name: "env before keyring", src: Source{Name: "key", Env: "GEMINI_API_KEY", KeyringService: "rolecolor-test", KeyringUser: "stored"}, expect: "from-env"},
		{name: "keyring fallback", src: Source{Name: "key", Env: "MISSING", KeyringService: "rolecolor-test", KeyringUser: "stored"}, expect: "from-keyring"},
		{name: "keyring miss", src: Source{Name: "key", Env: "MISSING", KeyringService: "rolecolor-test", KeyringUser: "absent"}, errPart: "set MISSING; store it in the \"rolecolor-test\" keychain"},
		{name: "empty file", src: Source{Name: "key", File: emptyFile}, errPart: "is empty"},
		{name: "missing file", src: Source{Name: "key", File: filepath.Join(dir, "nope")}, errPart: "reading key from file"},
		{name: "nothing configured", src: Source{}, errPart: "secret is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.errPart != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errPart) {
					t.Fatalf("expected error containing %q, got %v", tt.errPart, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestStore(t *testing.T) {
	keyring.MockInit()

	if err := Store("", "user", "secret"); err == nil {
		t.Fatal("expected error for empty service")
	}
	if err := Store("svc", "user", "  "); err == nil {
		t.Fatal("expected error for empty secret")
	}

	if err := Store("svc", "user", "secret\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := keyring.Get("svc", "user")
	if err != nil {
		t.Fatalf("keyring get: %v", err)
	}
	if got != "secret" {
		t.Fatalf("expected trimmed secret, got %q", got)
	}

	keyring.MockInitWithError(errors.New("no dbus"))
	t.Cleanup(keyring.MockInit)

	if err := Store("svc", "user", "secret"); err == nil {
		t.Fatal("expected keychain error")
	}

	_, err = Load(Source{Name: "key", KeyringService: "svc", KeyringUser: "user"})
	if err == nil || !strings.Contains(err.Error(), "keychain unavailable") {
		t.Fatalf("expected keychain unavailable error, got %v", err)
	}
}
