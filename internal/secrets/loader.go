package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// Source describes where a secret may come from. Sources are consulted in
// the order File, Value, Env, Keyring; the first non-empty one wins.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// File points to a file containing the secret value.
	File string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// Env names an environment variable holding the secret.
	Env string
	// KeyringService and KeyringUser address the secret in the OS keychain.
	KeyringService string
	KeyringUser    string
}

var lookupEnv = os.LookupEnv

// Load returns the trimmed secret from the first usable source.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	hints := make([]string, 0, 2)

	if env := strings.TrimSpace(src.Env); env != "" {
		if value, ok := lookupEnv(env); ok {
			if secret := strings.TrimSpace(value); secret != "" {
				return secret, nil
			}
		}
		hints = append(hints, "set "+env)
	}

	if service := strings.TrimSpace(src.KeyringService); service != "" {
		secret, err := keyring.Get(service, src.KeyringUser)
		switch {
		case err == nil && strings.TrimSpace(secret) != "":
			return strings.TrimSpace(secret), nil
		case err == nil, errors.Is(err, keyring.ErrNotFound):
			hints = append(hints, fmt.Sprintf("store it in the %q keychain", service))
		default:
			hints = append(hints, fmt.Sprintf("keychain unavailable: %v", err))
		}
	}

	if len(hints) > 0 {
		return "", fmt.Errorf("%s is not configured (%s)", name, strings.Join(hints, "; "))
	}

	return "", fmt.Errorf("%s is not configured", name)
}

// Store saves secret in the OS keychain under service and user.
func Store(service, user, secret string) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("keyring service is required")
	}

	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New("secret must not be empty")
	}

	if err := keyring.Set(service, user, secret); err != nil {
		return fmt.Errorf("saving secret to keychain: %w", err)
	}

	return nil
}
