package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretsDir is where managed secret stores (Docker, Kubernetes,
// Cloud Run) mount one file per secret.
const DefaultSecretsDir = "/run/secrets"

// SecretSource looks up a single credential by name.
type SecretSource interface {
	Lookup(key string) (string, bool)
	Name() string
}

// MountedSecrets reads secrets mounted as files named after the key.
type MountedSecrets struct {
	Dir string
}

func (m MountedSecrets) Name() string { return "secret-mount" }

func (m MountedSecrets) Lookup(key string) (string, bool) {
	if m.Dir == "" {
		return "", false
	}
	b, err := os.ReadFile(filepath.Join(m.Dir, key))
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(b))
	return v, v != ""
}

// EnvSecrets reads the process environment, which includes anything
// loaded from a local .env file.
type EnvSecrets struct{}

func (EnvSecrets) Name() string { return "env" }

func (EnvSecrets) Lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// Secrets tries each source in order and returns the first hit.
type Secrets []SecretSource

// Resolve returns the first value found for any of keys, along with the
// name of the source that supplied it. Keys are tried in order, and for each
// key every source is consulted before moving on.
func (s Secrets) Resolve(keys ...string) (value, source string) {
	for _, key := range keys {
		for _, src := range s {
			if v, ok := src.Lookup(key); ok {
				return v, src.Name()
			}
		}
	}
	return "", ""
}
