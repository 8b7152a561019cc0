package config

import (
	"errors"
	"testing"
)

func TestResolveSecrets(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Password = "vault:secret/vitrine/db#password"
	cfg.Stock.APIKey = "plaintext-key"
	cfg.Media.APIKey = "vault:secret/vitrine/media#api_key"

	err := cfg.ResolveSecrets(func(ref string) (string, error) {
		switch ref {
		case "secret/vitrine/db#password":
			return "s3cret", nil
		case "secret/vitrine/media#api_key":
			return "mediakey", nil
		}
		return "", errors.New("unexpected ref " + ref)
	})
	if err != nil {
		t.Fatalf("ResolveSecrets: %v", err)
	}

	if cfg.Database.Password != "s3cret" {
		t.Errorf("password = %q", cfg.Database.Password)
	}
	if cfg.Stock.APIKey != "plaintext-key" {
		t.Errorf("plain value must pass through, got %q", cfg.Stock.APIKey)
	}
	if cfg.Media.APIKey != "mediakey" {
		t.Errorf("media key = %q", cfg.Media.APIKey)
	}
}

func TestResolveSecrets_Error(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Password = "vault:nope#key"
	boom := errors.New("vault down")

	err := cfg.ResolveSecrets(func(string) (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the resolver's error", err)
	}
}
