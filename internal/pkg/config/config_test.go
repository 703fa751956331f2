package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadWith(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{"JWT_SECRET": "s3cret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5050" {
		t.Errorf("expected port 5050, got %q", cfg.Port)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Errorf("expected mongo driver, got %q", cfg.StoreDriver)
	}
	if cfg.Mongo.Database != "social" {
		t.Errorf("expected database social, got %q", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected redis disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.ActivityWorkers != 4 {
		t.Errorf("expected 4 activity workers, got %d", cfg.ActivityWorkers)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development env by default")
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	if _, err := load(t, map[string]string{}); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"JWT_SECRET":   "s3cret",
		"PORT":         "9000",
		"STORE_DRIVER": "memory",
		"REDIS_ADDR":   "localhost:6379",
		"REDIS_DB":     "2",
		"ENV":          "production",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.StoreDriver != DriverMemory || cfg.Redis.DB != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver": {"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
		"bcrypt too low": {"JWT_SECRET": "s", "BCRYPT_COST": "2"},
		"zero workers":   {"JWT_SECRET": "s", "ACTIVITY_WORKERS": "0"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := load(t, env); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
