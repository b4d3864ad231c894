package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	Log LogConfig `koanf:"log"`

	Snapshot SnapshotConfig `koanf:"snapshot"`

	Canonical CanonicalConfig `koanf:"canonical"`

	Bloom BloomConfig `koanf:"bloom"`
}

type LogConfig struct {
	// Level controls log verbosity: "debug", "info", "warn", or "error".
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

type SnapshotConfig struct {
	// Path is the bbolt database file holding persisted record sets.
	Path string `koanf:"path" validate:"required"`
}

type CanonicalConfig struct {
	Cache CacheConfig `koanf:"cache"`
}

type CacheConfig struct {
	// Size is the number of record sets whose canonical form is cached. Zero disables the cache.
	Size int `koanf:"size" validate:"gte=0"`
}

// BloomConfig sizes the owner-name filter of the zone store.
type BloomConfig struct {
	Capacity uint    `koanf:"capacity" validate:"required,gte=1"`
	FPRate   float64 `koanf:"fp_rate" validate:"fp_rate"`
}

// DEFAULT_APP_CONFIG defines the default application configuration.
var DEFAULT_APP_CONFIG = AppConfig{
	Env: "prod",
	Log: LogConfig{
		Level: "info",
	},
	Snapshot: SnapshotConfig{
		Path: "/var/lib/rr-store/rrsets.db",
	},
	Canonical: CanonicalConfig{
		Cache: CacheConfig{Size: 1000},
	},
	Bloom: BloomConfig{
		Capacity: 100_000,
		FPRate:   0.01,
	},
}

// envKeys maps environment variables (without the DNS_ prefix) to config keys.
var envKeys = map[string]string{
	"env":                  "env",
	"log_level":            "log.level",
	"snapshot_path":        "snapshot.path",
	"canonical_cache_size": "canonical.cache.size",
	"bloom_capacity":       "bloom.capacity",
	"bloom_fp_rate":        "bloom.fp_rate",
}

// validFPRate accepts false-positive rates strictly between 0 and 1.
func validFPRate(fl validator.FieldLevel) bool {
	rate := fl.Field().Float()
	return rate > 0 && rate < 1
}

// envLoader loads environment variables with the prefix "DNS_" and maps them onto
// config keys. Unknown variables are ignored. It can be replaced in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNS_"))
			mapped, ok := envKeys[key]
			if !ok {
				return "", nil
			}
			return mapped, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "fp_rate" validation.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("fp_rate", validFPRate)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	err = registerValidation(validate)
	if err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
