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

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// ExpectedItems is the capacity estimate the Bloom filter is sized for.
	// Feeding more items than this degrades the false-positive rate but is
	// not an error.
	ExpectedItems uint64 `koanf:"expected_items" validate:"required,gte=1"`

	// FalsePositiveRate is the target false-positive probability, strictly
	// between 0 and 1.
	FalsePositiveRate float64 `koanf:"false_positive_rate" validate:"required,gt=0,lt=1"`

	// CacheSize is the capacity of the observed-item LRU cache. 0 disables it.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// Input is the path of the item stream, or "-" for stdin.
	Input string `koanf:"input" validate:"required"`

	// Format selects the input parser: "plain" (one item per line) or
	// "accesslog" (first IPv4 per line).
	Format string `koanf:"format" validate:"required,oneof=plain accesslog"`

	// Audit enables the exact-membership index that cross-checks verdicts
	// and reports the observed false-positive rate.
	Audit bool `koanf:"audit"`

	// AuditDB is an optional bbolt file backing the audit index. Empty
	// keeps the index in memory. Ignored unless Audit is set.
	AuditDB string `koanf:"audit_db"`
}

// DEFAULT_APP_CONFIG defines the default application configuration: a
// prod-mode run reading plain items from stdin, sized for 100k items at a
// 1% false-positive rate, with a small observed cache and no audit.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:               "prod",
	LogLevel:          "info",
	ExpectedItems:     100_000,
	FalsePositiveRate: 0.01,
	CacheSize:         1024,
	Input:             "-",
	Format:            "plain",
	Audit:             false,
	AuditDB:           "",
}

// envLoader is a function that loads environment variables with the prefix "SEEN_".
// It transforms the keys to lowercase and removes the prefix.
// and can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	// Load environment variables with prefix "SEEN_".
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "SEEN_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "SEEN_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads default configuration values into the provided Koanf
// instance using the structs provider and the DEFAULT_APP_CONFIG struct.
// It returns an error if loading fails.
var defaultLoader = func(k *koanf.Koanf) error {
	// Load default values using structs provider.
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Load default values using structs provider.
	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	// Load environment variables with prefix "SEEN_", using koanf/providers/env/v2 and Opt pattern.
	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig

	// Unmarshal the loaded configuration into AppConfig struct.
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Validate the configuration.
	validate := validator.New(validator.WithRequiredStructEnabled())

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
