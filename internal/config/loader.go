package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PADDOCK_CONFIG is set
//  3. env (prefix PADDOCK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PADDOCK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PADDOCK_ADDR, PADDOCK_MAX_HERD_SIZE, ...
	// Map env keys like PADDOCK_MAX_HERD_SIZE -> max_herd_size (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("PADDOCK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "paddock_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.MaxHerdSize < 1:
		return nil, fmt.Errorf("%w: max_herd_size must be positive", ErrInvalidConfig)
	case cfg.MaxPrimaryStats < 1:
		return nil, fmt.Errorf("%w: max_primary_stats must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
