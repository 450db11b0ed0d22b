// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// tokenFallbackEnv is read when REMOTE_TOKEN is unset. GitHub tooling
// commonly exports it already.
const tokenFallbackEnv = "GITHUB_TOKEN"

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.Remote.Token == "" {
		cfg.Remote.Token = os.Getenv(tokenFallbackEnv)
	}

	return nil
}
