package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder layers configuration sources in the order they are added.
// A later source overrides an earlier one field by field; zero values in the
// later source never override.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("build config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

// add runs load and keeps its result. A failing source is recorded under its
// name and the remaining sources still run, so every problem is reported at
// once.
func (b *configBuilder) add(source string, load func() (*StructuredConfig, error)) *configBuilder {
	cfg, err := load()
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s source: %w", source, err))
		return b
	}
	if cfg != nil {
		b.configs = append(b.configs, cfg)
	}
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.add("defaults", func() (*StructuredConfig, error) {
		return Defaults(), nil
	})
}

func (b *configBuilder) withEnv() *configBuilder {
	return b.add("env", func() (*StructuredConfig, error) {
		envCfg := &StructuredConfig{}
		if err := parseEnv(envCfg); err != nil {
			return nil, err
		}
		return envCfg, nil
	})
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.add("flags", func() (*StructuredConfig, error) {
		return ParseFlags(), nil
	})
}

// withJSON loads the file named by the last source that set JSONFilePath.
// It is skipped once an earlier source failed, since the path may be wrong.
func (b *configBuilder) withJSON() *configBuilder {
	if b.err != nil {
		return b
	}

	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}
	if jsonPath == "" {
		return b
	}

	return b.add("json", func() (*StructuredConfig, error) {
		return parseJSON(jsonPath)
	})
}
