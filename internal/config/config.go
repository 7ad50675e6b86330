// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the optional .mrlint.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/mrlint/internal/commitlint"
	"github.com/bartekus/mrlint/internal/history"
)

// DefaultPath is read when --config is not given. It may be absent.
const DefaultPath = ".mrlint.yaml"

// DefaultDocsURL points at the commit message guidelines.
const DefaultDocsURL = "https://gitlab.com/gitlab-org/cli/-/blob/main/CONTRIBUTING.md#commit-messages"

type Config struct {
	HeaderMaxLength int    `yaml:"header_max_length"`
	Source          string `yaml:"source"`
	DocsURL         string `yaml:"docs_url"`
	Strict          bool   `yaml:"strict"`
	Format          string `yaml:"format"`
	ReportFile      string `yaml:"report_file"`
}

func Default() *Config {
	return &Config{
		HeaderMaxLength: commitlint.HeaderMaxLength,
		Source:          string(history.KindGit),
		DocsURL:         DefaultDocsURL,
		Format:          "text",
	}
}

// Load reads path over the defaults. A missing file is only an error when
// required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // G304: config path is chosen by the user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HeaderMaxLength != commitlint.HeaderMaxLength && c.HeaderMaxLength != commitlint.HeaderMaxLengthStrict {
		return fmt.Errorf("header_max_length must be %d or %d, got %d",
			commitlint.HeaderMaxLength, commitlint.HeaderMaxLengthStrict, c.HeaderMaxLength)
	}
	if _, err := history.ParseKind(c.Source); err != nil {
		return err
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be 'text' or 'json', got %q", c.Format)
	}
	return nil
}
