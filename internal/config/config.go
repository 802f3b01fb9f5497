// Package config reads the user-level configuration for the g wrapper.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CloneConfig holds clone-related configuration
type CloneConfig struct {
	Host string `toml:"host"` // host used when expanding owner/repo clone shorthands
}

// TokensConfig overrides the environment variable names the provider
// clients read their access tokens from.
type TokensConfig struct {
	GitHubEnv string `toml:"github_env"`
	GitLabEnv string `toml:"gitlab_env"`
}

// Config holds the g configuration, read from ~/.config/g/config.toml.
type Config struct {
	Trunk  string       `toml:"trunk"` // override for the trunk branch name
	Clone  CloneConfig  `toml:"clone"`
	Tokens TokensConfig `toml:"tokens"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Trunk: "",
		Clone: CloneConfig{
			Host: "github.com",
		},
		Tokens: TokensConfig{
			GitHubEnv: "GITHUB_TOKEN",
			GitLabEnv: "GITLAB_TOKEN",
		},
	}
}

// Path returns the location of the config file, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "g", "config.toml"), nil
}

// Load reads the config file. A missing file yields the defaults.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil //nolint:nilerr // No home directory, run with defaults
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Clone.Host == "" {
		c.Clone.Host = def.Clone.Host
	}
	if c.Tokens.GitHubEnv == "" {
		c.Tokens.GitHubEnv = def.Tokens.GitHubEnv
	}
	if c.Tokens.GitLabEnv == "" {
		c.Tokens.GitLabEnv = def.Tokens.GitLabEnv
	}
}
