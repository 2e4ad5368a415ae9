package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vilaca/contributor-roster/internal/api"
	"github.com/vilaca/contributor-roster/internal/domain"
)

const (
	// DefaultRepository is exported when nothing else is configured.
	DefaultRepository = "gdsfactory/gdsfactory"
	// DefaultOutputPath is relative to the working directory.
	DefaultOutputPath = "contributors.csv"
	// DefaultGitHubURL is the public GitHub API.
	DefaultGitHubURL = "https://api.github.com"
)

// Config holds application configuration.
// Follows Single Responsibility - only holds configuration data.
type Config struct {
	// GitHub configuration
	GitHubURL   string
	GitHubToken string

	// Repository to export, in owner/name form (e.g., "golang/go")
	Repository string

	// OutputPath is where the CSV roster is written.
	OutputPath string

	// MaxPages caps contributor pagination.
	MaxPages int
}

// fileConfig is the YAML layout accepted by LoadFile.
type fileConfig struct {
	GitHubURL  string `yaml:"github_url"`
	Repository string `yaml:"repository"`
	Output     string `yaml:"output"`
	MaxPages   int    `yaml:"max_pages"`
}

// Load loads configuration from environment variables.
// GITHUB_TOKEN is read as-is; an empty token is not an error.
func Load() (*Config, error) {
	maxPages := api.DefaultMaxPages
	if maxPagesStr := os.Getenv("ROSTER_MAX_PAGES"); maxPagesStr != "" {
		if p, err := strconv.Atoi(maxPagesStr); err == nil && p > 0 {
			maxPages = p
		}
	}

	return &Config{
		GitHubURL:   getEnvOrDefault("GITHUB_URL", DefaultGitHubURL),
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		Repository:  getEnvOrDefault("ROSTER_REPOSITORY", DefaultRepository),
		OutputPath:  getEnvOrDefault("ROSTER_OUTPUT", DefaultOutputPath),
		MaxPages:    maxPages,
	}, nil
}

// LoadFile overlays non-empty values from a YAML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if fc.GitHubURL != "" {
		c.GitHubURL = fc.GitHubURL
	}
	if fc.Repository != "" {
		c.Repository = fc.Repository
	}
	if fc.Output != "" {
		c.OutputPath = fc.Output
	}
	if fc.MaxPages != 0 {
		c.MaxPages = fc.MaxPages
	}
	return nil
}

// Validate checks that the configuration has usable values.
// The token is deliberately not checked; requests go out without it.
func (c *Config) Validate() error {
	if _, err := ParseRepository(c.Repository); err != nil {
		return err
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("config error: max pages must be positive, got %d", c.MaxPages)
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("config error: output path is empty")
	}
	return nil
}

// GetRepository returns the configured repository.
func (c *Config) GetRepository() (domain.Repository, error) {
	return ParseRepository(c.Repository)
}

// ParseRepository parses an "owner/name" identifier.
func ParseRepository(s string) (domain.Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return domain.Repository{}, fmt.Errorf("config error: repository must be in owner/name form, got %q", s)
	}
	return domain.Repository{Owner: owner, Name: name}, nil
}

// HasGitHubToken returns true if a GitHub token is configured.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
