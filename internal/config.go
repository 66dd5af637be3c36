package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Vault   VaultConfig       `yaml:"vault"`
	Site    SiteConfig        `yaml:"site"`
	Journal JournalConfig     `yaml:"journal"`
	Watch   bool              `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	return c.Site.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds the optional watch-mode status server configuration.
type HTTPConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the source vault directory configuration.
type VaultConfig struct {
	Path string `yaml:"path"`
	// AssetsDir is the subdirectory of the vault holding referenced
	// images; defaults to "assets".
	AssetsDir string `yaml:"assets_dir"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SiteConfig holds the destination site tree configuration. PostsDir and
// AssetsDir are relative to Path and are wiped and recreated at startup.
type SiteConfig struct {
	Path      string `yaml:"path"`
	PostsDir  string `yaml:"posts_dir"`
	AssetsDir string `yaml:"assets_dir"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.PostsDir, validation.Required),
		validation.Field(&c.AssetsDir, validation.Required),
	)
}

// JournalConfig holds the export journal configuration. An empty path
// disables the journal.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Enabled: false,
				Port:    8080,
			},
		},
		Vault: VaultConfig{
			Path:      "./vault",
			AssetsDir: "assets",
		},
		Site: SiteConfig{
			Path:      "./site",
			PostsDir:  "content/posts",
			AssetsDir: "content/assets",
		},
		Journal: JournalConfig{
			Path: "./ehwaz.db",
		},
	}
}
