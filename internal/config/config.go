// Package config holds the application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/JuanS3/INTER-seguridad-taller3/internal/platform/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// EnvPrefix is the prefix of environment variables that override configuration keys.
const EnvPrefix = "TIENDA"

type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
	Shell   ShellConfig   `koanf:"shell"`
}

// Defaults returns the lowest-priority configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"storage.products": "productos.json",
		"storage.sales":    "ventas.json",
		"log.level":        "warn",
		"log.format":       "text",
		"log.output":       "stderr",
		"shell.history":    "",
		"shell.prompt":     "Seleccione una opción: ",
	}
}

// Load reads the configuration from defaults, config.yaml, .env and TIENDA_* environment variables.
func Load() (*Config, error) {
	return configloader.Load[*Config](configloader.Options{
		Prefix:   EnvPrefix,
		Defaults: Defaults(),
	})
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.Storage.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.Shell.String())

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Shell.Validate(); err != nil {
		return err
	}
	return nil
}

type ShellConfig struct {
	History string `koanf:"history"`
	Prompt  string `koanf:"prompt"`
}

// String returns a string representation of the shell configuration.
func (c *ShellConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shell ---\n")
	history := c.History
	if history == "" {
		history = "<disabled>"
	}
	b.WriteString(fmt.Sprintf("  history: %s\n", history))
	b.WriteString(fmt.Sprintf("  prompt: %q\n", c.Prompt))
	return b.String()
}

func (c *ShellConfig) Validate() error {
	return nil
}
