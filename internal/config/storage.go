package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type StorageConfig struct {
	Products string `koanf:"products"`
	Sales    string `koanf:"sales"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  products: %s\n", c.Products))
	b.WriteString(fmt.Sprintf("  sales: %s\n", c.Sales))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	if c.Products == "" {
		return fmt.Errorf("products file is not configured")
	}
	if c.Sales == "" {
		return fmt.Errorf("sales file is not configured")
	}
	if filepath.Clean(c.Products) == filepath.Clean(c.Sales) {
		return fmt.Errorf("products and sales must be stored in different files: %s", c.Products)
	}
	return nil
}
