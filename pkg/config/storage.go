package config

import (
	"fmt"
	"strings"
)

// StorageConfig holds the paths of the collection files.
type StorageConfig struct {
	ProductsFile string `koanf:"productsFile"`
	CartsFile    string `koanf:"cartsFile"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  productsFile: %s\n", c.ProductsFile))
	b.WriteString(fmt.Sprintf("  cartsFile: %s\n", c.CartsFile))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	if c.ProductsFile == "" {
		return fmt.Errorf("products file path is not configured")
	}
	if c.CartsFile == "" {
		return fmt.Errorf("carts file path is not configured")
	}
	if c.ProductsFile == c.CartsFile {
		return fmt.Errorf("products and carts must use separate files: %s", c.ProductsFile)
	}
	return nil
}
