package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/models"
)

// Parse decodes a YAML business model definition and builds its catalog.
func Parse(data []byte) (*Catalog, error) {
	var m models.BusinessModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, ierr.WithError(err).
			WithHint("catalog files are YAML with plans, addons and exclusive_groups keys").
			Mark(ierr.ErrConfiguration)
	}
	return New(m)
}

// LoadFile reads a catalog definition from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}
