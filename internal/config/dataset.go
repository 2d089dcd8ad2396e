package config

import (
	"fmt"
	"os"

	"github.com/costseg/quote-engine/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadLookupDataset reads a lookup table dataset keyed by category
// (cost_basis, zip_code, sqft, acres, property_type, floors,
// multiple_properties). JSON datasets are accepted as YAML.
func LoadLookupDataset(filename string) (domain.LookupTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.LookupTables{}, fmt.Errorf("failed to read dataset %s: %w", filename, err)
	}
	return ParseLookupDataset(data)
}

// ParseLookupDataset decodes and validates a dataset document
func ParseLookupDataset(data []byte) (domain.LookupTables, error) {
	var tables domain.LookupTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return domain.LookupTables{}, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if err := tables.Validate(); err != nil {
		return domain.LookupTables{}, fmt.Errorf("invalid dataset: %w", err)
	}
	return tables, nil
}
