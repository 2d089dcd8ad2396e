package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/costseg/quote-engine/internal/domain"
	"github.com/costseg/quote-engine/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of quote input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a single quote input from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.QuoteInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes one quote input. Unknown keys are rejected so that a typo in a
// field name is not silently priced as a zero value.
func (ip *InputParser) Parse(data []byte) (*domain.QuoteInput, error) {
	data, err := normalizeDates(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote input: %w", err)
	}
	var input domain.QuoteInput
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("quote input is empty")
		}
		return nil, fmt.Errorf("failed to parse quote input: %w", err)
	}

	if err := ip.ValidateStructure(&input); err != nil {
		return nil, fmt.Errorf("quote input is incomplete: %w", err)
	}
	return &input, nil
}

// LoadBatchFromFile loads a list of quote inputs stored under a top-level
// "quotes" key.
func (ip *InputParser) LoadBatchFromFile(filename string) ([]domain.QuoteInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	data, err = normalizeDates(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote batch: %w", err)
	}
	var batch struct {
		Quotes []domain.QuoteInput `yaml:"quotes"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to parse quote batch: %w", err)
	}
	if len(batch.Quotes) == 0 {
		return nil, fmt.Errorf("quote batch %s contains no quotes", filename)
	}
	for i := range batch.Quotes {
		if err := ip.ValidateStructure(&batch.Quotes[i]); err != nil {
			return nil, fmt.Errorf("quote %d is incomplete: %w", i+1, err)
		}
	}
	return batch.Quotes, nil
}

// ValidateStructure checks that the fields a calculation cannot default are
// present. Range and business rules are enforced by the calculator.
func (ip *InputParser) ValidateStructure(input *domain.QuoteInput) error {
	if input.ZipCode == "" {
		return fmt.Errorf("zip_code is required")
	}
	if input.PropertyType == "" {
		return fmt.Errorf("property_type is required")
	}
	if input.ProductType == "" {
		return fmt.Errorf("product_type is required")
	}
	return nil
}

// normalizeDates rewrites every purchase_date written in a layout yaml does not
// recognize (e.g. 03/15/2024) as an ISO date before strict decoding.
func normalizeDates(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		// let the strict decoder report it
		return data, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return data, nil
	}
	changed, err := normalizeQuoteDates(root)
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "quotes" || root.Content[i+1].Kind != yaml.SequenceNode {
			continue
		}
		for _, q := range root.Content[i+1].Content {
			c, err := normalizeQuoteDates(q)
			if err != nil {
				return nil, err
			}
			changed = changed || c
		}
	}
	if !changed {
		return data, nil
	}
	return yaml.Marshal(&doc)
}

func normalizeQuoteDates(m *yaml.Node) (bool, error) {
	if m.Kind != yaml.MappingNode {
		return false, nil
	}
	changed := false
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if key.Value != "purchase_date" || val.Kind != yaml.ScalarNode {
			continue
		}
		if val.ShortTag() == "!!timestamp" || val.ShortTag() == "!!null" {
			continue
		}
		t, err := dateutil.ParseDate(val.Value)
		if err != nil {
			return false, fmt.Errorf("purchase_date: %w", err)
		}
		val.Value = t.Format("2006-01-02")
		val.Tag = "!!timestamp"
		val.Style = 0
		changed = true
	}
	return changed, nil
}
