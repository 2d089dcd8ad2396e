package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/costseg/quote-engine/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes a quote in the named format into dir and returns the
// files it created. "all" writes the console report, the schedule CSV and JSON.
func GenerateReport(result *domain.QuoteResult, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, JSONFormatter{}} {
			name, err := WriteFormatted(f, result, dir)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return nil, UnsupportedFormatError(format)
	}
	name, err := WriteFormatted(f, result, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// UnsupportedFormatError enriches ErrUnsupportedFormat with the available formatters and aliases.
func UnsupportedFormatError(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveConfiguration writes the calculator configuration as YAML.
func SaveConfiguration(cfg domain.CalculatorConfig, filename string) error {
	b, err := MarshalConfiguration(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// MarshalConfiguration renders the calculator configuration as YAML.
func MarshalConfiguration(cfg domain.CalculatorConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
