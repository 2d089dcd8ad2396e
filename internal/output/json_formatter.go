package output

import (
	"encoding/json"

	"github.com/costseg/quote-engine/internal/domain"
)

// JSONFormatter serializes the quote result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.QuoteResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
