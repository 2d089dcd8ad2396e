package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/costseg/quote-engine/internal/domain"
)

// HTMLFormatter produces a standalone HTML quote document.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/quote.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("quote").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"cents":  FormatCents,
	"rate":   FormatRate,
	"factor": FormatFactor,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.QuoteResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.QuoteResult
		Highlights  Highlights
		Assumptions []string
	}{
		QuoteResult: result,
		Highlights:  AnalyzeQuote(result),
		Assumptions: GenerateAssumptions(result),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
