package calculation

import (
	"time"

	"github.com/costseg/quote-engine/internal/domain"
)

// Rejection kinds passed to Recorder.ObserveRejection
const (
	RejectValidation = "validation"
	RejectInternal   = "internal"
)

// Recorder observes calculator outcomes, typically for metrics.
type Recorder interface {
	ObserveQuote(result *domain.QuoteResult, elapsed time.Duration)
	ObserveRejection(kind string)
	ObserveConfigUpdate(ok bool)
}

// NopRecorder discards all observations
type NopRecorder struct{}

func (NopRecorder) ObserveQuote(*domain.QuoteResult, time.Duration) {}
func (NopRecorder) ObserveRejection(string)                         {}
func (NopRecorder) ObserveConfigUpdate(bool)                        {}
