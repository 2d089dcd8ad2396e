package calculation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// quoteIDFunc generates quote identifiers of the form Q-<UUID>.
var quoteIDFunc = func() string { return "Q-" + strings.ToUpper(uuid.NewString()) }

// SetQuoteIDFunc overrides the quote ID generator (use only in tests).
func SetQuoteIDFunc(f func() string) { quoteIDFunc = f }

func newReference() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
