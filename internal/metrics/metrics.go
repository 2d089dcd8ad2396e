// Package metrics records quote calculator outcomes as Prometheus metrics.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/costseg/quote-engine/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quote_engine"

// Recorder implements calculation.Recorder on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	quotes        *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	warnings      prometheus.Counter
	finalBid      *prometheus.HistogramVec
	latency       prometheus.Histogram
	configUpdates *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its collectors.
func NewRecorder() (*Recorder, error) {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Quotes priced, by product tier, property type and winning pricing model.",
		}, []string{"product", "property_type", "model"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Calculations that returned no quote, by kind.",
		}, []string{"kind"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_warnings_total",
			Help:      "Soft validation warnings attached to priced quotes.",
		}),
		finalBid: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_bid_dollars",
			Help:      "Distribution of final bids.",
			Buckets:   []float64{3000, 5000, 7500, 10000, 15000, 25000, 50000, 100000},
		}, []string{"product"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_seconds",
			Help:      "Time spent pricing a quote.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		configUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_updates_total",
			Help:      "Configuration updates, by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{r.quotes, r.rejections, r.warnings, r.finalBid, r.latency, r.configUpdates} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) ObserveQuote(result *domain.QuoteResult, elapsed time.Duration) {
	product := string(result.ProductType)
	r.quotes.WithLabelValues(product, string(result.Input.PropertyType), string(result.WinningModel)).Inc()
	r.warnings.Add(float64(len(result.Warnings)))
	r.finalBid.WithLabelValues(product).Observe(result.FinalBid.InexactFloat64())
	r.latency.Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveRejection(kind string) {
	r.rejections.WithLabelValues(kind).Inc()
}

func (r *Recorder) ObserveConfigUpdate(ok bool) {
	result := "applied"
	if !ok {
		result = "rejected"
	}
	r.configUpdates.WithLabelValues(result).Inc()
}

// Gatherer exposes the registry for tests and custom exporters
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteToTextfile writes the current metrics to path in the node exporter
// textfile format.
func (r *Recorder) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
