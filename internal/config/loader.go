package config

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/costseg/quote-engine/internal/domain"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix is the environment variable prefix for calculator settings, e.g.
// QUOTE_PAYMENTS_UPFRONT=0.9 or QUOTE_DEPRECIATION_YEARS_TO_PROJECT=20.
const envPrefix = "QUOTE"

// newViper builds a Viper instance seeded with the default configuration so
// that every key is known and can be overridden from the environment.
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("config: failed to seed defaults: %w", err)
	}
	return v, nil
}

// LoadCalculatorConfig builds the calculator configuration from the defaults,
// the optional file at configPath and QUOTE_* environment overrides, then
// validates the result.
func LoadCalculatorConfig(configPath string) (domain.CalculatorConfig, error) {
	v, err := newViper()
	if err != nil {
		return domain.CalculatorConfig{}, err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return domain.CalculatorConfig{}, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (domain.CalculatorConfig, error) {
	var cfg domain.CalculatorConfig
	err := v.Unmarshal(&cfg,
		viper.DecodeHook(decimalHook),
		func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" },
	)
	if err != nil {
		return domain.CalculatorConfig{}, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.CalculatorConfig{}, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook converts the strings and numbers viper produces into decimals.
func decimalHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case decimal.Decimal:
		return v, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to decimal", data)
	}
}

// Watcher reloads the calculator configuration when its file changes.
type Watcher struct {
	path     string
	onChange func(domain.CalculatorConfig)
	onError  func(error)

	mu      sync.Mutex
	stopped bool
}

// Watch monitors configPath and calls onChange with each new configuration
// that loads and validates. Failed reloads go to onError and leave the
// previous configuration in place. Watch is non-blocking; the watch goroutine
// is owned by viper.
func Watch(configPath string, onChange func(domain.CalculatorConfig), onError func(error)) (*Watcher, error) {
	if onError == nil {
		onError = func(error) {}
	}
	w := &Watcher{path: configPath, onChange: onChange, onError: onError}

	v, err := newViper()
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(configPath)
	if err := v.MergeInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	v.OnConfigChange(w.handle)
	v.WatchConfig()
	return w, nil
}

func (w *Watcher) handle(e fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	// viper's own reload drops the seeded defaults, so rebuild from scratch.
	cfg, err := LoadCalculatorConfig(w.path)
	if err != nil {
		w.onError(fmt.Errorf("reload after %s: %w", e.Op, err))
		return
	}
	w.onChange(cfg)
}

// Stop suppresses further callbacks
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
}
