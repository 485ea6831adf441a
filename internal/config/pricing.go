package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig carries the tunable defaults of the pricing pipeline. It is
// threaded explicitly through the calculator instead of living in package
// globals so tests and callers can substitute their own values.
type PricingConfig struct {
	// DefaultMarkupPercent is applied when a country markup rule lookup fails
	// or the destination country is unknown.
	DefaultMarkupPercent float64 `mapstructure:"defaultMarkupPercent"`
	// BudgetEstimateFactor scales the enquiry budget midpoint when no
	// itinerary exists, leaving headroom for markup.
	BudgetEstimateFactor float64 `mapstructure:"budgetEstimateFactor"`
	// DefaultCurrencyCode/Symbol back unknown destinations.
	DefaultCurrencyCode   string `mapstructure:"defaultCurrencyCode"`
	DefaultCurrencySymbol string `mapstructure:"defaultCurrencySymbol"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		DefaultMarkupPercent:  15,
		BudgetEstimateFactor:  0.7,
		DefaultCurrencyCode:   "USD",
		DefaultCurrencySymbol: "$",
	}
}

// PricingConfigHolder serves the current pricing defaults and hot-reloads
// them when the mounted config file changes.
type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/triplexa/config")
	v.AddConfigPath("/etc/triplexa")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRIPLEXA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingConfig()
	v.SetDefault("pricing.defaultMarkupPercent", defaults.DefaultMarkupPercent)
	v.SetDefault("pricing.budgetEstimateFactor", defaults.BudgetEstimateFactor)
	v.SetDefault("pricing.defaultCurrencyCode", defaults.DefaultCurrencyCode)
	v.SetDefault("pricing.defaultCurrencySymbol", defaults.DefaultCurrencySymbol)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

// NewStaticPricingConfigHolder serves a fixed config, for tests.
func NewStaticPricingConfigHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validatePricingConfig(cfg PricingConfig) error {
	if cfg.DefaultMarkupPercent < 0 {
		return errors.New("pricing.defaultMarkupPercent cannot be negative")
	}
	if cfg.BudgetEstimateFactor <= 0 || cfg.BudgetEstimateFactor > 1 {
		return errors.New("pricing.budgetEstimateFactor must be in (0, 1]")
	}
	if strings.TrimSpace(cfg.DefaultCurrencyCode) == "" {
		return errors.New("pricing.defaultCurrencyCode cannot be empty")
	}
	return nil
}
