package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RentalPolicy holds operator-tunable rental settings that can change without a restart.
type RentalPolicy struct {
	StartRateLimit RateLimitPolicy `mapstructure:"startRateLimit"`
	Nearby         NearbyPolicy    `mapstructure:"nearby"`
	Receipt        ReceiptPolicy   `mapstructure:"receipt"`
}

type RateLimitPolicy struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`
	Burst   int     `mapstructure:"burst"`
}

type NearbyPolicy struct {
	DefaultRadiusKm float64 `mapstructure:"defaultRadiusKm"`
	MaxRadiusKm     float64 `mapstructure:"maxRadiusKm"`
}

type ReceiptPolicy struct {
	CompanyName    string `mapstructure:"companyName"`
	CompanyAddress string `mapstructure:"companyAddress"`
}

func DefaultRentalPolicy() RentalPolicy {
	return RentalPolicy{
		StartRateLimit: RateLimitPolicy{Enabled: true, Rate: 0.2, Burst: 3},
		Nearby:         NearbyPolicy{DefaultRadiusKm: 2, MaxRadiusKm: 25},
		Receipt:        ReceiptPolicy{CompanyName: "Scootfleet"},
	}
}

var defaultPolicyPaths = []string{
	"/var/lib/scootfleet/config", // Volume-mounted config
	"/etc/scootfleet",            // System config
	".",                          // Current directory (dev mode)
}

type RentalPolicyHolder struct {
	current atomic.Value // holds RentalPolicy
}

func NewRentalPolicyHolder(log *zap.Logger) (*RentalPolicyHolder, error) {
	return NewRentalPolicyHolderFromPaths(log, defaultPolicyPaths...)
}

// NewRentalPolicyHolderFromPaths loads rental.yml from the first path that has it and
// watches the file for changes. Defaults apply when no file exists.
func NewRentalPolicyHolderFromPaths(log *zap.Logger, paths ...string) (*RentalPolicyHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("rental.policy")

	v := viper.New()
	v.SetConfigName("rental")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("SCOOTFLEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultRentalPolicy()
	v.SetDefault("rental.startRateLimit.enabled", defaults.StartRateLimit.Enabled)
	v.SetDefault("rental.startRateLimit.rate", defaults.StartRateLimit.Rate)
	v.SetDefault("rental.startRateLimit.burst", defaults.StartRateLimit.Burst)
	v.SetDefault("rental.nearby.defaultRadiusKm", defaults.Nearby.DefaultRadiusKm)
	v.SetDefault("rental.nearby.maxRadiusKm", defaults.Nearby.MaxRadiusKm)
	v.SetDefault("rental.receipt.companyName", defaults.Receipt.CompanyName)
	v.SetDefault("rental.receipt.companyAddress", defaults.Receipt.CompanyAddress)

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		found = false
	}

	cfg, err := decodeRentalPolicy(v)
	if err != nil {
		return nil, err
	}
	if err := validateRentalPolicy(cfg); err != nil {
		return nil, err
	}

	holder := &RentalPolicyHolder{}
	holder.current.Store(cfg)

	if !found {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeRentalPolicy(v)
		if err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateRentalPolicy(updated); err != nil {
			log.Warn("invalid policy ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("policy reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticRentalPolicyHolder returns a holder pinned to the given policy.
func NewStaticRentalPolicyHolder(policy RentalPolicy) *RentalPolicyHolder {
	holder := &RentalPolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func (h *RentalPolicyHolder) Get() RentalPolicy {
	if h == nil {
		return DefaultRentalPolicy()
	}
	return h.current.Load().(RentalPolicy)
}

// decodeRentalPolicy unmarshals from the merged settings so partial files keep defaults.
func decodeRentalPolicy(v *viper.Viper) (RentalPolicy, error) {
	var wrapper struct {
		Rental RentalPolicy `mapstructure:"rental"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return RentalPolicy{}, err
	}
	return wrapper.Rental, nil
}

func validateRentalPolicy(cfg RentalPolicy) error {
	if cfg.StartRateLimit.Enabled {
		if cfg.StartRateLimit.Rate <= 0 {
			return errors.New("rental.startRateLimit.rate must be positive")
		}
		if cfg.StartRateLimit.Burst <= 0 {
			return errors.New("rental.startRateLimit.burst must be positive")
		}
	}
	if cfg.Nearby.DefaultRadiusKm <= 0 {
		return errors.New("rental.nearby.defaultRadiusKm must be positive")
	}
	if cfg.Nearby.MaxRadiusKm < cfg.Nearby.DefaultRadiusKm {
		return errors.New("rental.nearby.maxRadiusKm cannot be below defaultRadiusKm")
	}
	return nil
}
