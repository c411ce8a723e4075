package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AppName   = "cinetix-cli"
	envPrefix = "CINETIX"
)

type Config struct {
	API     APIConfig
	Booking BookingConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

type BookingConfig struct {
	ConvenienceFee int64
	PaymentMethod  string
}

type LogConfig struct {
	Debug      bool
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from path (or the default config file when path
// is empty), then CINETIX_* environment variables. A missing default file is
// not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:     strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout:     v.GetDuration("api.timeout"),
			MaxAttempts: v.GetInt("api.max_attempts"),
		},
		Booking: BookingConfig{
			ConvenienceFee: v.GetInt64("booking.convenience_fee"),
			PaymentMethod:  v.GetString("booking.payment_method"),
		},
		Log: LogConfig{
			Debug:      v.GetBool("log.debug"),
			Dir:        v.GetString("log.dir"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
	}
	if cfg.API.MaxAttempts < 1 {
		cfg.API.MaxAttempts = 1
	}
	if cfg.Booking.ConvenienceFee < 0 {
		cfg.Booking.ConvenienceFee = 0
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5002")
	v.SetDefault("api.timeout", 12*time.Second)
	v.SetDefault("api.max_attempts", 1)
	v.SetDefault("booking.convenience_fee", 5000)
	v.SetDefault("booking.payment_method", "QRIS")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", defaultLogDir())
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 28)
}

// Dir is the per-user configuration directory for the client.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// CacheDir is the per-user cache directory for the client.
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

func defaultLogDir() string {
	dir, err := CacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName, "logs")
	}
	return filepath.Join(dir, "logs")
}
