package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultAPIURL points at a local development instance of the report
	// service.
	DefaultAPIURL = "http://localhost:8000"

	DefaultServerAddr      = "127.0.0.1:8090"
	DefaultGenerateTimeout = 10 * time.Minute
	DefaultLoginTimeout    = 30 * time.Second
)

// Config is the client-side configuration surface: where the remote
// service lives, where the credential file sits, and the call deadlines.
type Config struct {
	APIURL          string        `mapstructure:"api_url"`
	CredentialFile  string        `mapstructure:"credential_file"`
	ServerAddr      string        `mapstructure:"server_addr"`
	GenerateTimeout time.Duration `mapstructure:"generate_timeout"`
	LoginTimeout    time.Duration `mapstructure:"login_timeout"`
}

// Load reads configuration from an optional profile file, overridden by
// REPORT_DESK_* environment variables. A missing file is fine; every value
// has a default.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("server_addr", DefaultServerAddr)
	v.SetDefault("generate_timeout", DefaultGenerateTimeout)
	v.SetDefault("login_timeout", DefaultLoginTimeout)

	v.SetEnvPrefix("report_desk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &cfg, nil
}
