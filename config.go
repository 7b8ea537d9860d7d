package annuaire

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file/environment configuration consumed by cmd/annuaired.
// Library embedders use the functional options on New instead.
type Config struct {
	ListenAddr string
	APIBaseURL string
	CSVPath    string
	APITimeout time.Duration
	HealthTTL  time.Duration
}

// DefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8085",
		CSVPath:    "data/businesses.csv",
		APITimeout: defaultAPITimeout,
		HealthTTL:  30 * time.Second,
	}
}

// fileConfig is the YAML shape of the config file. Durations are strings
// ("30s", "2m") and parsed after decoding.
type fileConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	APIBaseURL string `yaml:"api_base_url"`
	CSVPath    string `yaml:"csv_path"`
	APITimeout string `yaml:"api_timeout"`
	HealthTTL  string `yaml:"health_ttl"`
}

// LoadConfig reads a YAML config file, then applies environment overrides.
// A missing file is not an error; the defaults plus environment apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			var fc fileConfig
			if err := yaml.Unmarshal(raw, &fc); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
			if fc.ListenAddr != "" {
				cfg.ListenAddr = fc.ListenAddr
			}
			if fc.APIBaseURL != "" {
				cfg.APIBaseURL = fc.APIBaseURL
			}
			if fc.CSVPath != "" {
				cfg.CSVPath = fc.CSVPath
			}
			if fc.APITimeout != "" {
				d, err := time.ParseDuration(fc.APITimeout)
				if err != nil {
					return Config{}, fmt.Errorf("parsing config %s: api_timeout: %w", path, err)
				}
				cfg.APITimeout = d
			}
			if fc.HealthTTL != "" {
				d, err := time.ParseDuration(fc.HealthTTL)
				if err != nil {
					return Config{}, fmt.Errorf("parsing config %s: health_ttl: %w", path, err)
				}
				cfg.HealthTTL = d
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.ListenAddr = getEnv("ANNUAIRE_LISTEN_ADDR", cfg.ListenAddr)
	cfg.APIBaseURL = getEnv("ANNUAIRE_API_BASE_URL", cfg.APIBaseURL)
	cfg.CSVPath = getEnv("ANNUAIRE_CSV_PATH", cfg.CSVPath)
	cfg.APITimeout = getEnvDuration("ANNUAIRE_API_TIMEOUT", cfg.APITimeout)
	cfg.HealthTTL = getEnvDuration("ANNUAIRE_HEALTH_TTL", cfg.HealthTTL)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("invalid config: listen_addr is empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("invalid config: api_timeout must be positive, got %s", c.APITimeout)
	}
	if c.HealthTTL <= 0 {
		return fmt.Errorf("invalid config: health_ttl must be positive, got %s", c.HealthTTL)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
