package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Matching      Matching      `yaml:"matching"`
}

// Matching tunes the job-recommendation listing.
type Matching struct {
	// MaxJobs caps how many jobs are loaded and ranked per request.
	MaxJobs int `yaml:"max_jobs"`
}

const insecureJWTSecret = "supersecretkey"

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 1 * time.Hour

	cfg := &Config{
		Addr:          getEnv("HIRELOOP_ADDR", ":8080"),
		JWTSecret:     getEnv("HIRELOOP_JWT_SECRET", insecureJWTSecret),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("HIRELOOP_DATABASE_PATH", "hireloop.db"),
		TokenDuration: tokenDuration,
		Matching:      Matching{MaxJobs: 200},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration for values that are unsafe or unusable
// outside development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.Matching.MaxJobs <= 0 {
		return fmt.Errorf("matching.max_jobs must be positive")
	}
	if c.JWTSecret == insecureJWTSecret && os.Getenv("HIRELOOP_ENV") != "development" {
		return fmt.Errorf("jwt_secret must be changed outside development")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
