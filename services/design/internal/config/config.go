package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config location relative to the working dir.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML. Provider API keys
// come from the environment only and are never written to the file.
type FileConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`

	// Provider selects the image synthesis backend: "openai" or "gemini".
	Provider      string `yaml:"provider"`
	OpenAIBaseURL string `yaml:"openaiBaseURL"`
	OpenAIModel   string `yaml:"openaiModel"`
	GeminiModel   string `yaml:"geminiModel"`

	// DatabaseURL switches the artifact store to Postgres; empty keeps the
	// in-memory store.
	DatabaseURL string `yaml:"databaseURL"`
	// ArtifactTTL evicts in-memory records after this duration; empty or
	// "0" keeps records for the process lifetime.
	ArtifactTTL string `yaml:"artifactTTL"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`

	// QuotaRedisAddr turns on the shared per-client daily quota guard.
	// Empty leaves quota enforcement to the client, matching the advisory
	// reference design.
	QuotaRedisAddr     string `yaml:"quotaRedisAddr"`
	QuotaRedisPassword string `yaml:"quotaRedisPassword"`
	DailyLimit         int    `yaml:"dailyLimit"`
	// TrustForwardedHeaders keys the quota guard by X-Forwarded-For;
	// enable only behind a reverse proxy.
	TrustForwardedHeaders bool `yaml:"trustForwardedHeaders"`

	// Secrets, environment-only.
	OpenAIAPIKey string `yaml:"-"`
	GeminiAPIKey string `yaml:"-"`
}

// Load reads config from path (defaults to config.yaml) and applies
// environment overrides.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if v := os.Getenv("DESIGN_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v == "true" {
		cfg.MinioUseSSL = true
	}
	if v := os.Getenv("QUOTA_REDIS_ADDR"); v != "" {
		cfg.QuotaRedisAddr = v
	}
	if v := os.Getenv("QUOTA_REDIS_PASSWORD"); v != "" {
		cfg.QuotaRedisPassword = v
	}
	if v := os.Getenv("DESIGN_DAILY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DailyLimit = n
		}
	}
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseArtifactTTL parses the eviction setting; empty means never evict.
func ParseArtifactTTL(raw string) (time.Duration, error) {
	if raw == "" || raw == "0" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse artifactTTL: %w", err)
	}
	if ttl < 0 {
		return 0, errors.New("artifactTTL must not be negative")
	}
	return ttl, nil
}

// MinioEnabled reports whether payload offload to object storage is on.
func (c FileConfig) MinioEnabled() bool {
	return c.MinioEndpoint != ""
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml)")
	}
	switch cfg.Provider {
	case "openai":
		// A missing credential is a startup failure, not a per-request one.
		if cfg.OpenAIAPIKey == "" {
			return errors.New("config: OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return errors.New("config: GEMINI_API_KEY is required for the gemini provider")
		}
	default:
		return fmt.Errorf("config: unknown provider %q (expected openai or gemini)", cfg.Provider)
	}
	if cfg.MinioEnabled() {
		if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" {
			return errors.New("config: minio endpoint set but access key, secret key or bucket missing")
		}
	}
	if _, err := ParseArtifactTTL(cfg.ArtifactTTL); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
