package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 4000
	defaultEnv        = "development"
	defaultOrigin     = "http://localhost:5173"

	defaultHFEndpoint     = "https://api-inference.huggingface.co"
	defaultOpenAIEndpoint = "https://api.openai.com/v1"
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"

	defaultUpstreamTimeoutSeconds = 60
)

// AppConfig holds runtime startup configuration loaded from YAML.
// Credentials are sourced from the process environment and override
// anything placed in the file.
type AppConfig struct {
	Port          int             `yaml:"port"`
	Env           string          `yaml:"env"` // "development" | "production"
	AllowedOrigin string          `yaml:"allowed_origin"`
	Upstream      UpstreamConfig  `yaml:"upstream"`
	Providers     ProvidersConfig `yaml:"providers"`
}

// UpstreamConfig bounds the single outbound call each request makes.
type UpstreamConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ProvidersConfig carries per-provider endpoints and credentials.
type ProvidersConfig struct {
	HuggingFace ProviderEndpoint `yaml:"huggingface"`
	OpenAI      ProviderEndpoint `yaml:"openai"`
	Anthropic   ProviderEndpoint `yaml:"anthropic"`
	Gemini      ProviderEndpoint `yaml:"gemini"`
}

// ProviderEndpoint is one provider family's base URL plus its credential.
type ProviderEndpoint struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// Load reads the YAML config, applies defaults and environment overrides.
// A missing file at the default path is not an error: credentials can come
// entirely from env.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) || explicit {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Upstream.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("invalid upstream.timeout_seconds %d, expected >= 1", cfg.Upstream.TimeoutSeconds)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:          defaultPort,
		Env:           defaultEnv,
		AllowedOrigin: defaultOrigin,
		Upstream: UpstreamConfig{
			TimeoutSeconds: defaultUpstreamTimeoutSeconds,
		},
		Providers: ProvidersConfig{
			HuggingFace: ProviderEndpoint{Endpoint: defaultHFEndpoint},
			OpenAI:      ProviderEndpoint{Endpoint: defaultOpenAIEndpoint},
			Gemini:      ProviderEndpoint{Endpoint: defaultGeminiEndpoint},
		},
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			cfg.Port = port
		}
	}
	if env := strings.TrimSpace(os.Getenv("APP_ENV")); env != "" {
		cfg.Env = env
	}
	if origin := strings.TrimSpace(os.Getenv("ALLOWED_ORIGIN")); origin != "" {
		cfg.AllowedOrigin = origin
	}

	setKey := func(dst *ProviderEndpoint, names ...string) {
		for _, name := range names {
			if v := strings.TrimSpace(os.Getenv(name)); v != "" {
				dst.APIKey = v
				return
			}
		}
	}
	setKey(&cfg.Providers.HuggingFace, "HF_TOKEN", "HUGGINGFACE_API_KEY")
	setKey(&cfg.Providers.OpenAI, "OPENAI_API_KEY")
	setKey(&cfg.Providers.Anthropic, "ANTHROPIC_API_KEY")
	setKey(&cfg.Providers.Gemini, "GEMINI_API_KEY", "GOOGLE_API_KEY")
}

// Validate checks that every provider family wired into the compiled model
// tables carries a credential, so a missing key fails at boot instead of
// surfacing as an upstream 401 at request time.
func (c *AppConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Providers.HuggingFace.APIKey) == "" {
		missing = append(missing, "HF_TOKEN")
	}
	if strings.TrimSpace(c.Providers.OpenAI.APIKey) == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if strings.TrimSpace(c.Providers.Anthropic.APIKey) == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}
	if strings.TrimSpace(c.Providers.Gemini.APIKey) == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing provider credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}
