package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

// Provider names the text generator backend.
type Provider string

const (
	ProviderMock   Provider = "mock"
	ProviderVertex Provider = "vertex"
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderNone   Provider = "none"
)

type Config struct {
	Mode     Mode   `yaml:"mode"`
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	LLM LLMConfig `yaml:"llm"`

	AMQP AMQPConfig `yaml:"amqp"`
	R2   R2Config   `yaml:"r2"`
}

type LLMConfig struct {
	Provider     Provider `yaml:"provider"`
	GCPProjectID string   `yaml:"gcp_project"`
	GCPLocation  string   `yaml:"gcp_location"`
	ModelName    string   `yaml:"model"`
	GoogleAPIKey string   `yaml:"google_api_key,omitempty"`
	OpenAIAPIKey string   `yaml:"openai_api_key,omitempty"`
	OpenAIModel  string   `yaml:"openai_model"`

	Timeout       time.Duration `yaml:"timeout"`
	MaxReplyChars int           `yaml:"max_reply_chars"`
	Attempts      int           `yaml:"attempts"`
}

type AMQPConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

func (c AMQPConfig) Enabled() bool { return c.URL != "" }

type R2Config struct {
	AccountID string `yaml:"account_id"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
}

func (c R2Config) Enabled() bool { return c.AccountID != "" && c.Bucket != "" }

// Default is the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Mode:     ModeLocal,
		Port:     "8080",
		LogLevel: "info",
		LLM: LLMConfig{
			GCPLocation:   "us-central1",
			ModelName:     "gemini-2.5-flash-lite",
			OpenAIModel:   "gpt-4o-mini",
			Timeout:       20 * time.Second,
			MaxReplyChars: 2000,
			Attempts:      1,
		},
		AMQP: AMQPConfig{
			Exchange: "negotiation_updates",
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Load builds the config from defaults, the YAML file named by
// NEOGIATOR_CONFIG (if any) and then environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("NEOGIATOR_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyModeDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Mode = Mode(strings.ToLower(getEnv("NEOGIATOR_MODE", string(c.Mode))))
	c.Port = getEnv("NEOGIATOR_PORT", getEnv("PORT", c.Port))
	c.LogLevel = getEnv("NEOGIATOR_LOG_LEVEL", c.LogLevel)

	l := &c.LLM
	l.Provider = Provider(strings.ToLower(getEnv("NEOGIATOR_LLM_PROVIDER", string(l.Provider))))
	l.GCPProjectID = getEnv("NEOGIATOR_GCP_PROJECT", l.GCPProjectID)
	l.GCPLocation = getEnv("NEOGIATOR_GCP_LOCATION", l.GCPLocation)
	l.ModelName = getEnv("NEOGIATOR_MODEL_NAME", l.ModelName)
	l.GoogleAPIKey = getEnv("GOOGLE_API_KEY", l.GoogleAPIKey)
	l.OpenAIAPIKey = getEnv("OPENAI_API_KEY", l.OpenAIAPIKey)
	l.OpenAIModel = getEnv("NEOGIATOR_OPENAI_MODEL", l.OpenAIModel)

	var err error
	if l.Timeout, err = getDurationEnv("NEOGIATOR_GENERATION_TIMEOUT", l.Timeout); err != nil {
		return err
	}
	if l.MaxReplyChars, err = getIntEnv("NEOGIATOR_MAX_REPLY_CHARS", l.MaxReplyChars); err != nil {
		return err
	}
	if l.Attempts, err = getIntEnv("NEOGIATOR_GENERATION_ATTEMPTS", l.Attempts); err != nil {
		return err
	}

	c.AMQP.URL = getEnv("RABBITMQ_URL", c.AMQP.URL)
	c.AMQP.Exchange = getEnv("NEOGIATOR_AMQP_EXCHANGE", c.AMQP.Exchange)

	c.R2.AccountID = getEnv("R2_ACCOUNT_ID", c.R2.AccountID)
	c.R2.Bucket = getEnv("R2_BUCKET", c.R2.Bucket)
	c.R2.AccessKey = getEnv("R2_ACCESS_KEY", c.R2.AccessKey)
	c.R2.SecretKey = getEnv("R2_SECRET_KEY", c.R2.SecretKey)
	return nil
}

// applyModeDefaults picks a provider when none was named: the mock locally,
// Vertex on GCP.
func (c *Config) applyModeDefaults() {
	if c.LLM.Provider != "" {
		return
	}
	if c.Mode == ModeGCP {
		c.LLM.Provider = ProviderVertex
		return
	}
	c.LLM.Provider = ProviderMock
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Mode {
	case ModeLocal, ModeGCP:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if c.Mode == ModeGCP && c.LLM.GCPProjectID == "" {
		errs = append(errs, errors.New("NEOGIATOR_GCP_PROJECT must be set in gcp mode"))
	}

	switch c.LLM.Provider {
	case ProviderMock, ProviderNone:
	case ProviderVertex:
		if c.LLM.GCPProjectID == "" || c.LLM.GCPLocation == "" {
			errs = append(errs, errors.New("vertex provider needs NEOGIATOR_GCP_PROJECT and NEOGIATOR_GCP_LOCATION"))
		}
	case ProviderGemini:
		if c.LLM.GoogleAPIKey == "" {
			errs = append(errs, errors.New("gemini provider needs GOOGLE_API_KEY"))
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("openai provider needs OPENAI_API_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
	}

	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("generation timeout must be positive"))
	}
	if c.LLM.MaxReplyChars <= 0 {
		errs = append(errs, errors.New("max reply chars must be positive"))
	}
	if c.LLM.Attempts < 1 {
		errs = append(errs, errors.New("generation attempts must be at least 1"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port must be set"))
	}

	return errors.Join(errs...)
}
