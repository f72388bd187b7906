package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration. Every field can be set from
// the YAML file (with ${ENV} expansion) or left to its default so the
// service also runs from environment variables alone.
type Config struct {
	Port int `yaml:"port"`

	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Gemini struct {
		APIKey         string `yaml:"apiKey"`
		Model          string `yaml:"model"`
		BaseURL        string `yaml:"baseUrl"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"gemini"`

	Tutor struct {
		DefaultLevel          string `yaml:"defaultLevel"`
		DefaultLanguage       string `yaml:"defaultLanguage"`
		UserCooldownSeconds   int    `yaml:"userCooldownSeconds"`
		GlobalCooldownSeconds int    `yaml:"globalCooldownSeconds"`
	} `yaml:"tutor"`
}

// Load reads the config file at path, expands ${ENV} references and applies
// defaults. A missing file is not an error: the service falls back to
// environment variables and defaults, like the original deployment did.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return c, err
		}
		if err == nil {
			if c, err = LoadFromBytes(data); err != nil {
				return c, err
			}
		}
	}
	c.applyDefaults()
	return c, nil
}

// LoadFromBytes loads configuration from YAML bytes with environment
// variable expansion.
func LoadFromBytes(data []byte) (Config, error) {
	var c Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &c); err != nil {
		return c, err
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = envInt("PORT", 8000)
	}
	if c.App.Name == "" {
		c.App.Name = "lingobot"
	}
	if c.App.Version == "" {
		c.App.Version = "dev"
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = envString("GEMINI_MODEL_NAME", "gemini-1.5-flash")
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.Gemini.TimeoutSeconds == 0 {
		c.Gemini.TimeoutSeconds = 60
	}
	if c.Tutor.DefaultLevel == "" {
		c.Tutor.DefaultLevel = "basic"
	}
	if c.Tutor.DefaultLanguage == "" {
		c.Tutor.DefaultLanguage = "pt"
	}
	if c.Tutor.UserCooldownSeconds == 0 {
		c.Tutor.UserCooldownSeconds = 6
	}
	if c.Tutor.GlobalCooldownSeconds == 0 {
		c.Tutor.GlobalCooldownSeconds = 30
	}
}

// UserCooldown returns the per-user throttle window for backend calls.
func (c Config) UserCooldown() time.Duration {
	return time.Duration(c.Tutor.UserCooldownSeconds) * time.Second
}

// GlobalCooldown returns the process-wide quota circuit-breaker window.
func (c Config) GlobalCooldown() time.Duration {
	return time.Duration(c.Tutor.GlobalCooldownSeconds) * time.Second
}

// GeminiTimeout returns the caller-side timeout for one backend call.
func (c Config) GeminiTimeout() time.Duration {
	return time.Duration(c.Gemini.TimeoutSeconds) * time.Second
}

func envString(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return defaultVal
		}
		n = n*10 + int(r-'0')
	}
	return n
}
