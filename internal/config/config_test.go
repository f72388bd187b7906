package config

import (
	"testing"
	"time"
)

func TestLoadFromBytes(t *testing.T) {
	t.Setenv("TEST_LINGOBOT_KEY", "secret-key")

	yaml := `
port: 9000
app:
  name: testbot
  version: 2.0.0
gemini:
  apiKey: ${TEST_LINGOBOT_KEY}
  model: gemini-test
tutor:
  userCooldownSeconds: 10
`
	c, err := LoadFromBytes([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if c.Port != 9000 {
		t.Errorf("Port = %d, want 9000", c.Port)
	}
	if c.App.Name != "testbot" || c.App.Version != "2.0.0" {
		t.Errorf("App = %+v", c.App)
	}
	if c.Gemini.APIKey != "secret-key" {
		t.Errorf("APIKey = %q, env expansion failed", c.Gemini.APIKey)
	}
	if c.Gemini.Model != "gemini-test" {
		t.Errorf("Model = %q", c.Gemini.Model)
	}
	if c.Tutor.UserCooldownSeconds != 10 {
		t.Errorf("UserCooldownSeconds = %d, want 10", c.Tutor.UserCooldownSeconds)
	}
	// Unset fields fall back to defaults.
	if c.Tutor.GlobalCooldownSeconds != 30 {
		t.Errorf("GlobalCooldownSeconds = %d, want default 30", c.Tutor.GlobalCooldownSeconds)
	}
	if c.Tutor.DefaultLanguage != "pt" {
		t.Errorf("DefaultLanguage = %q, want default pt", c.Tutor.DefaultLanguage)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("PORT", "")
	c, err := Load("/does/not/exist.yaml")
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if c.Port != 8000 {
		t.Errorf("Port = %d, want default 8000", c.Port)
	}
	if c.App.Name != "lingobot" {
		t.Errorf("App.Name = %q", c.App.Name)
	}
}

func TestPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "8123")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Port != 8123 {
		t.Errorf("Port = %d, want 8123", c.Port)
	}
}

func TestDurationAccessors(t *testing.T) {
	var c Config
	c.Tutor.UserCooldownSeconds = 6
	c.Tutor.GlobalCooldownSeconds = 30
	c.Gemini.TimeoutSeconds = 45

	if c.UserCooldown() != 6*time.Second {
		t.Errorf("UserCooldown = %v", c.UserCooldown())
	}
	if c.GlobalCooldown() != 30*time.Second {
		t.Errorf("GlobalCooldown = %v", c.GlobalCooldown())
	}
	if c.GeminiTimeout() != 45*time.Second {
		t.Errorf("GeminiTimeout = %v", c.GeminiTimeout())
	}
}
