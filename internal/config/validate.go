package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Provider credentials are not
// required here; commands that call a model check them with RequireProvider.
func (c *Config) Validate() error {
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider: unsupported value %q (want %q or %q)", c.LLM.Provider, ProviderOpenAI, ProviderGemini)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// RequireProvider reports whether the named provider (or the default one when
// name is empty) has the credentials it needs.
func (c *Config) RequireProvider(name string) error {
	if name == "" {
		name = c.LLM.Provider
	}
	switch name {
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return errors.New("llm.api_key is required. Set OPENAI_API_KEY or OPENROUTER_API_KEY, or edit the config (create with 'studylab config init')")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return errors.New("gemini.api_key is required. Set GEMINI_API_KEY or edit the config (create with 'studylab config init')")
		}
	default:
		return fmt.Errorf("unknown provider %q", name)
	}
	return nil
}

// ConfiguredProviders lists providers whose credentials are present, default first.
func (c *Config) ConfiguredProviders() []string {
	var out []string
	for _, name := range []string{c.LLM.Provider, ProviderOpenAI, ProviderGemini} {
		if c.RequireProvider(name) != nil {
			continue
		}
		dup := false
		for _, existing := range out {
			if existing == name {
				dup = true
			}
		}
		if !dup {
			out = append(out, name)
		}
	}
	return out
}
