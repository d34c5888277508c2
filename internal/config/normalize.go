package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables honoured as fallbacks beneath the TOML file.
const (
	EnvAPIKey        = "OPENROUTER_API_KEY"
	EnvAPIURL        = "OPENROUTER_API_URL"
	EnvModel         = "DEEPSEEK_MODEL"
	EnvMaxTokens     = "MAX_TOKENS"
	EnvTemperature   = "TEMPERATURE"
	EnvMinTextLength = "MIN_TEXT_LENGTH"
	EnvMaxTextLength = "MAX_TEXT_LENGTH"
)

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnvironment(lookup lookupFunc) error {
	if value, ok := lookupTrimmed(lookup, EnvAPIKey); ok {
		c.LLM.APIKey = value
	}
	if value, ok := lookupTrimmed(lookup, EnvAPIURL); ok {
		c.LLM.BaseURL = value
	}
	if value, ok := lookupTrimmed(lookup, EnvModel); ok {
		c.LLM.Model = value
	}
	if err := envInt(lookup, EnvMaxTokens, &c.LLM.MaxTokens); err != nil {
		return err
	}
	if value, ok := lookupTrimmed(lookup, EnvTemperature); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q", EnvTemperature, value)
		}
		c.LLM.Temperature = parsed
	}
	if err := envInt(lookup, EnvMinTextLength, &c.Input.MinLength); err != nil {
		return err
	}
	if err := envInt(lookup, EnvMaxTextLength, &c.Input.MaxLength); err != nil {
		return err
	}
	return nil
}

func lookupTrimmed(lookup lookupFunc, key string) (string, bool) {
	value, ok := lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func envInt(lookup lookupFunc, key string, target *int) error {
	value, ok := lookupTrimmed(lookup, key)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", key, value)
	}
	*target = parsed
	return nil
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.TimeoutSeconds < 0 {
		c.LLM.TimeoutSeconds = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
