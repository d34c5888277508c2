package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. The API key is deliberately
// not checked here; see HasAPIKey.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLLM() error {
	parsed, err := url.Parse(c.LLM.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("llm.base_url must be an absolute URL, got %q", c.LLM.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("llm.base_url must use http or https, got %q", parsed.Scheme)
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.max_tokens must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > maxTemperature {
		return fmt.Errorf("llm.temperature must be between 0 and %.0f", maxTemperature)
	}
	return nil
}

func (c *Config) validateInput() error {
	if c.Input.MinLength <= 0 {
		return errors.New("input.min_length must be positive")
	}
	if c.Input.MaxLength < c.Input.MinLength {
		return errors.New("input.max_length must be greater than or equal to input.min_length")
	}
	return nil
}
