package config

const (
	defaultConfigPath     = "~/.config/nimbus/config.toml"
	projectConfigName     = "nimbus.toml"
	historyDBName         = "history.db"
	defaultLogDir         = "~/.local/share/nimbus/logs"
	defaultDataDir        = "~/.local/share/nimbus"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultLLMBaseURL     = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel       = "deepseek/deepseek-chat"
	defaultLLMMaxTokens   = 50
	defaultLLMTemperature = 0.1
	defaultLLMReferer     = "https://github.com/nimbus-cli/nimbus"
	defaultLLMTitle       = "nimbus cloud model classifier"
	defaultMinTextLength  = 3
	defaultMaxTextLength  = 1000
	maxTemperature        = 2.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LLM: LLM{
			BaseURL:     defaultLLMBaseURL,
			Model:       defaultLLMModel,
			MaxTokens:   defaultLLMMaxTokens,
			Temperature: defaultLLMTemperature,
			Referer:     defaultLLMReferer,
			Title:       defaultLLMTitle,
		},
		Input: Input{
			MinLength: defaultMinTextLength,
			MaxLength: defaultMaxTextLength,
		},
		Paths: Paths{
			LogDir:  defaultLogDir,
			DataDir: defaultDataDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
