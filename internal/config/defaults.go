package config

const (
	defaultBind           = "127.0.0.1:3000"
	defaultProvider       = ProviderOpenAI
	defaultLLMBaseURL     = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel       = "gpt-3.5-turbo"
	defaultLLMReferer     = "https://github.com/NAG1RA/tumo-ai-teens-hackathon"
	defaultLLMTitle       = "StudyLab"
	defaultLLMTimeout     = 60
	defaultLLMTemperature = 0.7
	defaultGeminiModel    = "gemini-1.5-flash"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

const (
	// ProviderOpenAI selects the chat-completions client.
	ProviderOpenAI = "openai"
	// ProviderGemini selects the Gemini SDK client.
	ProviderGemini = "gemini"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
		},
		LLM: LLM{
			Provider:       defaultProvider,
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeout,
			Temperature:    defaultLLMTemperature,
		},
		Gemini: Gemini{
			Model: defaultGeminiModel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
