package model

import "time"

// Config is the complete veracity configuration.
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	OCR    OCRConfig    `yaml:"ocr"`
	LLM    LLMConfig    `yaml:"llm"`
	Server ServerConfig `yaml:"server"`
}

// HTTPConfig controls URL fetching and extraction.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	MaxTextChars  int           `yaml:"max_text_chars"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// OCRConfig controls image text extraction.
type OCRConfig struct {
	// Languages are tesseract language codes loaded simultaneously; the
	// document's language is unknown before recognition runs.
	Languages     []string `yaml:"languages"`
	MaxImageBytes int64    `yaml:"max_image_bytes"`
}

// LLMConfig controls the reasoning-service client.
type LLMConfig struct {
	BaseURL           string        `yaml:"base_url"`
	APIKey            string        `yaml:"-"`
	Model             string        `yaml:"model"`
	Timeout           time.Duration `yaml:"timeout"`
	Temperature       float32       `yaml:"temperature"`
	MaxTokens         int           `yaml:"max_tokens"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

// ServerConfig controls the HTTP shell.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DefaultConfig returns the built-in defaults. The fetch timeout and text
// cap bound downstream reasoning-service cost.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       8 * time.Second,
			UserAgent:     "Mozilla/5.0",
			MaxBodyBytes:  2_000_000,
			MaxTextChars:  4000,
			RespectRobots: false,
		},
		OCR: OCRConfig{
			Languages:     []string{"eng", "tam", "hin", "tel", "kan", "mal"},
			MaxImageBytes: 10_000_000,
		},
		LLM: LLMConfig{
			BaseURL:           "https://api.groq.com/openai/v1",
			Model:             "llama-3.1-8b-instant",
			Timeout:           30 * time.Second,
			Temperature:       0.1,
			MaxTokens:         1000,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}
