package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	LLMProviderGoogleAI = "googleai"
	LLMProviderOpenAI   = "openai"

	TTSProviderGoogle     = "google"
	TTSProviderElevenLabs = "elevenlabs"
	TTSProviderNone       = "none"
)

// Config holds all application configuration
type Config struct {
	Host      string
	Port      int
	Env       string // "development" or "production"
	LogLevel  string
	StaticDir string

	// DotEnv is set when a .env file was loaded.
	DotEnv bool

	LLM LLM
	TTS TTS
}

type LLM struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration

	// KeySource names where APIKey came from, empty when no key was found.
	KeySource string
}

type TTS struct {
	Provider     string
	APIKey       string // Google API key; empty means Application Default Credentials
	LanguageCode string
	Voice        string
	SpeakingRate float64
	Timeout      time.Duration

	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	ElevenLabsModelID string
}

// Load reads .env (if present) and the environment. Credentials are looked
// up in the managed secret mount first and the environment second.
func Load() (*Config, error) {
	dotEnv := godotenv.Load() == nil

	secrets := Secrets{
		MountedSecrets{Dir: getEnv("SECRETS_DIR", DefaultSecretsDir)},
		EnvSecrets{},
	}
	cfg, err := load(secrets)
	if err != nil {
		return nil, err
	}
	cfg.DotEnv = dotEnv
	return cfg, nil
}

func load(secrets Secrets) (*Config, error) {
	port, err := getEnvInt("PORT", 8000)
	if err != nil {
		return nil, err
	}
	rate, err := getEnvFloat("TTS_SPEAKING_RATE", 1.0)
	if err != nil {
		return nil, err
	}
	llmTimeout, err := getEnvDuration("LLM_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, err
	}
	ttsTimeout, err := getEnvDuration("TTS_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:      getEnv("HOST", "0.0.0.0"),
		Port:      port,
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		StaticDir: getEnv("STATIC_DIR", "static"),

		LLM: LLM{
			Provider: getEnv("LLM_PROVIDER", LLMProviderGoogleAI),
			Model:    getEnv("LLM_MODEL", "gemini-2.5-flash"),
			BaseURL:  getEnv("LLM_BASE_URL", ""),
			Timeout:  llmTimeout,
		},
		TTS: TTS{
			Provider:          getEnv("TTS_PROVIDER", TTSProviderGoogle),
			LanguageCode:      getEnv("TTS_LANGUAGE", "en-US"),
			Voice:             getEnv("TTS_VOICE", "en-US-Standard-H"),
			SpeakingRate:      rate,
			Timeout:           ttsTimeout,
			ElevenLabsVoiceID: getEnv("ELEVEN_LABS_VOICE_ID", "JBFqnCBsd6RMkjVDRZzb"),
			ElevenLabsModelID: getEnv("ELEVEN_LABS_MODEL_ID", "eleven_multilingual_v2"),
		},
	}

	cfg.LLM.APIKey, cfg.LLM.KeySource = secrets.Resolve("LLM_API_KEY", "GEMINI_API_KEY")
	cfg.TTS.APIKey, _ = secrets.Resolve("TTS_API_KEY")
	cfg.TTS.ElevenLabsAPIKey, _ = secrets.Resolve("ELEVEN_LABS_API_KEY")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case LLMProviderGoogleAI, LLMProviderOpenAI:
	default:
		return errors.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}
	switch c.TTS.Provider {
	case TTSProviderGoogle, TTSProviderElevenLabs, TTSProviderNone:
	default:
		return errors.Errorf("unknown TTS_PROVIDER %q", c.TTS.Provider)
	}
	if c.TTS.SpeakingRate < 0.25 || c.TTS.SpeakingRate > 4.0 {
		return errors.Errorf("TTS_SPEAKING_RATE must be between 0.25 and 4.0, got %v", c.TTS.SpeakingRate)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return i, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}
