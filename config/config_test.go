package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsingh-rishi/bill-diff/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "HOST", "ENV", "LOG_LEVEL", "STATIC_DIR",
		"LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "LLM_API_KEY", "GEMINI_API_KEY", "LLM_TIMEOUT",
		"TTS_PROVIDER", "TTS_API_KEY", "TTS_LANGUAGE", "TTS_VOICE", "TTS_SPEAKING_RATE", "TTS_TIMEOUT",
		"ELEVEN_LABS_API_KEY", "ELEVEN_LABS_VOICE_ID", "ELEVEN_LABS_MODEL_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load(Secrets{EnvSecrets{}})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, LLMProviderGoogleAI, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Empty(t, cfg.LLM.KeySource)
	assert.Equal(t, TTSProviderGoogle, cfg.TTS.Provider)
	assert.Equal(t, "en-US", cfg.TTS.LanguageCode)
	assert.Equal(t, "en-US-Standard-H", cfg.TTS.Voice)
	assert.Equal(t, 1.0, cfg.TTS.SpeakingRate)
	assert.Equal(t, 30*time.Second, cfg.TTS.Timeout)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("TTS_SPEAKING_RATE", "1.25")

	cfg, err := load(Secrets{EnvSecrets{}})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, LLMProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gem-key", cfg.LLM.APIKey)
	assert.Equal(t, "env", cfg.LLM.KeySource)
	assert.Equal(t, 1.25, cfg.TTS.SpeakingRate)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "eighty"},
		{"TTS_SPEAKING_RATE", "fast"},
		{"TTS_SPEAKING_RATE", "9"},
		{"TTS_TIMEOUT", "soon"},
		{"LLM_PROVIDER", "parrot"},
		{"TTS_PROVIDER", "megaphone"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := load(Secrets{EnvSecrets{}})
			assert.Error(t, err)
		})
	}
}

func TestLoad_ElevenLabsWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("TTS_PROVIDER", "elevenlabs")

	cfg, err := load(Secrets{EnvSecrets{}})
	require.NoError(t, err)
	assert.Equal(t, TTSProviderElevenLabs, cfg.TTS.Provider)
	assert.Empty(t, cfg.TTS.ElevenLabsAPIKey)
}

func TestLoad_DoesNotLog(t *testing.T) {
	clearEnv(t)
	var buf bytes.Buffer
	logger.SetOutput(&buf, "debug")
	t.Cleanup(func() { logger.SetOutput(os.Stdout, "info") })

	_, err := load(Secrets{EnvSecrets{}})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestSecrets_MountTakesPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "GEMINI_API_KEY"), []byte("mounted-key\n"), 0o600))
	t.Setenv("GEMINI_API_KEY", "env-key")

	secrets := Secrets{MountedSecrets{Dir: dir}, EnvSecrets{}}
	value, source := secrets.Resolve("GEMINI_API_KEY")
	assert.Equal(t, "mounted-key", value)
	assert.Equal(t, "secret-mount", source)

	cfg, err := load(secrets)
	require.NoError(t, err)
	assert.Equal(t, "mounted-key", cfg.LLM.APIKey)
	assert.Equal(t, "secret-mount", cfg.LLM.KeySource)
}

func TestSecrets_FallsBackToEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TTS_API_KEY", "env-key")

	value, source := Secrets{MountedSecrets{Dir: t.TempDir()}, EnvSecrets{}}.Resolve("TTS_API_KEY")
	assert.Equal(t, "env-key", value)
	assert.Equal(t, "env", source)
}

func TestSecrets_KeyOrder(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "primary")
	t.Setenv("GEMINI_API_KEY", "fallback")

	value, _ := Secrets{EnvSecrets{}}.Resolve("LLM_API_KEY", "GEMINI_API_KEY")
	assert.Equal(t, "primary", value)

	value, source := Secrets{EnvSecrets{}}.Resolve("MISSING")
	assert.Empty(t, value)
	assert.Empty(t, source)
}
