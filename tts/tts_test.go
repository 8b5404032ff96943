package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/mrsingh-rishi/bill-diff/config"
)

func TestGoogleClient_Synthesize_APIKey(t *testing.T) {
	audio := []byte("ID3-fake-mp3")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text:synthesize", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "House Bill 1 passed", body["input"]["text"])
		assert.Equal(t, "en-US", body["voice"]["languageCode"])
		assert.Equal(t, "en-US-Standard-H", body["voice"]["name"])
		assert.Equal(t, "MP3", body["audioConfig"]["audioEncoding"])
		assert.Equal(t, 1.0, body["audioConfig"]["speakingRate"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString(audio),
		})
	}))
	defer srv.Close()

	c, err := NewGoogleClient(context.Background(), GoogleOptions{
		BaseURL:      srv.URL,
		APIKey:       "secret",
		LanguageCode: "en-US",
		VoiceName:    "en-US-Standard-H",
		Timeout:      time.Second,
	})
	require.NoError(t, err)

	got, err := c.Synthesize(context.Background(), "House Bill 1 passed")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestGoogleClient_Synthesize_TokenSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"audioContent":"bXAz"}`))
	}))
	defer srv.Close()

	c, err := NewGoogleClient(context.Background(), GoogleOptions{
		BaseURL:      srv.URL,
		TokenSource:  oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "access-token"}),
		LanguageCode: "en-US",
	})
	require.NoError(t, err)

	got, err := c.Synthesize(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), got)
}

func TestGoogleClient_Synthesize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`, "API key not valid"},
		{"empty audio", http.StatusOK, `{"audioContent":""}`, ErrEmptyAudio.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewGoogleClient(context.Background(), GoogleOptions{BaseURL: srv.URL, APIKey: "k", LanguageCode: "en-US"})
			require.NoError(t, err)

			_, err = c.Synthesize(context.Background(), "hello")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewGoogleClient_RequiresLanguage(t *testing.T) {
	_, err := NewGoogleClient(context.Background(), GoogleOptions{APIKey: "k"})
	assert.Error(t, err)
}

func TestElevenLabsClient_Synthesize(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x90, 0x44}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "mp3_44100_128", r.URL.Query().Get("output_format"))
		assert.Equal(t, "el-key", r.Header.Get("xi-api-key"))

		var body elevenLabsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Senate Bill 7", body.Text)
		assert.Equal(t, "eleven_multilingual_v2", body.ModelID)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	c, err := NewElevenLabsClient("el-key", "voice-1", "", time.Second)
	require.NoError(t, err)
	c.http.SetBaseURL(srv.URL)

	got, err := c.Synthesize(context.Background(), "Senate Bill 7")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestElevenLabsClient_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer srv.Close()

	c, err := NewElevenLabsClient("el-key", "voice-1", "m", time.Second)
	require.NoError(t, err)
	c.http.SetBaseURL(srv.URL)

	_, err = c.Synthesize(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNewElevenLabsClient_Validation(t *testing.T) {
	_, err := NewElevenLabsClient("", "v", "m", 0)
	assert.Error(t, err)
	_, err = NewElevenLabsClient("k", "", "m", 0)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	s, err := New(context.Background(), config.TTS{Provider: config.TTSProviderNone})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = New(context.Background(), config.TTS{Provider: config.TTSProviderGoogle, APIKey: "k", LanguageCode: "en-US"})
	require.NoError(t, err)
	assert.IsType(t, &GoogleClient{}, s)

	s, err = New(context.Background(), config.TTS{Provider: config.TTSProviderElevenLabs, ElevenLabsAPIKey: "k", ElevenLabsVoiceID: "v"})
	require.NoError(t, err)
	assert.IsType(t, &ElevenLabsClient{}, s)

	s, err = New(context.Background(), config.TTS{Provider: config.TTSProviderElevenLabs, ElevenLabsVoiceID: "v"})
	assert.ErrorIs(t, err, ErrMissingElevenLabsKey)
	assert.Nil(t, s)

	_, err = New(context.Background(), config.TTS{Provider: "megaphone"})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
}
