package tts

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/bill-diff/config"
)

// ErrEmptyAudio is returned when a provider answers successfully but with
// no audio payload.
var ErrEmptyAudio = errors.New("speech synthesis returned no audio")

// ErrMissingElevenLabsKey is returned by New when elevenlabs is selected
// without a key; callers run without audio.
var ErrMissingElevenLabsKey = errors.New("ELEVEN_LABS_API_KEY not configured")

// Synthesizer turns already-normalized text into encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// New builds the synthesizer selected by cfg.Provider. It returns nil, nil
// when speech is disabled.
func New(ctx context.Context, cfg config.TTS) (Synthesizer, error) {
	switch cfg.Provider {
	case config.TTSProviderNone:
		return nil, nil
	case config.TTSProviderGoogle:
		return NewGoogleClient(ctx, GoogleOptions{
			APIKey:       cfg.APIKey,
			LanguageCode: cfg.LanguageCode,
			VoiceName:    cfg.Voice,
			SpeakingRate: cfg.SpeakingRate,
			Timeout:      cfg.Timeout,
		})
	case config.TTSProviderElevenLabs:
		if cfg.ElevenLabsAPIKey == "" {
			return nil, ErrMissingElevenLabsKey
		}
		return NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID, cfg.ElevenLabsModelID, cfg.Timeout)
	default:
		return nil, errors.Errorf("unknown TTS provider %q", cfg.Provider)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
