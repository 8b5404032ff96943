package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io"

type ElevenLabsClient struct {
	http    *resty.Client
	APIKey  string
	VoiceId string
	ModelId string
}

type elevenLabsRequest struct {
	Text          string             `json:"text"`
	ModelID       string             `json:"model_id"`
	VoiceSettings map[string]float64 `json:"voice_settings"`
}

func NewElevenLabsClient(apiKey string, voiceId string, modelId string, timeout time.Duration) (*ElevenLabsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if voiceId == "" {
		return nil, fmt.Errorf("voice id is required")
	}
	if modelId == "" {
		modelId = "eleven_multilingual_v2"
	}

	return &ElevenLabsClient{
		http:    resty.New().SetBaseURL(elevenLabsBaseURL).SetTimeout(timeout),
		APIKey:  apiKey,
		VoiceId: voiceId,
		ModelId: modelId,
	}, nil
}

// Synthesize returns MP3 audio for text.
func (client *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := client.http.R().
		SetContext(ctx).
		SetHeader("xi-api-key", client.APIKey).
		SetHeader("Accept", "audio/mpeg").
		SetPathParam("voiceId", client.VoiceId).
		SetQueryParam("output_format", "mp3_44100_128").
		SetBody(elevenLabsRequest{
			Text:    text,
			ModelID: client.ModelId,
			VoiceSettings: map[string]float64{
				"stability":        0.75,
				"similarity_boost": 0.7,
			},
		}).
		Post("/v1/text-to-speech/{voiceId}")
	if err != nil {
		return nil, errors.Wrap(err, "elevenlabs request failed")
	}
	if resp.IsError() {
		return nil, errors.Errorf("elevenlabs returned %s: %s", resp.Status(), truncate(resp.String(), 200))
	}
	if len(resp.Body()) == 0 {
		return nil, ErrEmptyAudio
	}
	return resp.Body(), nil
}
