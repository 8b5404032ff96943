package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleBaseURL = "https://texttospeech.googleapis.com"
	googleScope   = "https://www.googleapis.com/auth/cloud-platform"
)

// GoogleOptions configures a GoogleClient. Exactly one of APIKey and
// TokenSource is used; with neither set, Application Default Credentials
// are looked up.
type GoogleOptions struct {
	BaseURL      string
	APIKey       string
	TokenSource  oauth2.TokenSource
	LanguageCode string
	VoiceName    string
	SpeakingRate float64
	Timeout      time.Duration
}

// GoogleClient calls the Cloud Text-to-Speech REST API and returns MP3 audio.
type GoogleClient struct {
	http         *resty.Client
	apiKey       string
	tokenSource  oauth2.TokenSource
	languageCode string
	voiceName    string
	speakingRate float64
}

type googleSynthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name,omitempty"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate,omitempty"`
	} `json:"audioConfig"`
}

type googleSynthesizeResponse struct {
	// base64 in JSON, decoded by encoding/json
	AudioContent []byte `json:"audioContent"`
}

type googleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func NewGoogleClient(ctx context.Context, opts GoogleOptions) (*GoogleClient, error) {
	if opts.LanguageCode == "" {
		return nil, fmt.Errorf("language code is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = googleBaseURL
	}
	if opts.SpeakingRate == 0 {
		opts.SpeakingRate = 1.0
	}

	ts := opts.TokenSource
	if opts.APIKey == "" && ts == nil {
		var err error
		ts, err = google.DefaultTokenSource(ctx, googleScope)
		if err != nil {
			return nil, errors.Wrap(err, "no TTS API key and no application default credentials")
		}
	}

	return &GoogleClient{
		http:         resty.New().SetBaseURL(opts.BaseURL).SetTimeout(opts.Timeout),
		apiKey:       opts.APIKey,
		tokenSource:  ts,
		languageCode: opts.LanguageCode,
		voiceName:    opts.VoiceName,
		speakingRate: opts.SpeakingRate,
	}, nil
}

// Synthesize returns MP3 audio for text.
func (c *GoogleClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var body googleSynthesizeRequest
	body.Input.Text = text
	body.Voice.LanguageCode = c.languageCode
	body.Voice.Name = c.voiceName
	body.AudioConfig.AudioEncoding = "MP3"
	body.AudioConfig.SpeakingRate = c.speakingRate

	var result googleSynthesizeResponse
	var apiErr googleErrorResponse
	req := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr)

	if c.apiKey != "" {
		req.SetQueryParam("key", c.apiKey)
	} else {
		tok, err := c.tokenSource.Token()
		if err != nil {
			return nil, errors.Wrap(err, "fetch google access token")
		}
		req.SetAuthToken(tok.AccessToken)
	}

	resp, err := req.Post("/v1/text:synthesize")
	if err != nil {
		return nil, errors.Wrap(err, "google tts request failed")
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = truncate(resp.String(), 200)
		}
		return nil, errors.Errorf("google tts returned %s: %s", resp.Status(), msg)
	}
	if len(result.AudioContent) == 0 {
		return nil, ErrEmptyAudio
	}
	return result.AudioContent, nil
}
