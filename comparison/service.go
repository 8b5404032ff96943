package comparison

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/bill-diff/logger"
	"github.com/mrsingh-rishi/bill-diff/prompt"
	"github.com/mrsingh-rishi/bill-diff/speech"
)

var errEmptySummary = errors.New("LLM returned empty response")

// Service compares two bill versions. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	summarizer  Summarizer
	synthesizer Synthesizer
}

// NewService wires the collaborators. synthesizer may be nil, in which case
// CompareAndSpeak never produces audio.
func NewService(summarizer Summarizer, synthesizer Synthesizer) *Service {
	return &Service{
		summarizer:  summarizer,
		synthesizer: synthesizer,
	}
}

// Compare returns a plain-language summary of the differences between the
// two bills. The only error returned is ErrValidation; collaborator
// failures are reported inside the Result.
func (s *Service) Compare(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	logger.Info().
		Int("bill1_len", len(req.Bill1Text)).
		Int("bill2_len", len(req.Bill2Text)).
		Msg("processing bill comparison request")

	summary, err := s.summarize(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("bill comparison failed")
		return failed(err), nil
	}
	return Result{Summary: summary, Success: true}, nil
}

// CompareAndSpeak is Compare plus speech audio of the summary. Speech
// failures are logged and leave AudioBase64 nil; they never fail the result.
func (s *Service) CompareAndSpeak(ctx context.Context, req Request) (Result, error) {
	res, err := s.Compare(ctx, req)
	if err != nil || !res.Success {
		return res, err
	}
	res.AudioBase64 = s.speak(ctx, res.Summary)
	return res, nil
}

func (s *Service) summarize(ctx context.Context, req Request) (summary string, err error) {
	if s.summarizer == nil {
		return "", errors.New("no LLM configured")
	}

	// A panicking collaborator must not take the process down.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("LLM client panicked: %v", r)
		}
	}()

	start := time.Now()
	summary, err = s.summarizer.Summarize(ctx, prompt.Build(req.Bill1Text, req.Bill2Text))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(summary) == "" {
		return "", errEmptySummary
	}
	logger.Info().Dur("took", time.Since(start)).Int("summary_len", len(summary)).Msg("summary generated")
	return summary, nil
}

func (s *Service) speak(ctx context.Context, summary string) (audio *string) {
	if s.synthesizer == nil {
		logger.Debug().Msg("speech disabled, returning summary without audio")
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("speech synthesis panicked")
			audio = nil
		}
	}()

	start := time.Now()
	raw, err := s.synthesizer.Synthesize(ctx, speech.Normalize(summary))
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate speech, returning summary only")
		return nil
	}
	if len(raw) == 0 {
		logger.Error().Msg("speech synthesis returned no audio, returning summary only")
		return nil
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	logger.Info().Dur("took", time.Since(start)).Int("audio_bytes", len(raw)).Msg("speech generated")
	return &encoded
}
