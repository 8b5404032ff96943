package comparison

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrValidation marks requests rejected before any collaborator is called.
var ErrValidation = errors.New("Both bill texts must be provided")

// Request carries the two bill versions to compare.
type Request struct {
	Bill1Text string `json:"bill1_text"`
	Bill2Text string `json:"bill2_text"`
}

// Validate checks that both texts are non-blank.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Bill1Text) == "" || strings.TrimSpace(r.Bill2Text) == "" {
		return ErrValidation
	}
	return nil
}

// Result is always well formed: on failure Summary is empty and Error is
// set, on success Summary is non-empty. AudioBase64 is nil whenever no
// audio was produced, including on success.
type Result struct {
	Summary     string
	AudioBase64 *string
	Success     bool
	Error       string
}

func failed(err error) Result {
	return Result{Error: "Failed to process request: " + err.Error()}
}
