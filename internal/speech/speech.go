// Package speech turns voice notes into text.
package speech

import (
	"context"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrDisabled   = errors.New("speech recognition is disabled")
	ErrEmptyAudio = errors.New("empty audio")
)

// Nop is used when no provider is configured.
type Nop struct{}

func (Nop) Transcribe(context.Context, []byte, string) (string, error) {
	return "", ErrDisabled
}

// DetectMIME sniffs the media type of audio, without parameters.
func DetectMIME(audio []byte) string {
	mt, _, _ := strings.Cut(mimetype.Detect(audio).String(), ";")
	return mt
}
