package transaction

import "errors"

var (
	ErrAmountNotFound = errors.New("amount not found")
	ErrEmptyText      = errors.New("empty text")
	ErrTranscription  = errors.New("transcription failed")
	ErrInvalidPeriod  = errors.New("invalid period")
)
