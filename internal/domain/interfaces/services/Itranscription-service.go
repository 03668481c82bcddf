package Iservices

import (
	"context"
	"io"
)

// ITranscriptionService converts recorded audio into text via an
// external speech-to-text collaborator.
type ITranscriptionService interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}
