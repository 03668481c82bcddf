package provider

import (
	"context"
	"io"
)

// IRecordingStorage stores uploaded audio objects. The engine never
// touches the bytes again; it only keeps the storage key.
type IRecordingStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
}
