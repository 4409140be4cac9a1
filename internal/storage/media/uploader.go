// Package media uploads image payloads to the hosting service and resolves
// their public URLs.
package media

import (
	"context"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/storage/media")

// Uploader stores an image and returns its public URL. A failed upload must
// surface before any catalog mutation happens.
type Uploader interface {
	Upload(ctx context.Context, image []byte) (string, error)
}
