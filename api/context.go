package api

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const viewerIDKey keyType = "viewerID"

// ctxWithViewerID adds the authenticated viewer's user ID to the context
func ctxWithViewerID(ctx context.Context, viewerID uuid.UUID) context.Context {
	return context.WithValue(ctx, viewerIDKey, viewerID)
}

// ctxViewerID retrieves the viewer's user ID from the context. The
// second return is false for anonymous requests.
func ctxViewerID(ctx context.Context) (uuid.UUID, bool) {
	viewerID, ok := ctx.Value(viewerIDKey).(uuid.UUID)
	return viewerID, ok
}
