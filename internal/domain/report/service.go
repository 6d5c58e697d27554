package report

import (
	"context"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

// Service renders a resolved snapshot into downloadable exports
type Service interface {
	// ExportSnapshot flattens the snapshot to one row per department and per
	// user, encoded in the requested format
	ExportSnapshot(ctx context.Context, snapshot *analytics.Snapshot, format Format) (*Export, error)
}
