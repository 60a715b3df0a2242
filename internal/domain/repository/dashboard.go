package repository

import (
	"context"
	"time"

	"FinDash/internal/domain/models"
)

// SnapshotSource retrieves the current dashboard snapshot from the status service.
type SnapshotSource interface {
	Fetch(ctx context.Context) (*models.Snapshot, error)
}

// Display receives region writes. Render must not block for long; it is called
// from the dashboard event loop.
type Display interface {
	Render(region models.Region, text string)
}

// DashboardMetrics records dashboard activity.
type DashboardMetrics interface {
	RecordFetch(result string, d time.Duration)
	RecordTick(remaining int)
	RecordStale()
	RecordDisplayDrop(sink string)
	RecordDisplayError(sink string)
}
