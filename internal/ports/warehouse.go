package ports

import (
	"context"
	"time"
)

// RunSummary is one well of a sequencing run as seen by the warehouse.
type RunSummary struct {
	RunName      string
	WellLabel    string
	WellComplete time.Time
}

// WellMetrics is the per-well instrument metrics subset served over HTTP.
type WellMetrics struct {
	WellStatus         string
	WellStart          *time.Time
	WellComplete       *time.Time
	InstrumentName     string
	InstrumentType     string
	MovieMinutes       *int64
	CCSExecutionMode   string
	PolymeraseNumReads *int64
	HifiNumReads       *int64
}

// RunDetail joins run info with metrics and LIMS study/sample identity.
type RunDetail struct {
	RunName   string
	WellLabel string
	Metrics   WellMetrics
	StudyID   string
	SampleID  string
}

// InboxEntry groups the completed, QC-ready wells of one run.
type InboxEntry struct {
	RunName    string
	WellLabels []string
}

// WarehouseReader is the read-only view of the externally owned
// run-metrics warehouse. Implementations never write.
type WarehouseReader interface {
	// ListRecentRuns returns up to limit wells ordered by completion
	// time, most recent first.
	ListRecentRuns(ctx context.Context, limit int) ([]RunSummary, error)

	// GetRun looks a well up by its composite key. Absent wells yield
	// (nil, nil), not an error.
	GetRun(ctx context.Context, runName, wellLabel string) (*RunSummary, error)

	// GetRunDetail is GetRun plus metrics and study/sample linkage.
	GetRunDetail(ctx context.Context, runName, wellLabel string) (*RunDetail, error)

	// Inbox returns runs whose wells completed within the trailing
	// number of weeks and passed the readiness filter, grouped by run
	// with well labels ordered.
	Inbox(ctx context.Context, weeks int) ([]InboxEntry, error)
}
