package domain

import "time"

// JobKind distinguishes the two export flavours submitted per extraction.
type JobKind string

const (
	// JobKindBoundary is the watershed boundary table export (shapefile).
	JobKindBoundary JobKind = "boundary"
	// JobKindRaster is the clipped water class image export (GeoTIFF).
	JobKindRaster JobKind = "raster"
)

// JobState mirrors the Earth Engine operation lifecycle.
type JobState string

const (
	// JobStatePending means the export has been submitted but not started.
	JobStatePending JobState = "PENDING"
	// JobStateRunning means the export is being processed by the service.
	JobStateRunning JobState = "RUNNING"
	// JobStateSucceeded means the export finished and the file is in Drive.
	JobStateSucceeded JobState = "SUCCEEDED"
	// JobStateFailed means the export failed; Error carries the reason.
	JobStateFailed JobState = "FAILED"
	// JobStateCancelled means the export was cancelled on the service side.
	JobStateCancelled JobState = "CANCELLED"
)

// Terminal reports whether the state can no longer change.
func (s JobState) Terminal() bool {
	switch s {
	case JobStateSucceeded, JobStateFailed, JobStateCancelled:
		return true
	default:
		return false
	}
}

// ParseJobState maps a service-reported state string onto a JobState.
// Unrecognised states are treated as pending so that a later poll can
// settle them.
func ParseJobState(s string) JobState {
	switch JobState(s) {
	case JobStatePending, JobStateRunning, JobStateSucceeded, JobStateFailed, JobStateCancelled:
		return JobState(s)
	default:
		return JobStatePending
	}
}

// ExportJob is the local record of a submitted Earth Engine export.
// The operation name is the handle used to poll the service for progress;
// everything else is bookkeeping for the status and fetch commands.
type ExportJob struct {
	ID          string
	Operation   string
	Kind        JobKind
	Description string
	State       JobState
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
