package models

/*
Status constants for analysis records and background jobs.
Centralizing these avoids magic strings in stores and handlers.
*/

// Analysis status constants
const (
	AnalysisStatusSucceeded = "succeeded"
	AnalysisStatusFailed    = "failed"
)

// Job status constants
const (
	JobStatusEnqueued = "enqueued"
)
