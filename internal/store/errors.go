package store

import "errors"

var (
	ErrNotFound = errors.New("store: resource not found")
	// ErrDisabled is returned by the no-op store when no database is configured.
	ErrDisabled = errors.New("store: history is disabled (database.dsn is empty)")
	// ErrQueueDisabled is returned when background jobs are requested without Redis.
	ErrQueueDisabled = errors.New("store: job queue is disabled (redis.address is empty)")
)
