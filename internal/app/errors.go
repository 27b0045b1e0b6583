package service

import "errors"

// ErrUsageNotConfigured is returned by Usage when no upstream was provided.
var ErrUsageNotConfigured = errors.New("usage upstream not configured")
