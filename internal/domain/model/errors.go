package model

import "errors"

// Sentinel validation errors.
var (
	ErrInvalidProject = errors.New("invalid project")
	ErrInvalidProfile = errors.New("invalid profile")
)
