package domain

import "errors"

var (
	// ErrNoTargets means the registry loaded successfully but holds no targets to poll.
	ErrNoTargets = errors.New("no targets configured")

	// ErrBlockNumberUnavailable means a probe succeeded but result.number was not a hex quantity.
	ErrBlockNumberUnavailable = errors.New("block number unavailable")

	// ErrTargetNotFound means no target with the requested name exists.
	ErrTargetNotFound = errors.New("target not found")

	// ErrNoSnapshot means no poll cycle has completed yet.
	ErrNoSnapshot = errors.New("no snapshot available")
)
