package preview

import "errors"

var (
	// ErrAlreadyArmed is returned by HoverIntent.Arm while a commit is still pending.
	ErrAlreadyArmed = errors.New("hover intent already armed")

	// ErrNegativePosition is returned when a playback position below zero is recorded.
	ErrNegativePosition = errors.New("negative playback position")

	// ErrInvalidPosition is returned when a NaN or infinite playback position is recorded.
	ErrInvalidPosition = errors.New("non-finite playback position")

	// ErrNoBackend is returned when an interactive session tries to play without a media backend.
	ErrNoBackend = errors.New("no media backend")

	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("preview session closed")
)
