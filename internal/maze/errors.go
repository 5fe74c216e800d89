package maze

import "errors"

// Configuration errors. A run cannot start when level setup fails with one
// of these; they are reported to the caller, never clamped away.
var (
	ErrScreenTooNarrow = errors.New("screen too narrow for gap and margins")
	ErrEmptyPalette    = errors.New("floor color palette is empty")
	ErrNoFloors        = errors.New("floor count must be positive")
	ErrInvalidStep     = errors.New("gap grid step must be positive")
	ErrInvalidSpacing  = errors.New("floor spacing must be positive")
	ErrInvalidGap      = errors.New("gap width must be positive")
	ErrGapOutOfRange   = errors.New("variant placed gap outside the valid range")
)

// Lifecycle errors.
var (
	ErrAlreadyRunning = errors.New("run already in progress")
	ErrLoopStuck      = errors.New("simulation loop did not exit")
)
