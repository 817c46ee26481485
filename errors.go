package stretch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid stretch configuration")

	// ErrSamePath indicates the output path names the input file.
	ErrSamePath = errors.New("can't overwrite input file (specify different/new output file name)")

	// ErrOutputExists indicates the output file exists and overwriting was not allowed.
	ErrOutputExists = errors.New("output file exists (use -y to overwrite)")

	// ErrEngineInit indicates the stretch engine could not be created.
	ErrEngineInit = errors.New("can't initialize stretcher")
)

// CapacityError reports a stretch or flush call that generated more frames
// than the capacity planned for the session. It means the planner and the
// engine disagree, never a problem with the input.
type CapacityError struct {
	Op        string // "stretch" or "flush"
	Generated int
	Capacity  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: generated samples (%d) exceeded expected (%d)", e.Op, e.Generated, e.Capacity)
}
