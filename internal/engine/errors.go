package engine

import "errors"

// ErrLoopClosed is returned when a task is submitted to a Loop that has
// stopped running.
var ErrLoopClosed = errors.New("engine: loop closed")
