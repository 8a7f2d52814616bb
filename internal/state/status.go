package state

import "time"

// Phase is the lifecycle stage of one query.
type Phase int

const (
	Uninitialized Phase = iota
	Loading
	Success
	Error
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "uninitialized"
	}
}

// Status is the observable state of one query key. Data is set only in the
// Success phase and Err only in the Error phase. Data values are shared
// between readers and must be treated as immutable.
type Status struct {
	Phase     Phase
	Data      any
	Err       error
	UpdatedAt time.Time
}

// Pending reports whether the query has not produced a result yet.
func (s Status) Pending() bool {
	return s.Phase == Uninitialized || s.Phase == Loading
}

// Terminal reports whether the query finished, successfully or not.
func (s Status) Terminal() bool {
	return s.Phase == Success || s.Phase == Error
}
