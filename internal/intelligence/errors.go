package intelligence

import "errors"

var (
	// ErrNoPendingWork indicates there is nothing to schedule.
	ErrNoPendingWork = errors.New("no pending assignments to schedule")

	// ErrMalformedResponse indicates the completion output did not parse as
	// a study plan. Retrying usually helps since model output varies.
	ErrMalformedResponse = errors.New("malformed study plan response")
)
