package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAnalysis is returned when the profile analysis stage fails.
	ErrAnalysis = errors.New("profile analysis failed")

	// ErrResearch is returned when the topic research stage fails.
	ErrResearch = errors.New("topic research failed")

	// ErrGeneration is returned when the content creation stage fails.
	ErrGeneration = errors.New("post generation failed")

	// ErrReview is returned when the content review stage fails.
	ErrReview = errors.New("post review failed")

	// ErrScheduling is returned when the scheduling sink rejects a post.
	ErrScheduling = errors.New("scheduling failed")

	// ErrHistoryIO is returned when the history store cannot be read or written.
	ErrHistoryIO = errors.New("history io failed")

	// ErrPrecondition is returned when an operation is invoked out of sequence.
	ErrPrecondition = errors.New("precondition not met")

	// ErrIndexOutOfRange is returned for history indices outside the stored sequence.
	ErrIndexOutOfRange = errors.New("history index out of range")
)

// InconsistencyError reports that a post reached the scheduling sink but its
// history entry could not be written.
type InconsistencyError struct {
	Op  string
	Err error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("%s: post was scheduled but not logged: %v", e.Op, e.Err)
}

func (e *InconsistencyError) Unwrap() error {
	return e.Err
}

// RejectedError is returned when scheduling is attempted on a draft the
// reviewer rejected.
type RejectedError struct {
	Suggestion string
}

func (e *RejectedError) Error() string {
	if e.Suggestion == "" {
		return "post flagged by reviewer"
	}
	return fmt.Sprintf("post flagged by reviewer: %s", e.Suggestion)
}

func (e *RejectedError) Unwrap() error {
	return ErrPrecondition
}
