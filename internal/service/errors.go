package service

import (
	"errors"

	"github.com/alexanderramin/studybuddy/internal/intelligence"
	"github.com/alexanderramin/studybuddy/internal/repository"
)

var (
	// ErrServiceUnavailable indicates no completion client is configured.
	ErrServiceUnavailable = errors.New("study plan generation is not configured")

	// ErrNoPendingWork indicates the owner has no pending assignments.
	ErrNoPendingWork = intelligence.ErrNoPendingWork

	// ErrUpstream indicates the completion call failed or timed out.
	ErrUpstream = errors.New("study plan service failed")

	// ErrMalformedResponse indicates the completion output could not be
	// parsed. Retrying usually helps.
	ErrMalformedResponse = intelligence.ErrMalformedResponse

	ErrNotFound = repository.ErrNotFound

	ErrInvalidInput = errors.New("invalid input")

	// ErrTooManyGenerations indicates the owner already has the maximum
	// number of generations in flight.
	ErrTooManyGenerations = errors.New("too many study plan generations in progress")
)
