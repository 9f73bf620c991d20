package service

import "errors"

// Caller-recoverable failures of the core flows. Handlers map these to HTTP
// codes; none of them ever carries a code or signing secret in its text.
var (
	ErrRateLimited     = errors.New("too many code requests, try again later")
	ErrCodeNotFound    = errors.New("code expired or not found")
	ErrIncorrectCode   = errors.New("incorrect code")
	ErrTooManyAttempts = errors.New("too many failed attempts, request a new code")
	ErrDeliveryFailed  = errors.New("could not deliver the code, try again")

	ErrUserNotFound      = errors.New("user not found")
	ErrMissingPhoneClaim = errors.New("assertion carries no phone number")

	ErrWorkerNotFound    = errors.New("worker not found")
	ErrAlreadyRegistered = errors.New("already registered as a worker")

	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNotUnlocked     = errors.New("contact not unlocked for this worker")
	ErrDuplicateReview = errors.New("worker already reviewed")
)
