package models

import "errors"

// Application error taxonomy. Controllers map these onto HTTP statuses;
// services never retry, they propagate.
var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrNotFound        = errors.New("resource not found")
	ErrUploadFailed    = errors.New("image upload failed")
	ErrPersistence     = errors.New("persistence failure")
	ErrPaymentDeclined = errors.New("payment declined")
	ErrInvalidInput    = errors.New("invalid input")
)
