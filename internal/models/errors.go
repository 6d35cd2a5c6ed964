package models

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrSlotUnavailable        = errors.New("slot unavailable")
	ErrInvalidSignature       = errors.New("invalid callback signature")
	ErrNotPaid                = errors.New("transaction is not paid")
	ErrFinalizationInProgress = errors.New("finalization in progress")
	ErrFinalizationFailed     = errors.New("finalization failed")
	ErrAlreadyAwarded         = errors.New("points already awarded")
	ErrNoVisitsLeft           = errors.New("no visits left")
)
