package services

import "errors"

var (
	ErrForbidden         = errors.New("forbidden")
	ErrEmailTaken        = errors.New("email already registered")
	ErrAlreadyRated      = errors.New("order already rated")
	ErrAlreadyClaimed    = errors.New("order already claimed or not claimable")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)
