package services

import "errors"

var (
	ErrBadCreds          = errors.New("invalid email or password")
	ErrEmailTaken        = errors.New("email already registered")
	ErrSpinUsed          = errors.New("you already used your daily spin")
	ErrAlertExists       = errors.New("price alert already exists for this product")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotOwner          = errors.New("not the owner of this resource")
)
