package domain

import "errors"

var (
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotFull          = errors.New("slot is full")
	ErrAlreadyRegistered = errors.New("already registered for this slot")
)
