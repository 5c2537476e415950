package domain

import "errors"

// ErrKeyNotFound is returned by a state store when a key has no value.
var ErrKeyNotFound = errors.New("key not found")

// ErrDialogNotFound is returned when a dialog id is not registered.
var ErrDialogNotFound = errors.New("dialog not found")
