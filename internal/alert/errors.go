package alert

import "errors"

var (
	ErrAlertNotFound   = errors.New("alert not found")
	ErrUnknownSyncMode = errors.New("unknown synchronization mode")
	ErrTypeRequired    = errors.New("alert type is required")
)
