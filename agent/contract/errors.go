package contract

import "errors"

var (
	ErrModelInvoke   = errors.New("model invoke failed")
	ErrEmptyReply    = errors.New("model returned an empty reply")
	ErrValidation    = errors.New("validation failed")
	ErrSessionClosed = errors.New("session is closed")
)
