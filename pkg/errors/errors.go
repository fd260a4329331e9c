package errors

import (
	"fmt"
)

var (
	ErrAuthentication           = fmt.Errorf("authentication failed")
	ErrUnknownRegistrationToken = fmt.Errorf("unknown registration token")
	ErrNameConflict             = fmt.Errorf("name already registered")
	ErrInvalidCapability        = fmt.Errorf("invalid or expired capability")
	ErrNotFound                 = fmt.Errorf("not found")
	ErrConflict                 = fmt.Errorf("conflict")
	ErrParentNotFound           = fmt.Errorf("parent task not found")
	ErrETagMismatch             = fmt.Errorf("etag mismatch")
	ErrMaxExceeded              = fmt.Errorf("max length exceeded")
	ErrInvalidState             = fmt.Errorf("invalid state")
	ErrInvalidArg               = fmt.Errorf("invalid arg")
	ErrNotSupported             = fmt.Errorf("not supported")
)
