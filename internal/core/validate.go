package core

import (
	"fmt"

	"github.com/driftline/dispatch/internal/utils"
	"github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

const (
	// max values
	maxNameLength    = 500
	maxTypeLength    = 500
	maxPayloadLength = 100000
	maxMessageLength = 10000
)

func validateTaskSpec(spec *structs.TaskSpec) error {
	if spec.Type == "" {
		return fmt.Errorf("%w task type is required", errors.ErrInvalidArg)
	}
	if len(spec.Type) > maxTypeLength {
		return fmt.Errorf("%w task type too long", errors.ErrMaxExceeded)
	}
	if len(spec.Payload) > maxPayloadLength {
		return fmt.Errorf("%w task payload too long", errors.ErrMaxExceeded)
	}
	if spec.MaxAttempts < 0 {
		return fmt.Errorf("%w max_attempts cannot be negative", errors.ErrInvalidArg)
	}
	if spec.DependsOn != "" && !utils.IsValidID(spec.DependsOn) {
		return fmt.Errorf("%w depends_on is not a valid task id", errors.ErrInvalidArg)
	}
	return nil
}

func validateRegisterWorker(req *structs.RegisterWorkerRequest) error {
	if req.RegistrationToken == "" {
		return fmt.Errorf("%w registration token is required", errors.ErrInvalidArg)
	}
	if req.Name == "" {
		return fmt.Errorf("%w worker name is required", errors.ErrInvalidArg)
	}
	if len(req.Name) > maxNameLength || len(req.Description) > maxPayloadLength {
		return fmt.Errorf("%w name or description too long", errors.ErrMaxExceeded)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
