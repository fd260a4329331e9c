package structs

import (
	"strings"
)

type Status string

const (
	// transient states
	PENDING           Status = "PENDING"
	WAITING_ON_PARENT Status = "WAITING_ON_PARENT"
	PROCESSING        Status = "PROCESSING"

	// end states
	COMPLETED Status = "COMPLETED"
	ERRORED   Status = "ERRORED"
	CANCELLED Status = "CANCELLED"
)

// IsFinalStatus tells us if a task in this status is done for good.
// No transition ever leaves a final status.
func IsFinalStatus(status Status) bool {
	switch status {
	case COMPLETED, ERRORED, CANCELLED:
		return true
	default:
		return false
	}
}

func ToStatus(s string) Status {
	switch strings.ToUpper(s) {
	case "PENDING":
		return PENDING
	case "WAITING_ON_PARENT":
		return WAITING_ON_PARENT
	case "PROCESSING":
		return PROCESSING
	case "COMPLETED":
		return COMPLETED
	case "ERRORED":
		return ERRORED
	case "CANCELLED":
		return CANCELLED
	default:
		return ""
	}
}
