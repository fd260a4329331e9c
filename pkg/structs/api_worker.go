package structs

import (
	"encoding/json"
)

// Bodies of the worker-facing protocol. Every call after registration
// authenticates with the worker's long lived token; task reports carry the
// per-lease capability token as well.

type RegisterWorkerRequest struct {
	RegistrationToken string `json:"registration_token"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Version           string `json:"version,omitempty"`
}

type RegisterWorkerResponse struct {
	WorkerID    string `json:"worker_id"`
	WorkerToken string `json:"worker_token"`
}

type UnregisterWorkerRequest struct {
	WorkerToken string `json:"worker_token"`
}

type RequestTasksRequest struct {
	WorkerToken string `json:"worker_token"`

	// TaskTypes restricts dispatch to the given types. Empty means any.
	TaskTypes []string `json:"task_types,omitempty"`

	// Version is the worker software version, recorded on contact.
	Version string `json:"version,omitempty"`

	// MaxTasks is the number of tasks the worker has slots for.
	// Defaults to 1.
	MaxTasks int `json:"max_tasks,omitempty"`
}

// DispatchedTask is a task handed to a worker: public payload plus the
// capability token scoped to this lease. Nothing private leaves the server.
type DispatchedTask struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Payload         json.RawMessage `json:"payload"`
	CapabilityToken string          `json:"capability_token"`
}

type RequestTasksResponse struct {
	AvailableTasks []*DispatchedTask `json:"available_tasks"`
}

type ReportProgressRequest struct {
	WorkerToken     string `json:"worker_token"`
	CapabilityToken string `json:"capability_token"`
	Progress        int64  `json:"progress"`
}

type ReportSuccessRequest struct {
	WorkerToken     string          `json:"worker_token"`
	CapabilityToken string          `json:"capability_token"`
	Result          json.RawMessage `json:"result,omitempty"`
}

type ReportErrorRequest struct {
	WorkerToken     string `json:"worker_token"`
	CapabilityToken string `json:"capability_token"`
	Message         string `json:"message"`
}

// AbortTaskRequest hands a lease back without it counting as a failed
// attempt; for workers that cannot run the task rather than ones that tried
// and failed.
type AbortTaskRequest struct {
	WorkerToken     string `json:"worker_token"`
	CapabilityToken string `json:"capability_token"`
	Message         string `json:"message,omitempty"`
}
