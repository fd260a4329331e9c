package structs

import (
	"encoding/json"
)

// Task types form a closed set; each has a registered strategy that
// validates its payload on create and applies its effects on completion.
const (
	TypeTranscodeWebVideo     = "transcode-web-video"
	TypeTranscodeAudioMerge   = "transcode-audio-merge"
	TypeGenerateTranscription = "generate-transcription"
	TypeStudioEdit            = "studio-edit"
	TypeReplaceSource         = "replace-source"
)

// TaskTypes lists every dispatchable task type.
func TaskTypes() []string {
	return []string{
		TypeTranscodeWebVideo,
		TypeTranscodeAudioMerge,
		TypeGenerateTranscription,
		TypeStudioEdit,
		TypeReplaceSource,
	}
}

// TaskSpec are fields that can be set when a task is created.
type TaskSpec struct {
	// Type is the type of task this is. This must match the name of a
	// registered task strategy.
	//
	// Required.
	Type string `json:"type"`

	// Payload is the public, type-specific data a worker needs to execute
	// the task (input locations, desired output parameters).
	Payload json.RawMessage `json:"payload"`

	// Private is server-only metadata (target entity id, chaining info).
	// It is never sent to workers.
	Private json.RawMessage `json:"-"`

	// Priority of this task. Higher priority tasks dispatch first.
	Priority int64 `json:"priority"`

	// DependsOn is the ID of a parent task. If set, this task is only
	// eligible for dispatch once the parent is COMPLETED.
	DependsOn string `json:"depends_on"`

	// MaxAttempts is the number of executions this task is allowed before
	// it is marked ERRORED. If 0, a configured default is applied.
	MaxAttempts int64 `json:"max_attempts"`
}

// Task represents a single unit of dispatchable work.
type Task struct {
	// TaskSpec are fields that can be set when a task is created
	TaskSpec `json:",inline"`

	// ID is a unique, externally addressable identifier for this task
	ID string `json:"id"`

	// Status is the current status of this task
	Status Status `json:"status"`

	// ETag is used when updating a task for optimistic locking
	ETag string `json:"etag"`

	// WorkerID is the worker currently holding this task's lease, if any
	WorkerID string `json:"worker_id"`

	// LeaseToken is the capability token minted for the current lease.
	// It authorizes file access and status reports for exactly this task
	// and attempt; it is invalidated the moment the task leaves PROCESSING.
	LeaseToken string `json:"-"`

	// ClaimedAt is the time the current lease was claimed, unix seconds
	ClaimedAt int64 `json:"claimed_at"`

	// LastHeartbeatAt is the last time the leasing worker reported progress
	LastHeartbeatAt int64 `json:"last_heartbeat_at"`

	// Progress is 0-100, reported by the worker
	Progress int64 `json:"progress"`

	// Attempt is the number of executions that have ended in an error
	Attempt int64 `json:"attempt"`

	// Result is the payload the worker reported on success
	Result json.RawMessage `json:"result,omitempty"`

	// Message is an optional message from the worker (eg. the last error)
	Message string `json:"message"`

	// CreatedAt is the time this task was created unix time in seconds
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the time this task was last updated unix time in seconds
	UpdatedAt int64 `json:"updated_at"`
}

// CreateTaskRequest asks for a new task to be created.
type CreateTaskRequest struct {
	TaskSpec `json:",inline"`

	// PrivateContext is copied into the task's server-only metadata.
	// Only the admin surface may set it; it is never echoed to workers.
	PrivateContext json.RawMessage `json:"private_context,omitempty"`
}
