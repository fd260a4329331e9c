package database

import (
	"github.com/driftline/dispatch/pkg/structs"
)

// Database is the durable task store, worker registry and registration
// token store.
//
// All mutations of leased tasks are conditional on the current lease token
// so that stale writers (duplicate reports, expired leases) affect zero
// rows; the caller maps "zero rows" onto the protocol error taxonomy.
type Database interface {
	// --- tasks ---

	InsertTasks(in []*structs.Task) error

	Tasks(q *structs.Query) ([]*structs.Task, error)

	// ClaimTask atomically claims the highest priority eligible PENDING
	// task (optionally restricted to the given types), transitions it to
	// PROCESSING and records the lease. Returns nil when nothing is
	// eligible; two racing claims can never both win the same task.
	ClaimTask(taskTypes []string, workerID, leaseToken, newTag string) (*structs.Task, error)

	// UpdateTaskProgress records progress & a heartbeat for the task,
	// provided the given lease still holds.
	UpdateTaskProgress(taskID, leaseToken string, progress int64) (int64, error)

	// CompleteTask transitions PROCESSING -> COMPLETED and stores the
	// worker's result, invalidating the lease token in the same write.
	CompleteTask(taskID, leaseToken, newTag string, result []byte) (int64, error)

	// RequeueTask transitions PROCESSING -> PENDING with attempt+1
	// (transient failure, attempts remaining).
	RequeueTask(taskID, leaseToken, newTag, msg string) (int64, error)

	// AbortTask transitions PROCESSING -> PENDING without touching the
	// attempt counter; the worker gave the lease back rather than failing.
	AbortTask(taskID, leaseToken, newTag, msg string) (int64, error)

	// FailTask transitions PROCESSING -> ERRORED with attempt+1
	// (attempts exhausted).
	FailTask(taskID, leaseToken, newTag, msg string) (int64, error)

	// PromoteDependents moves direct dependents of the given parent out of
	// WAITING_ON_PARENT into PENDING, returning the promoted tasks.
	PromoteDependents(parentID, newTag string) ([]*structs.Task, error)

	// CancelTaskTree cancels every non-final task reachable from rootID
	// along the depends_on edge (children direction). includeRoot controls
	// whether the root itself is cancelled too.
	CancelTaskTree(rootID, newTag string, includeRoot bool) (int64, error)

	// ExpireLeases requeues (or errors out, if attempts are exhausted)
	// PROCESSING tasks whose last heartbeat is older than the deadline.
	ExpireLeases(deadline int64, newTag, msg string) (requeued []*structs.Task, failed []*structs.Task, err error)

	// ReleaseWorkerTasks treats every lease held by the given worker as
	// expired; used when a worker unregisters or is deleted.
	ReleaseWorkerTasks(workerID, newTag, msg string) (requeued []*structs.Task, failed []*structs.Task, err error)

	// DeleteTasksBefore removes finished tasks not updated since the cutoff.
	DeleteTasksBefore(updatedBefore int64) (int64, error)

	// --- workers ---

	InsertWorker(w *structs.Worker) error
	Workers(q *structs.Query) ([]*structs.Worker, error)
	WorkerByToken(token string) (*structs.Worker, error)
	WorkerByName(name string) (*structs.Worker, error)
	// TouchWorker records a worker contact; a non-empty version updates
	// the worker's recorded software version too.
	TouchWorker(id string, at int64, version string) error
	DeleteWorker(id string) (int64, error)

	// --- registration tokens ---

	InsertRegistrationToken(rt *structs.RegistrationToken) error
	RegistrationTokens(q *structs.Query) ([]*structs.RegistrationToken, error)
	RegistrationTokenByToken(token string) (*structs.RegistrationToken, error)
	DeleteRegistrationToken(id string) (int64, error)

	Close() error
}
