package api

import (
	"github.com/driftline/dispatch/internal/notify"
	"github.com/driftline/dispatch/pkg/structs"
)

// API represents the functions dispatch servers expose.
type API interface {
	// Implemented in dispatch/internal/core.Service

	// --- worker protocol ---

	RegisterWorker(req *structs.RegisterWorkerRequest, originAddress string) (*structs.RegisterWorkerResponse, error)
	UnregisterWorker(req *structs.UnregisterWorkerRequest) error
	AuthenticateWorker(token string) (*structs.Worker, error)

	RequestTasks(req *structs.RequestTasksRequest) (*structs.RequestTasksResponse, error)
	ReportProgress(taskID string, req *structs.ReportProgressRequest) error
	ReportSuccess(taskID string, req *structs.ReportSuccessRequest) error
	ReportError(taskID string, req *structs.ReportErrorRequest) error

	// AbortTask returns a claimed task to the queue without it counting
	// as a failed attempt.
	AbortTask(taskID string, req *structs.AbortTaskRequest) error

	// AuthorizeFileAccess resolves a capability token to the PROCESSING task
	// it leases, gating the task file endpoints.
	AuthorizeFileAccess(taskID, capability string) (*structs.Task, error)

	// --- admin ---

	CreateTasks(in []*structs.CreateTaskRequest) ([]*structs.Task, error)
	Tasks(q *structs.Query) ([]*structs.Task, error)
	CancelTasks(ids []string) (int64, error)

	Workers(q *structs.Query) ([]*structs.Worker, error)
	DeleteWorker(id string) error

	CreateRegistrationToken() (*structs.RegistrationToken, error)
	RegistrationTokens(q *structs.Query) ([]*structs.RegistrationToken, error)
	DeleteRegistrationToken(id string) error

	Close() error
}

type Server interface {
	ServeForever(api API, nt *notify.Notifier) error
	Close() error
}
