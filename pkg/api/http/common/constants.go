package common

const (
	// API_WORKER_REGISTER exchanges a registration token for a worker identity
	API_WORKER_REGISTER = "/api/v1/workers/register"

	// API_WORKER_UNREGISTER removes the calling worker
	API_WORKER_UNREGISTER = "/api/v1/workers/unregister"

	// API_WORKER_SOCKET is the websocket push channel for availability signals
	API_WORKER_SOCKET = "/api/v1/workers/socket"

	// API_TASK_REQUEST claims tasks for the calling worker
	API_TASK_REQUEST = "/api/v1/tasks/request"

	// API_TASK_PROGRESS / SUCCESS / ERROR are the per-lease report endpoints
	API_TASK_PROGRESS = "/api/v1/tasks/{taskID}/progress"
	API_TASK_SUCCESS  = "/api/v1/tasks/{taskID}/success"
	API_TASK_ERROR    = "/api/v1/tasks/{taskID}/error"

	// API_TASK_ABORT hands a lease back without charging an attempt
	API_TASK_ABORT = "/api/v1/tasks/{taskID}/abort"

	// API_TASK_INPUT_FILE / OUTPUT_FILE move task files, gated by capability
	API_TASK_INPUT_FILE  = "/api/v1/tasks/{taskID}/files/input/{name}"
	API_TASK_OUTPUT_FILE = "/api/v1/tasks/{taskID}/files/output/{name}"

	// API_TASKS is used to get or create tasks (admin)
	API_TASKS = "/api/v1/tasks"

	// API_TASK_CANCEL cancels a task and its dependents (admin)
	API_TASK_CANCEL = "/api/v1/tasks/{taskID}/cancel"

	// API_WORKERS lists workers; API_WORKER deletes one (admin)
	API_WORKERS = "/api/v1/workers"
	API_WORKER  = "/api/v1/workers/{workerID}"

	// API_REGISTRATION_TOKENS manages worker admission tokens (admin)
	API_REGISTRATION_TOKENS = "/api/v1/registration-tokens"
	API_REGISTRATION_TOKEN  = "/api/v1/registration-tokens/{tokenID}"
)
