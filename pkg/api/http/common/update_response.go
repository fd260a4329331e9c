package common

// UpdateResponse reports how many objects an operation altered.
type UpdateResponse struct {
	Updated int64 `json:"updated"`
}

// SocketEvent is pushed down the worker socket. The only event today is
// "available": new work may be waiting, request when ready.
type SocketEvent struct {
	Event string `json:"event"`
}

const EventAvailable = "available"
