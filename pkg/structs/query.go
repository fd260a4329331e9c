package structs

const (
	queryLimitDefault = 1000
	queryLimitMax     = 10000
)

type Query struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Filters
	TaskIDs   []string `json:"task_ids,omitempty"`
	TaskTypes []string `json:"task_types,omitempty"`
	Statuses  []Status `json:"statuses,omitempty"`
	WorkerIDs []string `json:"worker_ids,omitempty"`
}

func (q *Query) Sanitize() {
	if q.Limit <= 0 {
		q.Limit = queryLimitDefault
	}
	if q.Limit > queryLimitMax {
		q.Limit = queryLimitMax
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if len(q.TaskIDs) == 0 {
		q.TaskIDs = nil
	}
	if len(q.TaskTypes) == 0 {
		q.TaskTypes = nil
	}
	if len(q.Statuses) == 0 {
		q.Statuses = nil
	}
	if len(q.WorkerIDs) == 0 {
		q.WorkerIDs = nil
	}
}
