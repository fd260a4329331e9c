package core

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/driftline/dispatch/internal/metrics"
	"github.com/driftline/dispatch/internal/utils"
	"github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

// maxTasksPerRequest caps how many leases a single request can claim.
const maxTasksPerRequest = 25

// RequestTasks claims up to MaxTasks eligible tasks for the calling worker.
// Each claim is atomic and mints a fresh capability token; a worker holding
// fewer tasks than it asked for simply found the queue empty.
func (c *Service) RequestTasks(req *structs.RequestTasksRequest) (*structs.RequestTasksResponse, error) {
	w, err := c.authWorker(req.WorkerToken, req.Version)
	if err != nil {
		return nil, err
	}
	for _, tt := range req.TaskTypes {
		if _, ok := c.strategies[tt]; !ok {
			return nil, fmt.Errorf("%w unknown task type %q", errors.ErrInvalidArg, tt)
		}
	}

	max := req.MaxTasks
	if max <= 0 {
		max = 1
	}
	if max > maxTasksPerRequest {
		max = maxTasksPerRequest
	}

	out := []*structs.DispatchedTask{}
	for len(out) < max {
		capability := utils.NewCapabilityToken()
		t, err := c.db.ClaimTask(req.TaskTypes, w.ID, capability, utils.NewRandomTag())
		if err != nil {
			return nil, err
		}
		if t == nil {
			break
		}
		metrics.TasksDispatched.WithLabelValues(t.Type).Inc()
		log.Info().Str("task", t.ID).Str("type", t.Type).Str("worker", w.ID).Msg("dispatched task")
		out = append(out, &structs.DispatchedTask{
			ID:              t.ID,
			Type:            t.Type,
			Payload:         t.Payload,
			CapabilityToken: capability,
		})
	}
	return &structs.RequestTasksResponse{AvailableTasks: out}, nil
}

// ReportProgress records progress and refreshes the lease heartbeat.
func (c *Service) ReportProgress(taskID string, req *structs.ReportProgressRequest) error {
	w, err := c.authWorker(req.WorkerToken, "")
	if err != nil {
		return err
	}
	t, err := c.taskByID(taskID)
	if err != nil {
		return err
	}
	if err := checkCapability(t, w.ID, req.CapabilityToken); err != nil {
		return err
	}
	if req.Progress < 0 || req.Progress > 100 {
		return fmt.Errorf("%w progress must be 0-100", errors.ErrInvalidArg)
	}

	n, err := c.db.UpdateTaskProgress(t.ID, req.CapabilityToken, req.Progress)
	if err != nil {
		return err
	}
	if n == 0 {
		// lease moved on between our read and this write
		return fmt.Errorf("%w task %s lease is no longer held", errors.ErrConflict, t.ID)
	}
	return nil
}

// ReportSuccess completes the task, stores the result and releases whatever
// was gated on it: WAITING_ON_PARENT dependents plus at most one follow-up
// task from the type's completion strategy.
func (c *Service) ReportSuccess(taskID string, req *structs.ReportSuccessRequest) error {
	w, err := c.authWorker(req.WorkerToken, "")
	if err != nil {
		return err
	}
	t, err := c.taskByID(taskID)
	if err != nil {
		return err
	}
	if err := checkCapability(t, w.ID, req.CapabilityToken); err != nil {
		return err
	}

	result := req.Result
	if len(result) == 0 {
		result = []byte("{}")
	}
	// stored tasks can outlive a strategy-set change across deploys
	strat, ok := c.strategies[t.Type]
	if !ok {
		return fmt.Errorf("%w unknown task type %q", errors.ErrNotSupported, t.Type)
	}
	followUp, err := strat.Complete(t, result)
	if err != nil {
		return err
	}

	n, err := c.db.CompleteTask(t.ID, req.CapabilityToken, utils.NewRandomTag(), result)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w task %s lease is no longer held", errors.ErrConflict, t.ID)
	}
	metrics.TasksCompleted.WithLabelValues(t.Type).Inc()
	log.Info().Str("task", t.ID).Str("type", t.Type).Str("worker", w.ID).Msg("task completed")

	if followUp != nil {
		followUp.DependsOn = t.ID
		if _, err := c.CreateTasks([]*structs.CreateTaskRequest{followUp}); err != nil {
			// the completion stands; a lost follow-up is logged, not rolled back
			log.Error().Err(err).Str("task", t.ID).Msg("failed to create follow-up task")
		}
	}

	promoted, err := c.db.PromoteDependents(t.ID, utils.NewRandomTag())
	if err != nil {
		return err
	}
	c.notifyAvailable(promoted)
	return nil
}

// ReportError requeues the task if attempts remain, otherwise marks it
// ERRORED and cancels everything depending on it.
func (c *Service) ReportError(taskID string, req *structs.ReportErrorRequest) error {
	w, err := c.authWorker(req.WorkerToken, "")
	if err != nil {
		return err
	}
	t, err := c.taskByID(taskID)
	if err != nil {
		return err
	}
	if err := checkCapability(t, w.ID, req.CapabilityToken); err != nil {
		return err
	}

	msg := truncate(req.Message, maxMessageLength)
	if t.Attempt+1 < t.MaxAttempts {
		n, err := c.db.RequeueTask(t.ID, req.CapabilityToken, utils.NewRandomTag(), msg)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w task %s lease is no longer held", errors.ErrConflict, t.ID)
		}
		metrics.TasksRequeued.WithLabelValues(t.Type).Inc()
		log.Info().Str("task", t.ID).Int64("attempt", t.Attempt+1).Msg("task requeued after error")
		c.nt.TaskAvailable(t.Type)
		return nil
	}

	n, err := c.db.FailTask(t.ID, req.CapabilityToken, utils.NewRandomTag(), msg)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w task %s lease is no longer held", errors.ErrConflict, t.ID)
	}
	metrics.TasksErrored.WithLabelValues(t.Type).Inc()
	log.Warn().Str("task", t.ID).Str("type", t.Type).Str("message", msg).Msg("task errored")

	cancelled, err := c.db.CancelTaskTree(t.ID, utils.NewRandomTag(), false)
	if err != nil {
		return err
	}
	metrics.TasksCancelled.Add(float64(cancelled))
	return nil
}

// AbortTask hands the lease back without charging an attempt: the worker
// cannot run the task (shutting down, missing codec) rather than having
// tried and failed.
func (c *Service) AbortTask(taskID string, req *structs.AbortTaskRequest) error {
	w, err := c.authWorker(req.WorkerToken, "")
	if err != nil {
		return err
	}
	t, err := c.taskByID(taskID)
	if err != nil {
		return err
	}
	if err := checkCapability(t, w.ID, req.CapabilityToken); err != nil {
		return err
	}

	n, err := c.db.AbortTask(t.ID, req.CapabilityToken, utils.NewRandomTag(), truncate(req.Message, maxMessageLength))
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w task %s lease is no longer held", errors.ErrConflict, t.ID)
	}
	metrics.TasksRequeued.WithLabelValues(t.Type).Inc()
	log.Info().Str("task", t.ID).Str("worker", w.ID).Msg("task aborted by worker")
	c.nt.TaskAvailable(t.Type)
	return nil
}

// AuthorizeFileAccess resolves a capability token to the task it leases.
// File endpoints are authorized by capability alone: any mismatch, including
// a task that is no longer PROCESSING, reads as an invalid capability.
func (c *Service) AuthorizeFileAccess(taskID, capability string) (*structs.Task, error) {
	if capability == "" || !utils.IsValidID(taskID) {
		return nil, errors.ErrInvalidCapability
	}
	ts, err := c.db.Tasks(&structs.Query{Limit: 1, TaskIDs: []string{taskID}})
	if err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, errors.ErrInvalidCapability
	}
	t := ts[0]
	if t.Status != structs.PROCESSING || t.LeaseToken != capability {
		return nil, errors.ErrInvalidCapability
	}
	return t, nil
}

func (c *Service) taskByID(id string) (*structs.Task, error) {
	if !utils.IsValidID(id) {
		return nil, fmt.Errorf("%w invalid task id", errors.ErrInvalidArg)
	}
	ts, err := c.db.Tasks(&structs.Query{Limit: 1, TaskIDs: []string{id}})
	if err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w task %s", errors.ErrNotFound, id)
	}
	return ts[0], nil
}

// checkCapability guards worker reports. A task outside PROCESSING is a
// conflict (the report raced a terminal transition); a live task with the
// wrong token or worker is a capability failure, and worth shouting about.
func checkCapability(t *structs.Task, workerID, capability string) error {
	if t.Status != structs.PROCESSING {
		return fmt.Errorf("%w task %s is %s", errors.ErrConflict, t.ID, t.Status)
	}
	if capability == "" || t.LeaseToken != capability || t.WorkerID != workerID {
		log.Warn().Str("task", t.ID).Str("worker", workerID).Msg("report rejected: capability mismatch")
		return errors.ErrInvalidCapability
	}
	return nil
}
