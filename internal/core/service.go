package core

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/driftline/dispatch/internal/metrics"
	"github.com/driftline/dispatch/internal/notify"
	"github.com/driftline/dispatch/internal/utils"
	"github.com/driftline/dispatch/pkg/database"
	"github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

var timeNow = func() int64 { return time.Now().Unix() }

// Service is the dispatch authority: it owns task state transitions, worker
// identity and capability issuance. Everything above it (the HTTP layer) is
// translation; everything below it (the database) is storage.
type Service struct {
	db         database.Database
	nt         *notify.Notifier
	opts       *structs.Options
	strategies map[string]*Strategy
	cron       *cron.Cron
	stop       chan struct{}
}

func NewService(db database.Database, nt *notify.Notifier, opts *structs.Options) (*Service, error) {
	if opts == nil {
		opts = structs.OptionsServerDefault()
	}
	if opts.DefaultMaxAttempts <= 0 {
		opts.DefaultMaxAttempts = structs.OptionsServerDefault().DefaultMaxAttempts
	}
	me := &Service{
		db:         db,
		nt:         nt,
		opts:       opts,
		strategies: defaultStrategies(),
		stop:       make(chan struct{}),
	}

	if opts.ReapFrequency > 0 {
		go func() {
			tick := time.NewTicker(opts.ReapFrequency)
			defer tick.Stop()
			for {
				select {
				case <-tick.C:
					me.reapExpiredLeases()
				case <-me.stop:
					return
				}
			}
		}()
	}

	if opts.Retention > 0 && opts.RetentionSchedule != "" {
		me.cron = cron.New()
		_, err := me.cron.AddFunc(opts.RetentionSchedule, me.removeExpiredTasks)
		if err != nil {
			return nil, fmt.Errorf("%w bad retention schedule: %v", errors.ErrInvalidArg, err)
		}
		me.cron.Start()
	}

	return me, nil
}

func (c *Service) Close() error {
	close(c.stop)
	if c.cron != nil {
		c.cron.Stop()
	}
	c.nt.Close()
	return c.db.Close()
}

// reapExpiredLeases requeues (or errors out) PROCESSING tasks whose worker
// stopped heartbeating. A worker that lost its lease this way finds out on
// its next report: the capability token no longer matches.
func (c *Service) reapExpiredLeases() {
	deadline := timeNow() - int64(c.opts.HeartbeatTimeout.Seconds())
	requeued, failed, err := c.db.ExpireLeases(deadline, utils.NewRandomTag(), "lease expired: heartbeat timeout")
	if err != nil {
		log.Error().Err(err).Msg("failed to expire leases")
		return
	}
	if len(requeued)+len(failed) > 0 {
		log.Info().Int("requeued", len(requeued)).Int("failed", len(failed)).Msg("reaped expired leases")
	}
	c.releasedTasks(requeued, failed)
}

// releasedTasks does the common bookkeeping after leases are torn down in
// bulk: requeued tasks are announced, failed ones cascade to dependents.
func (c *Service) releasedTasks(requeued, failed []*structs.Task) {
	for _, t := range requeued {
		metrics.TasksRequeued.WithLabelValues(t.Type).Inc()
	}
	c.notifyAvailable(requeued)
	for _, t := range failed {
		metrics.TasksErrored.WithLabelValues(t.Type).Inc()
		n, err := c.db.CancelTaskTree(t.ID, utils.NewRandomTag(), false)
		if err != nil {
			log.Error().Err(err).Str("task", t.ID).Msg("failed to cancel dependents")
			continue
		}
		metrics.TasksCancelled.Add(float64(n))
	}
}

func (c *Service) notifyAvailable(ts []*structs.Task) {
	if len(ts) == 0 {
		return
	}
	types := make([]string, 0, len(ts))
	for _, t := range ts {
		types = append(types, t.Type)
	}
	c.nt.TaskAvailable(types...)
}

func (c *Service) removeExpiredTasks() {
	cutoff := timeNow() - int64(c.opts.Retention.Seconds())
	n, err := c.db.DeleteTasksBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("failed to remove expired tasks")
		return
	}
	if n > 0 {
		log.Info().Int64("removed", n).Msg("removed expired tasks")
	}
}

func (c *Service) Tasks(q *structs.Query) ([]*structs.Task, error) {
	q.Sanitize()
	return c.db.Tasks(q)
}

func (c *Service) Workers(q *structs.Query) ([]*structs.Worker, error) {
	q.Sanitize()
	return c.db.Workers(q)
}

// CreateTasks validates, binds parents and stores the given tasks.
// Tasks with a COMPLETED parent (or none) start PENDING; tasks whose parent
// is still in flight start WAITING_ON_PARENT.
func (c *Service) CreateTasks(in []*structs.CreateTaskRequest) ([]*structs.Task, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w no tasks given", errors.ErrInvalidArg)
	}

	parents := map[string]*structs.Task{}
	for _, t := range in {
		strat, ok := c.strategies[t.Type]
		if !ok {
			return nil, fmt.Errorf("%w unknown task type %q", errors.ErrNotSupported, t.Type)
		}
		if err := validateTaskSpec(&t.TaskSpec); err != nil {
			return nil, err
		}
		if err := strat.Create(&t.TaskSpec); err != nil {
			return nil, err
		}
		if t.DependsOn != "" {
			parents[t.DependsOn] = nil
		}
	}

	if len(parents) > 0 {
		ids := make([]string, 0, len(parents))
		for id := range parents {
			ids = append(ids, id)
		}
		found, err := c.db.Tasks(&structs.Query{Limit: len(ids), TaskIDs: ids})
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			parents[p.ID] = p
		}
	}

	etag := utils.NewRandomTag()
	now := timeNow()
	tasks := make([]*structs.Task, 0, len(in))
	for _, t := range in {
		status := structs.PENDING
		if t.DependsOn != "" {
			parent := parents[t.DependsOn]
			if parent == nil {
				return nil, fmt.Errorf("%w parent task %s", errors.ErrParentNotFound, t.DependsOn)
			}
			switch {
			case parent.Status == structs.COMPLETED:
				// parent already done, start immediately
			case structs.IsFinalStatus(parent.Status):
				return nil, fmt.Errorf("%w parent task %s is %s", errors.ErrInvalidState, parent.ID, parent.Status)
			default:
				status = structs.WAITING_ON_PARENT
			}
		}

		spec := t.TaskSpec
		spec.Private = t.PrivateContext
		if spec.MaxAttempts <= 0 {
			spec.MaxAttempts = c.opts.DefaultMaxAttempts
		}
		if len(spec.Payload) == 0 {
			spec.Payload = []byte("{}")
		}
		if len(spec.Private) == 0 {
			spec.Private = []byte("{}")
		}
		tasks = append(tasks, &structs.Task{
			TaskSpec:  spec,
			ID:        utils.NewID(),
			Status:    status,
			ETag:      etag,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := c.db.InsertTasks(tasks); err != nil {
		return nil, err
	}

	pending := []*structs.Task{}
	recheck := map[string]bool{}
	for _, t := range tasks {
		metrics.TasksCreated.WithLabelValues(t.Type).Inc()
		switch t.Status {
		case structs.PENDING:
			pending = append(pending, t)
		case structs.WAITING_ON_PARENT:
			recheck[t.DependsOn] = true
		}
	}
	c.notifyAvailable(pending)

	// a parent can complete between our status read and the insert; its
	// promotion ran before these rows existed, so promote again now
	if len(recheck) > 0 {
		for _, p := range c.promoteFinishedParents(recheck) {
			for _, t := range tasks {
				if t.ID == p.ID {
					t.Status = p.Status
					t.ETag = p.ETag
				}
			}
		}
	}
	return tasks, nil
}

// promoteFinishedParents re-reads the given parents and wakes the dependents
// of any that are already COMPLETED.
func (c *Service) promoteFinishedParents(parentIDs map[string]bool) []*structs.Task {
	ids := make([]string, 0, len(parentIDs))
	for id := range parentIDs {
		ids = append(ids, id)
	}
	found, err := c.db.Tasks(&structs.Query{Limit: len(ids), TaskIDs: ids})
	if err != nil {
		log.Error().Err(err).Msg("failed to re-check parents after insert")
		return nil
	}

	promoted := []*structs.Task{}
	for _, p := range found {
		if p.Status != structs.COMPLETED {
			continue
		}
		ts, err := c.db.PromoteDependents(p.ID, utils.NewRandomTag())
		if err != nil {
			log.Error().Err(err).Str("task", p.ID).Msg("failed to promote dependents")
			continue
		}
		promoted = append(promoted, ts...)
	}
	c.notifyAvailable(promoted)
	return promoted
}

// CancelTasks cancels the given tasks and everything depending on them.
// Already-final tasks are left alone; cancelling them is not an error, they
// simply don't count.
func (c *Service) CancelTasks(ids []string) (int64, error) {
	var count int64
	for _, id := range ids {
		if !utils.IsValidID(id) {
			return count, fmt.Errorf("%w invalid task id %q", errors.ErrInvalidArg, id)
		}
		n, err := c.db.CancelTaskTree(id, utils.NewRandomTag(), true)
		count += n
		if err != nil {
			return count, err
		}
	}
	metrics.TasksCancelled.Add(float64(count))
	return count, nil
}

func (c *Service) CreateRegistrationToken() (*structs.RegistrationToken, error) {
	rt := &structs.RegistrationToken{
		ID:        utils.NewID(),
		Token:     utils.NewRegistrationToken(),
		CreatedAt: timeNow(),
	}
	return rt, c.db.InsertRegistrationToken(rt)
}

func (c *Service) RegistrationTokens(q *structs.Query) ([]*structs.RegistrationToken, error) {
	q.Sanitize()
	return c.db.RegistrationTokens(q)
}

// DeleteRegistrationToken stops the token admitting new workers; workers it
// already admitted keep their credentials.
func (c *Service) DeleteRegistrationToken(id string) error {
	if !utils.IsValidID(id) {
		return fmt.Errorf("%w invalid registration token id", errors.ErrInvalidArg)
	}
	n, err := c.db.DeleteRegistrationToken(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w registration token %s", errors.ErrNotFound, id)
	}
	return nil
}
