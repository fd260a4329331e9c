package core

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/driftline/dispatch/internal/utils"
	"github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

// RegisterWorker exchanges a valid registration token for a new worker
// identity and its long lived worker token. The worker token is returned
// exactly once, here.
func (c *Service) RegisterWorker(req *structs.RegisterWorkerRequest, originAddress string) (*structs.RegisterWorkerResponse, error) {
	if err := validateRegisterWorker(req); err != nil {
		return nil, err
	}

	rt, err := c.db.RegistrationTokenByToken(req.RegistrationToken)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, errors.ErrUnknownRegistrationToken
	}

	existing, err := c.db.WorkerByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w worker name %q", errors.ErrNameConflict, req.Name)
	}

	now := timeNow()
	w := &structs.Worker{
		ID:                  utils.NewID(),
		Name:                req.Name,
		Description:         req.Description,
		Token:               utils.NewWorkerToken(),
		OriginAddress:       originAddress,
		Version:             req.Version,
		RegistrationTokenID: rt.ID,
		LastContactAt:       now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := c.db.InsertWorker(w); err != nil {
		return nil, err
	}

	log.Info().Str("worker", w.ID).Str("name", w.Name).Str("origin", originAddress).Msg("registered worker")
	return &structs.RegisterWorkerResponse{WorkerID: w.ID, WorkerToken: w.Token}, nil
}

// UnregisterWorker removes the calling worker. Its leases are released
// first so in-flight tasks requeue rather than dangle.
func (c *Service) UnregisterWorker(req *structs.UnregisterWorkerRequest) error {
	w, err := c.authWorker(req.WorkerToken, "")
	if err != nil {
		return err
	}
	return c.removeWorker(w, "worker unregistered")
}

// DeleteWorker is the admin flavour of UnregisterWorker.
func (c *Service) DeleteWorker(id string) error {
	if !utils.IsValidID(id) {
		return fmt.Errorf("%w invalid worker id", errors.ErrInvalidArg)
	}
	ws, err := c.db.Workers(&structs.Query{Limit: 1, WorkerIDs: []string{id}})
	if err != nil {
		return err
	}
	if len(ws) == 0 {
		return fmt.Errorf("%w worker %s", errors.ErrNotFound, id)
	}
	return c.removeWorker(ws[0], "worker deleted")
}

func (c *Service) removeWorker(w *structs.Worker, reason string) error {
	requeued, failed, err := c.db.ReleaseWorkerTasks(w.ID, utils.NewRandomTag(), reason)
	if err != nil {
		return err
	}
	c.releasedTasks(requeued, failed)

	_, err = c.db.DeleteWorker(w.ID)
	if err != nil {
		return err
	}
	log.Info().Str("worker", w.ID).Str("name", w.Name).Int("released", len(requeued)+len(failed)).Msg(reason)
	return nil
}

// AuthenticateWorker resolves a worker token to the worker it belongs to.
func (c *Service) AuthenticateWorker(token string) (*structs.Worker, error) {
	return c.authWorker(token, "")
}

func (c *Service) authWorker(token, version string) (*structs.Worker, error) {
	if !utils.IsWorkerToken(token) {
		return nil, errors.ErrAuthentication
	}
	w, err := c.db.WorkerByToken(token)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errors.ErrAuthentication
	}
	// contact bookkeeping is best effort
	if err := c.db.TouchWorker(w.ID, timeNow(), version); err != nil {
		log.Warn().Err(err).Str("worker", w.ID).Msg("failed to record worker contact")
	}
	return w, nil
}
