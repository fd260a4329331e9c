package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/driftline/dispatch/internal/utils"
	"github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

func TestRegisterWorker(t *testing.T) {
	svc, db := newTestService(t)
	rt := &structs.RegistrationToken{ID: utils.NewID(), Token: "drt-secret"}

	db.EXPECT().RegistrationTokenByToken(rt.Token).Return(rt, nil)
	db.EXPECT().WorkerByName("transcoder-01").Return(nil, nil)

	var inserted *structs.Worker
	db.EXPECT().InsertWorker(gomock.Any()).DoAndReturn(func(w *structs.Worker) error {
		inserted = w
		return nil
	})

	resp, err := svc.RegisterWorker(&structs.RegisterWorkerRequest{
		RegistrationToken: rt.Token,
		Name:              "transcoder-01",
		Description:       "gpu box",
		Version:           "1.2.0",
	}, "203.0.113.9")

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, inserted.ID, resp.WorkerID)
	assert.Equal(t, inserted.Token, resp.WorkerToken)
	assert.True(t, strings.HasPrefix(resp.WorkerToken, "dwt-"))
	assert.Equal(t, rt.ID, inserted.RegistrationTokenID)
	assert.Equal(t, "203.0.113.9", inserted.OriginAddress)
}

func TestRegisterWorkerUnknownToken(t *testing.T) {
	svc, db := newTestService(t)

	db.EXPECT().RegistrationTokenByToken("drt-wrong").Return(nil, nil)

	_, err := svc.RegisterWorker(&structs.RegisterWorkerRequest{
		RegistrationToken: "drt-wrong",
		Name:              "transcoder-01",
	}, "")

	assert.ErrorIs(t, err, errors.ErrUnknownRegistrationToken)
}

func TestRegisterWorkerNameConflict(t *testing.T) {
	svc, db := newTestService(t)
	rt := &structs.RegistrationToken{ID: utils.NewID(), Token: "drt-secret"}

	db.EXPECT().RegistrationTokenByToken(rt.Token).Return(rt, nil)
	db.EXPECT().WorkerByName("transcoder-01").Return(&structs.Worker{ID: utils.NewID(), Name: "transcoder-01"}, nil)

	_, err := svc.RegisterWorker(&structs.RegisterWorkerRequest{
		RegistrationToken: rt.Token,
		Name:              "transcoder-01",
	}, "")

	assert.ErrorIs(t, err, errors.ErrNameConflict)
}

func TestRegisterWorkerNameRaceSurfacesConflict(t *testing.T) {
	svc, db := newTestService(t)
	rt := &structs.RegistrationToken{ID: utils.NewID(), Token: "drt-secret"}

	db.EXPECT().RegistrationTokenByToken(rt.Token).Return(rt, nil)
	// both racers passed the name check; the loser hits the UNIQUE
	// constraint, which the store maps onto ErrNameConflict
	db.EXPECT().WorkerByName("transcoder-01").Return(nil, nil)
	db.EXPECT().InsertWorker(gomock.Any()).Return(fmt.Errorf("%w worker_name_key", errors.ErrNameConflict))

	_, err := svc.RegisterWorker(&structs.RegisterWorkerRequest{
		RegistrationToken: rt.Token,
		Name:              "transcoder-01",
	}, "")

	assert.ErrorIs(t, err, errors.ErrNameConflict)
}

func TestRegisterWorkerValidates(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RegisterWorker(&structs.RegisterWorkerRequest{Name: "transcoder-01"}, "")
	assert.ErrorIs(t, err, errors.ErrInvalidArg)

	_, err = svc.RegisterWorker(&structs.RegisterWorkerRequest{RegistrationToken: "drt-x"}, "")
	assert.ErrorIs(t, err, errors.ErrInvalidArg)
}

func TestUnregisterWorkerReleasesLeases(t *testing.T) {
	svc, db := newTestService(t)
	w := &structs.Worker{ID: utils.NewID(), Name: "transcoder-01", Token: utils.NewWorkerToken()}
	held := &structs.Task{ID: utils.NewID(), TaskSpec: structs.TaskSpec{Type: structs.TypeTranscodeWebVideo}}

	db.EXPECT().WorkerByToken(w.Token).Return(w, nil)
	db.EXPECT().TouchWorker(w.ID, gomock.Any(), gomock.Any()).Return(nil)
	db.EXPECT().ReleaseWorkerTasks(w.ID, gomock.Any(), gomock.Any()).Return(
		[]*structs.Task{held}, nil, nil,
	)
	db.EXPECT().DeleteWorker(w.ID).Return(int64(1), nil)

	err := svc.UnregisterWorker(&structs.UnregisterWorkerRequest{WorkerToken: w.Token})

	require.NoError(t, err)
}

func TestDeleteWorker(t *testing.T) {
	svc, db := newTestService(t)
	w := &structs.Worker{ID: utils.NewID(), Name: "transcoder-01"}

	db.EXPECT().Workers(gomock.Any()).Return([]*structs.Worker{w}, nil)
	db.EXPECT().ReleaseWorkerTasks(w.ID, gomock.Any(), gomock.Any()).Return(nil, nil, nil)
	db.EXPECT().DeleteWorker(w.ID).Return(int64(1), nil)

	require.NoError(t, svc.DeleteWorker(w.ID))
}

func TestDeleteWorkerNotFound(t *testing.T) {
	svc, db := newTestService(t)
	id := utils.NewID()

	db.EXPECT().Workers(gomock.Any()).Return(nil, nil)

	assert.ErrorIs(t, svc.DeleteWorker(id), errors.ErrNotFound)
}

func TestAuthenticateWorker(t *testing.T) {
	svc, db := newTestService(t)
	w := &structs.Worker{ID: utils.NewID(), Token: utils.NewWorkerToken()}

	db.EXPECT().WorkerByToken(w.Token).Return(w, nil)
	db.EXPECT().TouchWorker(w.ID, gomock.Any(), "").Return(nil)

	got, err := svc.AuthenticateWorker(w.Token)

	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)
}

func TestAuthenticateWorkerRejects(t *testing.T) {
	svc, db := newTestService(t)

	// not even shaped like a worker token; no db round trip
	_, err := svc.AuthenticateWorker("")
	assert.ErrorIs(t, err, errors.ErrAuthentication)
	_, err = svc.AuthenticateWorker("dct-this-is-a-capability")
	assert.ErrorIs(t, err, errors.ErrAuthentication)

	// shaped right but unknown
	db.EXPECT().WorkerByToken("dwt-unknown").Return(nil, nil)
	_, err = svc.AuthenticateWorker("dwt-unknown")
	assert.ErrorIs(t, err, errors.ErrAuthentication)
}
