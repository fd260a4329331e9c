package core

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/driftline/dispatch/internal/mocks/pkg/database_mock"
	"github.com/driftline/dispatch/internal/utils"
	"github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

// expectWorker wires up the auth round trip for a worker-protocol call.
func expectWorker(db *database_mock.MockDatabase) *structs.Worker {
	w := &structs.Worker{ID: utils.NewID(), Name: "transcoder-01", Token: utils.NewWorkerToken()}
	db.EXPECT().WorkerByToken(w.Token).Return(w, nil)
	db.EXPECT().TouchWorker(w.ID, gomock.Any(), gomock.Any()).Return(nil)
	return w
}

// leasedTask is a PROCESSING task held by the given worker.
func leasedTask(w *structs.Worker) *structs.Task {
	payload, _ := json.Marshal(&structs.TranscodeWebVideoPayload{Input: "videos/src.mp4", Resolution: 720})
	return &structs.Task{
		TaskSpec: structs.TaskSpec{
			Type:        structs.TypeTranscodeWebVideo,
			Payload:     payload,
			Private:     []byte("{}"),
			MaxAttempts: 3,
		},
		ID:         utils.NewID(),
		Status:     structs.PROCESSING,
		ETag:       utils.NewRandomTag(),
		WorkerID:   w.ID,
		LeaseToken: utils.NewCapabilityToken(),
	}
}

func TestRequestTasksClaimsUntilEmpty(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)

	claims := 0
	db.EXPECT().ClaimTask(gomock.Any(), w.ID, gomock.Any(), gomock.Any()).DoAndReturn(
		func(types []string, workerID, lease, tag string) (*structs.Task, error) {
			if claims >= 2 {
				return nil, nil
			}
			claims++
			tsk := leasedTask(w)
			tsk.LeaseToken = lease
			return tsk, nil
		},
	).Times(3)

	resp, err := svc.RequestTasks(&structs.RequestTasksRequest{
		WorkerToken: w.Token,
		MaxTasks:    5,
	})

	require.NoError(t, err)
	require.Len(t, resp.AvailableTasks, 2)
	for _, dt := range resp.AvailableTasks {
		assert.True(t, strings.HasPrefix(dt.CapabilityToken, "dct-"))
		assert.Equal(t, structs.TypeTranscodeWebVideo, dt.Type)
		assert.NotEmpty(t, dt.Payload)
	}
	// each lease gets its own capability
	assert.NotEqual(t, resp.AvailableTasks[0].CapabilityToken, resp.AvailableTasks[1].CapabilityToken)
}

func TestRequestTasksDefaultsToOne(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)

	db.EXPECT().ClaimTask(gomock.Any(), w.ID, gomock.Any(), gomock.Any()).DoAndReturn(
		func(types []string, workerID, lease, tag string) (*structs.Task, error) {
			tsk := leasedTask(w)
			tsk.LeaseToken = lease
			return tsk, nil
		},
	)

	resp, err := svc.RequestTasks(&structs.RequestTasksRequest{WorkerToken: w.Token})

	require.NoError(t, err)
	assert.Len(t, resp.AvailableTasks, 1)
}

func TestRequestTasksRecordsVersion(t *testing.T) {
	svc, db := newTestService(t)
	w := &structs.Worker{ID: utils.NewID(), Token: utils.NewWorkerToken()}

	db.EXPECT().WorkerByToken(w.Token).Return(w, nil)
	db.EXPECT().TouchWorker(w.ID, gomock.Any(), "2.1.0").Return(nil)
	db.EXPECT().ClaimTask(gomock.Any(), w.ID, gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := svc.RequestTasks(&structs.RequestTasksRequest{
		WorkerToken: w.Token,
		Version:     "2.1.0",
	})

	require.NoError(t, err)
}

func TestRequestTasksRejectsUnknownType(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)

	_, err := svc.RequestTasks(&structs.RequestTasksRequest{
		WorkerToken: w.Token,
		TaskTypes:   []string{"mine-bitcoin"},
	})

	assert.ErrorIs(t, err, errors.ErrInvalidArg)
}

func TestReportProgress(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)
	db.EXPECT().UpdateTaskProgress(tsk.ID, tsk.LeaseToken, int64(50)).Return(int64(1), nil)

	err := svc.ReportProgress(tsk.ID, &structs.ReportProgressRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Progress:        50,
	})

	require.NoError(t, err)
}

func TestReportProgressRejections(t *testing.T) {
	cases := []struct {
		Name      string
		Mutate    func(tsk *structs.Task, req *structs.ReportProgressRequest)
		ExpectErr error
	}{
		{
			Name: "WrongCapability",
			Mutate: func(tsk *structs.Task, req *structs.ReportProgressRequest) {
				req.CapabilityToken = utils.NewCapabilityToken()
			},
			ExpectErr: errors.ErrInvalidCapability,
		},
		{
			Name: "EmptyCapability",
			Mutate: func(tsk *structs.Task, req *structs.ReportProgressRequest) {
				req.CapabilityToken = ""
			},
			ExpectErr: errors.ErrInvalidCapability,
		},
		{
			Name: "TaskAlreadyFinished",
			Mutate: func(tsk *structs.Task, req *structs.ReportProgressRequest) {
				tsk.Status = structs.COMPLETED
			},
			ExpectErr: errors.ErrConflict,
		},
		{
			Name: "ProgressOutOfRange",
			Mutate: func(tsk *structs.Task, req *structs.ReportProgressRequest) {
				req.Progress = 101
			},
			ExpectErr: errors.ErrInvalidArg,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			svc, db := newTestService(t)
			w := expectWorker(db)
			tsk := leasedTask(w)
			req := &structs.ReportProgressRequest{
				WorkerToken:     w.Token,
				CapabilityToken: tsk.LeaseToken,
				Progress:        50,
			}
			c.Mutate(tsk, req)

			db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)

			err := svc.ReportProgress(tsk.ID, req)

			assert.ErrorIs(t, err, c.ExpectErr)
		})
	}
}

func TestReportProgressLostLeaseIsConflict(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)
	// the lease was torn down between read and write; zero rows changed
	db.EXPECT().UpdateTaskProgress(tsk.ID, tsk.LeaseToken, int64(50)).Return(int64(0), nil)

	err := svc.ReportProgress(tsk.ID, &structs.ReportProgressRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Progress:        50,
	})

	assert.ErrorIs(t, err, errors.ErrConflict)
}

func TestReportSuccess(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)
	child := &structs.Task{ID: utils.NewID(), TaskSpec: structs.TaskSpec{Type: structs.TypeGenerateTranscription}}
	result := []byte(`{"video_file":"videos/out-720.mp4"}`)

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)
	db.EXPECT().CompleteTask(tsk.ID, tsk.LeaseToken, gomock.Any(), result).Return(int64(1), nil)
	db.EXPECT().PromoteDependents(tsk.ID, gomock.Any()).Return([]*structs.Task{child}, nil)

	err := svc.ReportSuccess(tsk.ID, &structs.ReportSuccessRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Result:          result,
	})

	require.NoError(t, err)
}

func TestReportSuccessChainsFollowUp(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)
	tsk.Private, _ = json.Marshal(&structs.TranscodePrivate{
		VideoID:         utils.NewID(),
		NextResolutions: []int{480},
	})
	result := []byte(`{"video_file":"videos/out-720.mp4"}`)

	// first read resolves the report, second read binds the follow-up's parent
	completed := *tsk
	completed.Status = structs.COMPLETED
	gomock.InOrder(
		db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil),
		db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{&completed}, nil),
	)
	db.EXPECT().CompleteTask(tsk.ID, tsk.LeaseToken, gomock.Any(), result).Return(int64(1), nil)

	var inserted []*structs.Task
	db.EXPECT().InsertTasks(gomock.Any()).DoAndReturn(func(in []*structs.Task) error {
		inserted = in
		return nil
	})
	db.EXPECT().PromoteDependents(tsk.ID, gomock.Any()).Return(nil, nil)

	err := svc.ReportSuccess(tsk.ID, &structs.ReportSuccessRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Result:          result,
	})

	require.NoError(t, err)
	require.Len(t, inserted, 1)
	next := inserted[0]
	assert.Equal(t, structs.TypeTranscodeWebVideo, next.Type)
	assert.Equal(t, tsk.ID, next.DependsOn)
	assert.Equal(t, structs.PENDING, next.Status)

	p := &structs.TranscodeWebVideoPayload{}
	require.NoError(t, json.Unmarshal(next.Payload, p))
	assert.Equal(t, 480, p.Resolution)
	assert.Equal(t, "videos/src.mp4", p.Input)

	priv := &structs.TranscodePrivate{}
	require.NoError(t, json.Unmarshal(next.Private, priv))
	assert.Empty(t, priv.NextResolutions)
}

func TestReportSuccessRejectsBadResult(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)

	// strategy rejects the result before anything is written; the lease
	// stays live so the worker can retry
	err := svc.ReportSuccess(tsk.ID, &structs.ReportSuccessRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Result:          []byte(`{"unexpected":true}`),
	})

	assert.ErrorIs(t, err, errors.ErrInvalidArg)
}

func TestReportSuccessUnknownTypeIsNotSupported(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)
	tsk.Type = "retired-task-type"

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)

	// nothing is written; the task needs operator attention, not a panic
	err := svc.ReportSuccess(tsk.ID, &structs.ReportSuccessRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Result:          []byte(`{}`),
	})

	assert.ErrorIs(t, err, errors.ErrNotSupported)
}

func TestReportSuccessTwiceIsConflict(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)
	tsk.Status = structs.COMPLETED
	tsk.LeaseToken = ""

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)

	err := svc.ReportSuccess(tsk.ID, &structs.ReportSuccessRequest{
		WorkerToken:     w.Token,
		CapabilityToken: utils.NewCapabilityToken(),
		Result:          []byte(`{"video_file":"videos/out.mp4"}`),
	})

	assert.ErrorIs(t, err, errors.ErrConflict)
}

func TestReportErrorRequeues(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w) // attempt 0 of 3

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)
	db.EXPECT().RequeueTask(tsk.ID, tsk.LeaseToken, gomock.Any(), "ffmpeg exploded").Return(int64(1), nil)

	err := svc.ReportError(tsk.ID, &structs.ReportErrorRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Message:         "ffmpeg exploded",
	})

	require.NoError(t, err)
}

func TestReportErrorExhaustedFailsAndCascades(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)
	tsk.Attempt = 2 // third and final execution

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)
	db.EXPECT().FailTask(tsk.ID, tsk.LeaseToken, gomock.Any(), "ffmpeg exploded").Return(int64(1), nil)
	db.EXPECT().CancelTaskTree(tsk.ID, gomock.Any(), false).Return(int64(2), nil)

	err := svc.ReportError(tsk.ID, &structs.ReportErrorRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Message:         "ffmpeg exploded",
	})

	require.NoError(t, err)
}

func TestReportErrorWrongCapability(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)

	err := svc.ReportError(tsk.ID, &structs.ReportErrorRequest{
		WorkerToken:     w.Token,
		CapabilityToken: utils.NewCapabilityToken(),
		Message:         "nope",
	})

	assert.ErrorIs(t, err, errors.ErrInvalidCapability)
}

func TestAbortTaskReturnsLease(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)
	// the abort path, not RequeueTask: no attempt is charged
	db.EXPECT().AbortTask(tsk.ID, tsk.LeaseToken, gomock.Any(), "shutting down").Return(int64(1), nil)

	err := svc.AbortTask(tsk.ID, &structs.AbortTaskRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
		Message:         "shutting down",
	})

	require.NoError(t, err)
}

func TestAbortTaskWrongCapability(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)

	err := svc.AbortTask(tsk.ID, &structs.AbortTaskRequest{
		WorkerToken:     w.Token,
		CapabilityToken: utils.NewCapabilityToken(),
	})

	assert.ErrorIs(t, err, errors.ErrInvalidCapability)
}

func TestAbortTaskLostLeaseIsConflict(t *testing.T) {
	svc, db := newTestService(t)
	w := expectWorker(db)
	tsk := leasedTask(w)

	db.EXPECT().Tasks(gomock.Any()).Return([]*structs.Task{tsk}, nil)
	db.EXPECT().AbortTask(tsk.ID, tsk.LeaseToken, gomock.Any(), gomock.Any()).Return(int64(0), nil)

	err := svc.AbortTask(tsk.ID, &structs.AbortTaskRequest{
		WorkerToken:     w.Token,
		CapabilityToken: tsk.LeaseToken,
	})

	assert.ErrorIs(t, err, errors.ErrConflict)
}

func TestAuthorizeFileAccess(t *testing.T) {
	w := &structs.Worker{ID: "worker"}
	valid := leasedTask(w)

	cases := []struct {
		Name       string
		Task       *structs.Task
		Capability string
		ExpectErr  error
	}{
		{
			Name:       "Valid",
			Task:       valid,
			Capability: valid.LeaseToken,
		},
		{
			Name:       "WrongCapability",
			Task:       valid,
			Capability: utils.NewCapabilityToken(),
			ExpectErr:  errors.ErrInvalidCapability,
		},
		{
			Name: "TaskNotProcessing",
			Task: func() *structs.Task {
				t := leasedTask(w)
				t.Status = structs.PENDING
				return t
			}(),
			Capability: valid.LeaseToken,
			ExpectErr:  errors.ErrInvalidCapability,
		},
		{
			Name:       "TaskMissing",
			Task:       nil,
			Capability: valid.LeaseToken,
			ExpectErr:  errors.ErrInvalidCapability,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			svc, db := newTestService(t)

			found := []*structs.Task{}
			taskID := utils.NewID()
			if c.Task != nil {
				found = append(found, c.Task)
				taskID = c.Task.ID
			}
			db.EXPECT().Tasks(gomock.Any()).Return(found, nil)

			got, err := svc.AuthorizeFileAccess(taskID, c.Capability)

			if c.ExpectErr != nil {
				assert.ErrorIs(t, err, c.ExpectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.Task.ID, got.ID)
		})
	}
}

func TestAuthorizeFileAccessEmptyCapability(t *testing.T) {
	svc, _ := newTestService(t)

	// no db round trip for an obviously bad request
	_, err := svc.AuthorizeFileAccess(utils.NewID(), "")

	assert.ErrorIs(t, err, errors.ErrInvalidCapability)
}
