package database

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	derrors "github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

func TestToTaskSqlArgs(t *testing.T) {
	in := &structs.Task{
		TaskSpec: structs.TaskSpec{
			Type:        "transcode-web-video",
			Payload:     []byte(`{"a": "b"}`),
			Private:     []byte(`{"c": "d"}`),
			Priority:    10,
			DependsOn:   "parent",
			MaxAttempts: 3,
		},
		ID:              "id",
		Status:          structs.PENDING,
		ETag:            "etag",
		WorkerID:        "worker",
		LeaseToken:      "lease",
		ClaimedAt:       50,
		LastHeartbeatAt: 60,
		Progress:        70,
		Attempt:         1,
		Result:          []byte(`{"e": "f"}`),
		Message:         "message",
		CreatedAt:       200,
		UpdatedAt:       300,
	}

	qstr, result := toTaskSqlArgs(2, in)

	assert.Equal(t, "($2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)", qstr)
	assert.Equal(t, []interface{}{
		in.Type,
		in.Payload,
		in.Private,
		in.Priority,
		in.DependsOn,
		in.MaxAttempts,
		in.ID,
		in.Status,
		in.ETag,
		in.WorkerID,
		in.LeaseToken,
		in.ClaimedAt,
		in.LastHeartbeatAt,
		in.Progress,
		in.Attempt,
		in.Result,
		in.Message,
		in.CreatedAt,
		in.UpdatedAt,
	}, result)
}

func TestToTaskSqlArgsSetsCreatedAt(t *testing.T) {
	in := &structs.Task{ID: "id"}

	toTaskSqlArgs(1, in)

	assert.NotZero(t, in.CreatedAt)
	assert.Equal(t, in.CreatedAt, in.UpdatedAt)
}

func TestToSqlIn(t *testing.T) {
	qstr, args := toSqlIn(3, "status", []string{"PENDING", "PROCESSING"})

	assert.Equal(t, "status IN ($3, $4)", qstr)
	assert.Equal(t, []interface{}{"PENDING", "PROCESSING"}, args)
}

func TestToSqlQuery(t *testing.T) {
	where, args := toSqlQuery(map[string][]string{
		"id":     {"a", "b"},
		"status": {"PENDING"},
		"type":   nil,
	})

	// keys are emitted in sorted order so placeholders are deterministic
	assert.Equal(t, "WHERE id IN ($1, $2) AND status IN ($3)", where)
	assert.Equal(t, []interface{}{"a", "b", "PENDING"}, args)
}

func TestToSqlQueryEmpty(t *testing.T) {
	where, args := toSqlQuery(nil)

	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestMapPgError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "worker_name_key"}
	assert.ErrorIs(t, mapPgError(dup), derrors.ErrNameConflict)

	other := fmt.Errorf("connection refused")
	assert.Equal(t, other, mapPgError(other))

	assert.Nil(t, mapPgError(nil))
}

func TestStatusToStrings(t *testing.T) {
	assert.Nil(t, statusToStrings(nil))
	assert.Equal(t, []string{"PENDING", "CANCELLED"}, statusToStrings([]structs.Status{structs.PENDING, structs.CANCELLED}))
}
