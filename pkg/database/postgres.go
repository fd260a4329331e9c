package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	derrors "github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

const (
	// column orders; keep in sync with the scan funcs below
	taskCols = `type, payload, private, priority, depends_on, max_attempts,
	id, status, etag, worker_id, lease_token, claimed_at, last_heartbeat_at,
	progress, attempt, result, message, created_at, updated_at`

	workerCols = `id, name, description, token, origin_address, version,
	registration_token_id, last_contact_at, created_at, updated_at`
)

var finalStatuses = []string{
	string(structs.COMPLETED),
	string(structs.ERRORED),
	string(structs.CANCELLED),
}

// Postgres is a dispatch database implementation that uses postgres.
//
// The claim path relies on a conditional UPDATE over a FOR UPDATE SKIP LOCKED
// subselect, so concurrent claims scale with request volume rather than
// serializing on an application lock.
type Postgres struct {
	opts *Options
	pool *pgxpool.Pool
}

// NewPostgres returns a new Postgres database connection.
func NewPostgres(opts *Options) (*Postgres, error) {
	opts.SetDefaults()
	opts.URL = strings.Replace(opts.URL, "$"+opts.UsernameEnvVar, os.Getenv(opts.UsernameEnvVar), 1)
	opts.URL = strings.Replace(opts.URL, "$"+opts.PasswordEnvVar, os.Getenv(opts.PasswordEnvVar), 1)
	pool, err := pgxpool.New(context.Background(), opts.URL)
	return &Postgres{pool: pool, opts: opts}, err
}

// Close shuts down the database connection.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// InsertTasks inserts a set of tasks into the database in a single statement.
func (p *Postgres) InsertTasks(in []*structs.Task) error {
	if len(in) == 0 {
		return nil
	}
	tstrs, targs := []string{}, []interface{}{}
	for _, t := range in {
		s, a := toTaskSqlArgs(len(targs)+1, t)
		tstrs = append(tstrs, s)
		targs = append(targs, a...)
	}
	qstr := fmt.Sprintf(`INSERT INTO task (%s) VALUES %s;`, taskCols, strings.Join(tstrs, ","))

	_, err := p.pool.Exec(context.Background(), qstr, targs...)
	return err
}

// Tasks returns tasks matching the given query.
func (p *Postgres) Tasks(q *structs.Query) ([]*structs.Task, error) {
	where, args := toSqlQuery(map[string][]string{
		"id":        q.TaskIDs,
		"type":      q.TaskTypes,
		"status":    statusToStrings(q.Statuses),
		"worker_id": q.WorkerIDs,
	})
	args = append(args, q.Limit, q.Offset)
	qstr := fmt.Sprintf(`SELECT %s FROM task %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		taskCols, where, len(args)-1, len(args),
	)

	rows, err := p.pool.Query(context.Background(), qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ClaimTask claims the head of the eligible ordering, if any.
//
// Eligibility is simply status PENDING: dependent tasks are held in
// WAITING_ON_PARENT until the parent's completion effect promotes them,
// so the claim never needs to consult the dependency edge.
func (p *Postgres) ClaimTask(taskTypes []string, workerID, leaseToken, newTag string) (*structs.Task, error) {
	now := timeNow()
	args := []interface{}{structs.PROCESSING, workerID, leaseToken, newTag, now, structs.PENDING}
	filter := ""
	if len(taskTypes) > 0 {
		args = append(args, taskTypes)
		filter = fmt.Sprintf("AND type = ANY($%d)", len(args))
	}
	qstr := fmt.Sprintf(`UPDATE task SET
	status=$1, worker_id=$2, lease_token=$3, etag=$4, claimed_at=$5, last_heartbeat_at=$5, progress=0, updated_at=$5
	WHERE id = (
		SELECT id FROM task WHERE status=$6 %s
		ORDER BY priority DESC, created_at ASC
		LIMIT 1 FOR UPDATE SKIP LOCKED
	) RETURNING %s;`, filter, taskCols)

	t := &structs.Task{}
	err := scanTask(p.pool.QueryRow(context.Background(), qstr, args...), t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTaskProgress records progress + heartbeat while the lease holds.
func (p *Postgres) UpdateTaskProgress(taskID, leaseToken string, progress int64) (int64, error) {
	qstr := `UPDATE task SET progress=$1, last_heartbeat_at=$2, updated_at=$2
	WHERE id=$3 AND lease_token=$4 AND status=$5;`

	info, err := p.pool.Exec(context.Background(), qstr, progress, timeNow(), taskID, leaseToken, structs.PROCESSING)
	if err != nil {
		return 0, err
	}
	return info.RowsAffected(), nil
}

// CompleteTask finishes the task; clearing lease_token in the same write is
// what makes duplicate success reports lose.
func (p *Postgres) CompleteTask(taskID, leaseToken, newTag string, result []byte) (int64, error) {
	qstr := `UPDATE task SET status=$1, etag=$2, progress=100, result=$3, worker_id='', lease_token='', updated_at=$4
	WHERE id=$5 AND lease_token=$6 AND status=$7;`

	info, err := p.pool.Exec(context.Background(), qstr,
		structs.COMPLETED, newTag, result, timeNow(), taskID, leaseToken, structs.PROCESSING)
	if err != nil {
		return 0, err
	}
	return info.RowsAffected(), nil
}

// RequeueTask returns an errored task to PENDING for re-dispatch.
func (p *Postgres) RequeueTask(taskID, leaseToken, newTag, msg string) (int64, error) {
	return p.releaseTask(structs.PENDING, taskID, leaseToken, newTag, msg)
}

// AbortTask returns a task to PENDING without charging an attempt.
func (p *Postgres) AbortTask(taskID, leaseToken, newTag, msg string) (int64, error) {
	qstr := `UPDATE task SET status=$1, etag=$2, worker_id='', lease_token='', progress=0, message=$3, updated_at=$4
	WHERE id=$5 AND lease_token=$6 AND status=$7;`

	info, err := p.pool.Exec(context.Background(), qstr,
		structs.PENDING, newTag, msg, timeNow(), taskID, leaseToken, structs.PROCESSING)
	if err != nil {
		return 0, err
	}
	return info.RowsAffected(), nil
}

// FailTask marks a task ERRORED; the caller cascades cancellation.
func (p *Postgres) FailTask(taskID, leaseToken, newTag, msg string) (int64, error) {
	return p.releaseTask(structs.ERRORED, taskID, leaseToken, newTag, msg)
}

func (p *Postgres) releaseTask(status structs.Status, taskID, leaseToken, newTag, msg string) (int64, error) {
	qstr := `UPDATE task SET status=$1, etag=$2, attempt=attempt+1, worker_id='', lease_token='', progress=0, message=$3, updated_at=$4
	WHERE id=$5 AND lease_token=$6 AND status=$7;`

	info, err := p.pool.Exec(context.Background(), qstr,
		status, newTag, msg, timeNow(), taskID, leaseToken, structs.PROCESSING)
	if err != nil {
		return 0, err
	}
	return info.RowsAffected(), nil
}

// PromoteDependents wakes direct dependents of a completed parent.
func (p *Postgres) PromoteDependents(parentID, newTag string) ([]*structs.Task, error) {
	qstr := fmt.Sprintf(`UPDATE task SET status=$1, etag=$2, updated_at=$3
	WHERE depends_on=$4 AND status=$5 RETURNING %s;`, taskCols)

	rows, err := p.pool.Query(context.Background(), qstr,
		structs.PENDING, newTag, timeNow(), parentID, structs.WAITING_ON_PARENT)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// CancelTaskTree cancels every non-final task reachable from rootID along
// the depends_on edge. Failure only ever propagates parent -> child.
func (p *Postgres) CancelTaskTree(rootID, newTag string, includeRoot bool) (int64, error) {
	rootCond := ""
	if !includeRoot {
		rootCond = "AND id <> $4"
	}
	qstr := fmt.Sprintf(`WITH RECURSIVE tree AS (
		SELECT id FROM task WHERE id=$4
		UNION
		SELECT t.id FROM task t INNER JOIN tree ON t.depends_on = tree.id
	)
	UPDATE task SET status=$1, etag=$2, worker_id='', lease_token='', updated_at=$3
	WHERE id IN (SELECT id FROM tree) AND NOT (status = ANY($5)) %s;`, rootCond)

	info, err := p.pool.Exec(context.Background(), qstr,
		structs.CANCELLED, newTag, timeNow(), rootID, finalStatuses)
	if err != nil {
		return 0, err
	}
	return info.RowsAffected(), nil
}

// ExpireLeases reaps abandoned leases: no heartbeat since the deadline.
func (p *Postgres) ExpireLeases(deadline int64, newTag, msg string) ([]*structs.Task, []*structs.Task, error) {
	return p.releaseLeases("last_heartbeat_at < $6", deadline, newTag, msg)
}

// ReleaseWorkerTasks treats all of a worker's leases as expired.
func (p *Postgres) ReleaseWorkerTasks(workerID, newTag, msg string) ([]*structs.Task, []*structs.Task, error) {
	return p.releaseLeases("worker_id = $6", workerID, newTag, msg)
}

func (p *Postgres) releaseLeases(cond string, condArg interface{}, newTag, msg string) ([]*structs.Task, []*structs.Task, error) {
	now := timeNow()
	requeueSQL := fmt.Sprintf(`UPDATE task SET status=$1, etag=$2, attempt=attempt+1, worker_id='', lease_token='', progress=0, message=$3, updated_at=$4
	WHERE status=$5 AND %s AND attempt+1 < max_attempts RETURNING %s;`, cond, taskCols)
	failSQL := fmt.Sprintf(`UPDATE task SET status=$1, etag=$2, attempt=attempt+1, worker_id='', lease_token='', progress=0, message=$3, updated_at=$4
	WHERE status=$5 AND %s AND attempt+1 >= max_attempts RETURNING %s;`, cond, taskCols)

	ctx := context.Background()
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, requeueSQL, structs.PENDING, newTag, msg, now, structs.PROCESSING, condArg)
	if err != nil {
		return nil, nil, err
	}
	requeued, err := scanTasks(rows)
	rows.Close()
	if err != nil {
		return nil, nil, err
	}

	rows, err = tx.Query(ctx, failSQL, structs.ERRORED, newTag, msg, now, structs.PROCESSING, condArg)
	if err != nil {
		return nil, nil, err
	}
	failed, err := scanTasks(rows)
	rows.Close()
	if err != nil {
		return nil, nil, err
	}

	return requeued, failed, tx.Commit(ctx)
}

// DeleteTasksBefore is the retention sweep; finished tasks only, never mid-flight.
func (p *Postgres) DeleteTasksBefore(updatedBefore int64) (int64, error) {
	qstr := `DELETE FROM task WHERE status = ANY($1) AND updated_at < $2;`

	info, err := p.pool.Exec(context.Background(), qstr, finalStatuses, updatedBefore)
	if err != nil {
		return 0, err
	}
	return info.RowsAffected(), nil
}

// InsertWorker inserts a newly registered worker.
func (p *Postgres) InsertWorker(w *structs.Worker) error {
	if w.CreatedAt == 0 {
		w.CreatedAt = timeNow()
		w.UpdatedAt = w.CreatedAt
	}
	qstr := fmt.Sprintf(`INSERT INTO worker (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`, workerCols)

	_, err := p.pool.Exec(context.Background(), qstr,
		w.ID, w.Name, w.Description, w.Token, w.OriginAddress, w.Version,
		w.RegistrationTokenID, w.LastContactAt, w.CreatedAt, w.UpdatedAt)
	return mapPgError(err)
}

// Workers returns workers matching the given query.
func (p *Postgres) Workers(q *structs.Query) ([]*structs.Worker, error) {
	where, args := toSqlQuery(map[string][]string{"id": q.WorkerIDs})
	args = append(args, q.Limit, q.Offset)
	qstr := fmt.Sprintf(`SELECT %s FROM worker %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		workerCols, where, len(args)-1, len(args),
	)

	rows, err := p.pool.Query(context.Background(), qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := []*structs.Worker{}
	for rows.Next() {
		w := structs.Worker{}
		if err := scanWorker(rows, &w); err != nil {
			return nil, err
		}
		workers = append(workers, &w)
	}
	return workers, rows.Err()
}

// WorkerByToken returns the worker holding the given secret, or nil.
func (p *Postgres) WorkerByToken(token string) (*structs.Worker, error) {
	return p.oneWorker("token", token)
}

// WorkerByName returns the worker with the given name, or nil.
func (p *Postgres) WorkerByName(name string) (*structs.Worker, error) {
	return p.oneWorker("name", name)
}

func (p *Postgres) oneWorker(field, value string) (*structs.Worker, error) {
	qstr := fmt.Sprintf(`SELECT %s FROM worker WHERE %s=$1;`, workerCols, field)

	w := structs.Worker{}
	err := scanWorker(p.pool.QueryRow(context.Background(), qstr, value), &w)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// TouchWorker records the time of a worker's last contact, and its software
// version if the call carried one.
func (p *Postgres) TouchWorker(id string, at int64, version string) error {
	qstr := `UPDATE worker SET last_contact_at=$1, updated_at=$1,
	version = CASE WHEN $2 <> '' THEN $2 ELSE version END
	WHERE id=$3;`

	_, err := p.pool.Exec(context.Background(), qstr, at, version, id)
	return err
}

// DeleteWorker removes a worker; its token stops authenticating immediately.
func (p *Postgres) DeleteWorker(id string) (int64, error) {
	info, err := p.pool.Exec(context.Background(), `DELETE FROM worker WHERE id=$1;`, id)
	if err != nil {
		return 0, err
	}
	return info.RowsAffected(), nil
}

// InsertRegistrationToken stores a new pre-shared registration secret.
func (p *Postgres) InsertRegistrationToken(rt *structs.RegistrationToken) error {
	if rt.CreatedAt == 0 {
		rt.CreatedAt = timeNow()
	}
	qstr := `INSERT INTO registration_token (id, token, created_at) VALUES ($1, $2, $3);`

	_, err := p.pool.Exec(context.Background(), qstr, rt.ID, rt.Token, rt.CreatedAt)
	return err
}

// RegistrationTokens lists registration tokens.
func (p *Postgres) RegistrationTokens(q *structs.Query) ([]*structs.RegistrationToken, error) {
	qstr := `SELECT id, token, created_at FROM registration_token ORDER BY created_at DESC LIMIT $1 OFFSET $2;`

	rows, err := p.pool.Query(context.Background(), qstr, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []*structs.RegistrationToken{}
	for rows.Next() {
		rt := structs.RegistrationToken{}
		if err := rows.Scan(&rt.ID, &rt.Token, &rt.CreatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, &rt)
	}
	return tokens, rows.Err()
}

// RegistrationTokenByToken resolves a presented registration secret, or nil.
func (p *Postgres) RegistrationTokenByToken(token string) (*structs.RegistrationToken, error) {
	qstr := `SELECT id, token, created_at FROM registration_token WHERE token=$1;`

	rt := structs.RegistrationToken{}
	err := p.pool.QueryRow(context.Background(), qstr, token).Scan(&rt.ID, &rt.Token, &rt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// DeleteRegistrationToken revokes a registration secret. Workers it already
// admitted keep their own tokens.
func (p *Postgres) DeleteRegistrationToken(id string) (int64, error) {
	info, err := p.pool.Exec(context.Background(), `DELETE FROM registration_token WHERE id=$1;`, id)
	if err != nil {
		return 0, err
	}
	return info.RowsAffected(), nil
}

// mapPgError translates unique violations onto the service error set; the
// registry's check-then-insert can lose a race that only the constraint sees.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w %s", derrors.ErrNameConflict, pgErr.ConstraintName)
	}
	return err
}

// --- scan / sql helpers ---

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(s scanner, t *structs.Task) error {
	return s.Scan(
		&t.Type,
		&t.Payload,
		&t.Private,
		&t.Priority,
		&t.DependsOn,
		&t.MaxAttempts,
		&t.ID,
		&t.Status,
		&t.ETag,
		&t.WorkerID,
		&t.LeaseToken,
		&t.ClaimedAt,
		&t.LastHeartbeatAt,
		&t.Progress,
		&t.Attempt,
		&t.Result,
		&t.Message,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

func scanTasks(rows pgx.Rows) ([]*structs.Task, error) {
	tasks := []*structs.Task{}
	for rows.Next() {
		t := structs.Task{}
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

func scanWorker(s scanner, w *structs.Worker) error {
	return s.Scan(
		&w.ID,
		&w.Name,
		&w.Description,
		&w.Token,
		&w.OriginAddress,
		&w.Version,
		&w.RegistrationTokenID,
		&w.LastContactAt,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
}

// toSqlQuery converts query data into a SQL WHERE string & args
func toSqlQuery(in map[string][]string) (string, []interface{}) {
	if in == nil {
		in = map[string][]string{}
	}
	and := []string{}
	args := []interface{}{}
	for _, k := range sortedKeys(in) {
		v := in[k]
		if len(v) == 0 {
			continue
		}
		s, a := toSqlIn(len(args)+1, k, v)
		and = append(and, s)
		args = append(args, a...)
	}
	if len(and) == 0 {
		return "", args
	}
	return fmt.Sprintf("WHERE %s", strings.Join(and, " AND ")), args
}

func sortedKeys(in map[string][]string) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	// map iteration order is random; stable SQL helps debugging & tests
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// toSqlIn converts a list of strings into a SQL IN clause
func toSqlIn(offset int, field string, args []string) (string, []interface{}) {
	if len(args) == 0 {
		return "", []interface{}{}
	}
	vals := []string{}
	ifargs := []interface{}{}
	for i, a := range args {
		vals = append(vals, fmt.Sprintf("$%d", i+offset))
		ifargs = append(ifargs, a)
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(vals, ", ")), ifargs
}

// toTaskSqlArgs converts a task into a SQL values string & args (for an insert)
func toTaskSqlArgs(offset int, t *structs.Task) (string, []interface{}) {
	vals := []string{}
	for i := offset; i < 19+offset; i++ {
		vals = append(vals, fmt.Sprintf("$%d", i))
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = timeNow()
		t.UpdatedAt = t.CreatedAt
	}
	return fmt.Sprintf("(%s)", strings.Join(vals, ", ")), []interface{}{
		t.Type,
		t.Payload,
		t.Private,
		t.Priority,
		t.DependsOn,
		t.MaxAttempts,
		t.ID,
		t.Status,
		t.ETag,
		t.WorkerID,
		t.LeaseToken,
		t.ClaimedAt,
		t.LastHeartbeatAt,
		t.Progress,
		t.Attempt,
		t.Result,
		t.Message,
		t.CreatedAt,
		t.UpdatedAt,
	}
}

// statusToStrings converts a list of statuses into a list of strings
func statusToStrings(in []structs.Status) []string {
	if len(in) == 0 {
		return nil
	}
	out := []string{}
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

// timeNow returns the current time in unix seconds
func timeNow() int64 {
	return time.Now().Unix()
}
