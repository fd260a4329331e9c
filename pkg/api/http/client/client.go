// Package client is the Go client of the dispatch HTTP API. Workers use the
// task-protocol methods; operator tooling uses the admin methods with a
// bearer token.
package client

import (
	"io"
	"net/url"
	"strings"

	"github.com/driftline/dispatch/pkg/api/http/common"
	"github.com/driftline/dispatch/pkg/structs"
)

type Client struct {
	url        *url.URL
	adminToken string
}

func New(address string) (*Client, error) {
	u, err := url.Parse(address)
	return &Client{url: u}, err
}

// WithAdminToken authorizes the admin methods.
func (c *Client) WithAdminToken(token string) *Client {
	c.adminToken = token
	return c
}

// --- worker protocol ---

func (c *Client) RegisterWorker(in *structs.RegisterWorkerRequest) (*structs.RegisterWorkerResponse, error) {
	var out structs.RegisterWorkerResponse
	return &out, genericPost(c.addr(common.API_WORKER_REGISTER), in, &out)
}

func (c *Client) UnregisterWorker(in *structs.UnregisterWorkerRequest) error {
	return genericPost(c.addr(common.API_WORKER_UNREGISTER), in, nil)
}

func (c *Client) RequestTasks(in *structs.RequestTasksRequest) (*structs.RequestTasksResponse, error) {
	var out structs.RequestTasksResponse
	return &out, genericPost(c.addr(common.API_TASK_REQUEST), in, &out)
}

func (c *Client) ReportProgress(taskID string, in *structs.ReportProgressRequest) error {
	return genericPost(c.taskAddr(common.API_TASK_PROGRESS, taskID), in, nil)
}

func (c *Client) ReportSuccess(taskID string, in *structs.ReportSuccessRequest) error {
	return genericPost(c.taskAddr(common.API_TASK_SUCCESS, taskID), in, nil)
}

func (c *Client) ReportError(taskID string, in *structs.ReportErrorRequest) error {
	return genericPost(c.taskAddr(common.API_TASK_ERROR, taskID), in, nil)
}

// AbortTask returns a claimed task to the queue without burning an attempt.
func (c *Client) AbortTask(taskID string, in *structs.AbortTaskRequest) error {
	return genericPost(c.taskAddr(common.API_TASK_ABORT, taskID), in, nil)
}

// DownloadInput streams a task input file; the caller closes the reader.
func (c *Client) DownloadInput(taskID, name, capability string) (io.ReadCloser, error) {
	addr := c.fileAddr(common.API_TASK_INPUT_FILE, taskID, name, capability)
	return genericDownload(addr)
}

// UploadOutput stores a produced file against the task.
func (c *Client) UploadOutput(taskID, name, capability string, data io.Reader) error {
	addr := c.fileAddr(common.API_TASK_OUTPUT_FILE, taskID, name, capability)
	return genericUpload(addr, data)
}

// --- admin ---

func (c *Client) CreateTasks(in []*structs.CreateTaskRequest) ([]*structs.Task, error) {
	var out []*structs.Task
	return out, c.adminDo("POST", c.addr(common.API_TASKS), in, &out)
}

func (c *Client) Tasks(q *structs.Query) ([]*structs.Task, error) {
	addr := c.addr(common.API_TASKS)
	setQueryString(addr, q)
	var out []*structs.Task
	return out, c.adminDo("GET", addr, nil, &out)
}

func (c *Client) CancelTask(taskID string) (int64, error) {
	var out common.UpdateResponse
	err := c.adminDo("POST", c.taskAddr(common.API_TASK_CANCEL, taskID), nil, &out)
	return out.Updated, err
}

func (c *Client) Workers(q *structs.Query) ([]*structs.Worker, error) {
	addr := c.addr(common.API_WORKERS)
	setQueryString(addr, q)
	var out []*structs.Worker
	return out, c.adminDo("GET", addr, nil, &out)
}

func (c *Client) DeleteWorker(id string) error {
	return c.adminDo("DELETE", c.addr(expand(common.API_WORKER, "{workerID}", id)), nil, nil)
}

func (c *Client) CreateRegistrationToken() (*structs.RegistrationToken, error) {
	var out structs.RegistrationToken
	return &out, c.adminDo("POST", c.addr(common.API_REGISTRATION_TOKENS), nil, &out)
}

func (c *Client) RegistrationTokens(q *structs.Query) ([]*structs.RegistrationToken, error) {
	addr := c.addr(common.API_REGISTRATION_TOKENS)
	setQueryString(addr, q)
	var out []*structs.RegistrationToken
	return out, c.adminDo("GET", addr, nil, &out)
}

func (c *Client) DeleteRegistrationToken(id string) error {
	return c.adminDo("DELETE", c.addr(expand(common.API_REGISTRATION_TOKEN, "{tokenID}", id)), nil, nil)
}

// --- helpers ---

func (c *Client) addr(path string) *url.URL {
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: path}
}

func (c *Client) taskAddr(path, taskID string) *url.URL {
	return c.addr(expand(path, "{taskID}", taskID))
}

func (c *Client) fileAddr(path, taskID, name, capability string) *url.URL {
	u := c.addr(expand(path, "{taskID}", taskID, "{name}", name))
	v := u.Query()
	v.Set("capability", capability)
	u.RawQuery = v.Encode()
	return u
}

func expand(path string, kv ...string) string {
	return strings.NewReplacer(kv...).Replace(path)
}
