package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/driftline/dispatch/internal/utils"
	ie "github.com/driftline/dispatch/pkg/errors"
	"github.com/driftline/dispatch/pkg/structs"
)

var (
	errmap map[int][]error = map[int][]error{
		http.StatusUnauthorized: []error{
			ie.ErrAuthentication,
			ie.ErrUnknownRegistrationToken,
		},
		http.StatusForbidden: []error{
			ie.ErrInvalidCapability,
		},
		http.StatusNotFound: []error{
			ie.ErrNotFound,
			ie.ErrParentNotFound,
		},
		http.StatusConflict: []error{
			ie.ErrConflict,
			ie.ErrNameConflict,
		},
		http.StatusBadRequest: []error{
			ie.ErrETagMismatch,
			ie.ErrMaxExceeded,
			ie.ErrInvalidState,
			ie.ErrInvalidArg,
			ie.ErrNotSupported,
		},
	}
)

// mapError returns the http status code for a given dispatch error, or
// http.StatusInternalServerError if the error is not recognised.
func mapError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for code, errs := range errmap {
		for _, e := range errs {
			if errors.Is(err, e) {
				return code
			}
		}
	}
	return http.StatusInternalServerError
}

func unmarshalQuery(w http.ResponseWriter, r *http.Request, out *structs.Query) error {
	q := r.URL.Query()

	if q.Has("limit") {
		limit, err := strconv.Atoi(q.Get("limit"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return fmt.Errorf("bad limit: %v", err)
		}
		out.Limit = limit
	}

	if q.Has("offset") {
		offset, err := strconv.Atoi(q.Get("offset"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return fmt.Errorf("bad offset: %v", err)
		}
		out.Offset = offset
	}

	if q.Has("task_ids") {
		out.TaskIDs = q["task_ids"]
		for _, id := range out.TaskIDs {
			if !utils.IsValidID(id) {
				http.Error(w, "bad task id", http.StatusBadRequest)
				return fmt.Errorf("bad task id: %v", id)
			}
		}
	}
	if q.Has("task_types") {
		out.TaskTypes = q["task_types"]
	}
	if q.Has("worker_ids") {
		out.WorkerIDs = q["worker_ids"]
		for _, id := range out.WorkerIDs {
			if !utils.IsValidID(id) {
				http.Error(w, "bad worker id", http.StatusBadRequest)
				return fmt.Errorf("bad worker id: %v", id)
			}
		}
	}
	if q.Has("statuses") {
		out.Statuses = []structs.Status{}
		for _, s := range q["statuses"] {
			st := structs.ToStatus(s)
			if st == "" {
				http.Error(w, "bad status", http.StatusBadRequest)
				return fmt.Errorf("bad status: %v", s)
			}
			out.Statuses = append(out.Statuses, st)
		}
	}

	out.Sanitize()
	return nil
}

// unmarshalJson reads the body of a request and attempts to unmarshal it into the given object.
// This function writes an error to the writer if an error occurs, and returns the error.
func unmarshalJson(w http.ResponseWriter, r *http.Request, obj interface{}) error {
	if r.Body == nil {
		http.Error(w, "No body", http.StatusBadRequest)
		return fmt.Errorf("no body")
	}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields() // catch unwanted fields

	err := d.Decode(obj)
	if err != nil {
		// bad JSON or unrecognized json field
		http.Error(w, err.Error(), http.StatusBadRequest)
		return fmt.Errorf("bad json: %v", err)
	}

	return nil
}

// bearerToken pulls a token out of the Authorization header, if any.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// originAddress is the remote host a request came from, without the port.
func originAddress(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}
