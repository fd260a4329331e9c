package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/driftline/dispatch/pkg/structs"
)

// genericPost is a helper to POST data to a given URL and unmarshal the response
func genericPost(addr *url.URL, in interface{}, out interface{}) error {
	return do(http.MethodPost, addr, in, out, "")
}

// do runs a JSON request / response round trip.
func do(method string, addr *url.URL, in interface{}, out interface{}, adminToken string) error {
	var buf io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, addr.String(), buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	} else if resp.Body == nil {
		return fmt.Errorf("no response body with status code %d", resp.StatusCode)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 { // some error code, assume message is error message
		return fmt.Errorf("bad status code %d, returned %s", resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) adminDo(method string, addr *url.URL, in interface{}, out interface{}) error {
	return do(method, addr, in, out, c.adminToken)
}

// genericDownload GETs a file, handing the body back to the caller.
func genericDownload(addr *url.URL) (io.ReadCloser, error) {
	resp, err := http.Get(addr.String())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status code %d, returned %s", resp.StatusCode, string(body))
	}
	return resp.Body, nil
}

// genericUpload PUTs raw bytes.
func genericUpload(addr *url.URL, data io.Reader) error {
	req, err := http.NewRequest(http.MethodPut, addr.String(), data)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status code %d, returned %s", resp.StatusCode, string(body))
	}
	return nil
}

// setQueryString sets the query string of a URL based on the given query object.
func setQueryString(u *url.URL, q *structs.Query) {
	q.Sanitize()
	values := u.Query()

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.TaskIDs != nil {
		values["task_ids"] = q.TaskIDs
	}
	if q.TaskTypes != nil {
		values["task_types"] = q.TaskTypes
	}
	if q.WorkerIDs != nil {
		values["worker_ids"] = q.WorkerIDs
	}
	if q.Statuses != nil {
		ss := []string{}
		for _, s := range q.Statuses {
			ss = append(ss, string(s))
		}
		values["statuses"] = ss
	}

	u.RawQuery = values.Encode()
}
