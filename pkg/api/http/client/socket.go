package client

import (
	"github.com/gorilla/websocket"

	"github.com/driftline/dispatch/pkg/api/http/common"
)

// Listen opens the availability push channel. The returned channel yields a
// (coalesced) signal whenever the server hints that work may be waiting; the
// channel closes when the connection drops. Call stop to hang up.
//
// Signals are advisory. A worker should still poll occasionally: a dropped
// connection or lost signal only costs latency, never correctness.
func (c *Client) Listen(workerToken string, taskTypes []string) (<-chan struct{}, func(), error) {
	u := c.addr(common.API_WORKER_SOCKET)
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	v := u.Query()
	v.Set("worker_token", workerToken)
	for _, tt := range taskTypes {
		v.Add("task_types", tt)
	}
	u.RawQuery = v.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		for {
			evt := &common.SocketEvent{}
			if err := conn.ReadJSON(evt); err != nil {
				return
			}
			if evt.Event != common.EventAvailable {
				continue
			}
			select {
			case events <- struct{}{}:
			default:
			}
		}
	}()
	return events, func() { conn.Close() }, nil
}
