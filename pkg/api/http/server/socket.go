package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/driftline/dispatch/pkg/api/http/common"
)

const (
	pingFrequency = 30 * time.Second
	writeTimeout  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WorkerSocket is the availability push channel. Workers authenticate with
// their worker token, optionally filter by task type, and receive bare
// "available" events: a hint to request tasks, never an assignment.
func (s *Server) WorkerSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("worker_token")
	if token == "" {
		token = bearerToken(r)
	}
	wk, err := s.svc.AuthenticateWorker(token)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		log.Debug().Err(err).Str("worker", wk.ID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sig, detach := s.nt.Attach(r.URL.Query()["task_types"])
	defer detach()
	log.Debug().Str("worker", wk.ID).Msg("worker socket attached")

	// reader: we expect nothing from the client, but reading is how we
	// notice the connection died
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingFrequency)
	defer ping.Stop()
	for {
		select {
		case <-sig:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(&common.SocketEvent{Event: common.EventAvailable}); err != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
