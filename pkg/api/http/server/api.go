package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/driftline/dispatch/internal/notify"
	"github.com/driftline/dispatch/internal/utils"
	"github.com/driftline/dispatch/pkg/api"
	"github.com/driftline/dispatch/pkg/api/http/common"
	"github.com/driftline/dispatch/pkg/structs"
)

const (
	wait = 30 * time.Second
)

type Server struct {
	addr       string
	static     string
	debug      bool
	adminToken string
	workDir    string
	tlsCert    string
	tlsKey     string
	svc        api.API
	nt         *notify.Notifier
	exit       chan os.Signal
	httpserver *http.Server
}

func NewServer(addr, static string, debug bool) *Server {
	return &Server{
		static: static,
		addr:   addr,
		debug:  debug,
		exit:   make(chan os.Signal, 1),
	}
}

// WithAdminToken enables the admin surface, gated by the given bearer token.
func (s *Server) WithAdminToken(token string) *Server {
	s.adminToken = token
	return s
}

// WithWorkDir enables the task file endpoints, rooted at the given dir.
func (s *Server) WithWorkDir(dir string) *Server {
	s.workDir = dir
	return s
}

// WithTLS serves over TLS using the given PEM files.
func (s *Server) WithTLS(cert, key string) *Server {
	s.tlsCert = cert
	s.tlsKey = key
	return s
}

func (s *Server) router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// worker protocol
	router.HandleFunc(common.API_WORKER_REGISTER, s.RegisterWorker).Methods(http.MethodPost)
	router.HandleFunc(common.API_WORKER_UNREGISTER, s.UnregisterWorker).Methods(http.MethodPost)
	router.HandleFunc(common.API_WORKER_SOCKET, s.WorkerSocket).Methods(http.MethodGet)
	router.HandleFunc(common.API_TASK_REQUEST, s.RequestTasks).Methods(http.MethodPost)
	router.HandleFunc(common.API_TASK_PROGRESS, s.ReportProgress).Methods(http.MethodPost)
	router.HandleFunc(common.API_TASK_SUCCESS, s.ReportSuccess).Methods(http.MethodPost)
	router.HandleFunc(common.API_TASK_ERROR, s.ReportError).Methods(http.MethodPost)
	router.HandleFunc(common.API_TASK_ABORT, s.AbortTask).Methods(http.MethodPost)
	if s.workDir != "" {
		router.HandleFunc(common.API_TASK_INPUT_FILE, s.DownloadFile).Methods(http.MethodGet)
		router.HandleFunc(common.API_TASK_OUTPUT_FILE, s.UploadFile).Methods(http.MethodPut)
	}

	// admin
	router.HandleFunc(common.API_TASKS, s.admin(s.Tasks)).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc(common.API_TASK_CANCEL, s.admin(s.CancelTask)).Methods(http.MethodPost)
	router.HandleFunc(common.API_WORKERS, s.admin(s.Workers)).Methods(http.MethodGet)
	router.HandleFunc(common.API_WORKER, s.admin(s.DeleteWorker)).Methods(http.MethodDelete)
	router.HandleFunc(common.API_REGISTRATION_TOKENS, s.admin(s.RegistrationTokens)).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc(common.API_REGISTRATION_TOKEN, s.admin(s.DeleteRegistrationToken)).Methods(http.MethodDelete)

	if s.static != "" {
		log.Info().Str("dir", s.static).Msg("serving static files")
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.static)))
	}

	if s.debug {
		log.Info().Msg("debug enabled, adding per-request logging middleware")
		router.Use(loggingMiddleware)
	}

	return router
}

func (s *Server) ServeForever(svc api.API, nt *notify.Notifier) error {
	s.svc = svc
	s.nt = nt
	router := s.router()

	tlsCfg, err := utils.TLSConfig("", s.tlsCert, s.tlsKey)
	if err != nil {
		return err
	}
	s.httpserver = &http.Server{
		Handler:      router,
		Addr:         s.addr,
		TLSConfig:    tlsCfg,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", s.httpserver.Addr).Msg("listening")
		if tlsCfg != nil {
			err = s.httpserver.ListenAndServeTLS(s.tlsCert, s.tlsKey)
		} else {
			err = s.httpserver.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	signal.Notify(s.exit, os.Interrupt)
	<-s.exit

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return s.httpserver.Shutdown(ctx)
}

func (s *Server) Close() error {
	s.exit <- os.Interrupt
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// --- worker protocol handlers ---

func (s *Server) RegisterWorker(w http.ResponseWriter, r *http.Request) {
	req := &structs.RegisterWorkerRequest{}
	if err := unmarshalJson(w, r, req); err != nil {
		return
	}

	resp, err := s.svc.RegisterWorker(req, originAddress(r))
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, resp)
}

func (s *Server) UnregisterWorker(w http.ResponseWriter, r *http.Request) {
	req := &structs.UnregisterWorkerRequest{}
	if err := unmarshalJson(w, r, req); err != nil {
		return
	}

	if err := s.svc.UnregisterWorker(req); err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, map[string]bool{"ok": true})
}

func (s *Server) RequestTasks(w http.ResponseWriter, r *http.Request) {
	req := &structs.RequestTasksRequest{}
	if err := unmarshalJson(w, r, req); err != nil {
		return
	}

	resp, err := s.svc.RequestTasks(req)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, resp)
}

func (s *Server) ReportProgress(w http.ResponseWriter, r *http.Request) {
	req := &structs.ReportProgressRequest{}
	if err := unmarshalJson(w, r, req); err != nil {
		return
	}

	if err := s.svc.ReportProgress(mux.Vars(r)["taskID"], req); err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, map[string]bool{"ok": true})
}

func (s *Server) ReportSuccess(w http.ResponseWriter, r *http.Request) {
	req := &structs.ReportSuccessRequest{}
	if err := unmarshalJson(w, r, req); err != nil {
		return
	}

	if err := s.svc.ReportSuccess(mux.Vars(r)["taskID"], req); err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, map[string]bool{"ok": true})
}

func (s *Server) ReportError(w http.ResponseWriter, r *http.Request) {
	req := &structs.ReportErrorRequest{}
	if err := unmarshalJson(w, r, req); err != nil {
		return
	}

	if err := s.svc.ReportError(mux.Vars(r)["taskID"], req); err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, map[string]bool{"ok": true})
}

func (s *Server) AbortTask(w http.ResponseWriter, r *http.Request) {
	req := &structs.AbortTaskRequest{}
	if err := unmarshalJson(w, r, req); err != nil {
		return
	}

	if err := s.svc.AbortTask(mux.Vars(r)["taskID"], req); err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, map[string]bool{"ok": true})
}

// --- admin handlers ---

func (s *Server) Tasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getTasks(w, r)
	case http.MethodPost:
		s.createTasks(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getTasks(w http.ResponseWriter, r *http.Request) {
	q := &structs.Query{}
	if err := unmarshalQuery(w, r, q); err != nil {
		return
	}

	items, err := s.svc.Tasks(q)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	if s.debug {
		log.Debug().Stringer("url", r.URL).Int("items", len(items)).Msg("query")
	}
	writeJson(w, items)
}

func (s *Server) createTasks(w http.ResponseWriter, r *http.Request) {
	ctr := []*structs.CreateTaskRequest{}
	if err := unmarshalJson(w, r, &ctr); err != nil {
		return
	}

	resp, err := s.svc.CreateTasks(ctr)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, resp)
}

func (s *Server) CancelTask(w http.ResponseWriter, r *http.Request) {
	updated, err := s.svc.CancelTasks([]string{mux.Vars(r)["taskID"]})
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, &common.UpdateResponse{Updated: updated})
}

func (s *Server) Workers(w http.ResponseWriter, r *http.Request) {
	q := &structs.Query{}
	if err := unmarshalQuery(w, r, q); err != nil {
		return
	}

	items, err := s.svc.Workers(q)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, items)
}

func (s *Server) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteWorker(mux.Vars(r)["workerID"]); err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, map[string]bool{"ok": true})
}

func (s *Server) RegistrationTokens(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := &structs.Query{}
		if err := unmarshalQuery(w, r, q); err != nil {
			return
		}
		items, err := s.svc.RegistrationTokens(q)
		if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}
		writeJson(w, items)
	case http.MethodPost:
		rt, err := s.svc.CreateRegistrationToken()
		if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}
		writeJson(w, rt)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) DeleteRegistrationToken(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteRegistrationToken(mux.Vars(r)["tokenID"]); err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, map[string]bool{"ok": true})
}

func writeJson(w http.ResponseWriter, obj interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
