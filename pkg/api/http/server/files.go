package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Task file endpoints. Both directions are authorized by the lease's
// capability token alone; a worker can only touch files of a task it
// currently holds.

// capabilityToken pulls the capability out of a file request. It may arrive
// as a query param (for URLs embedded in payloads) or a header.
func capabilityToken(r *http.Request) string {
	if c := r.URL.Query().Get("capability"); c != "" {
		return c
	}
	return r.Header.Get("X-Capability-Token")
}

// taskFilePath maps a request onto the work dir. The file name is flattened
// with filepath.Base so the URL cannot walk out of the task's directory.
func (s *Server) taskFilePath(taskID, kind, name string) string {
	return filepath.Join(s.workDir, taskID, kind, filepath.Base(name))
}

func (s *Server) DownloadFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	t, err := s.svc.AuthorizeFileAccess(vars["taskID"], capabilityToken(r))
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	http.ServeFile(w, r, s.taskFilePath(t.ID, "input", vars["name"]))
}

func (s *Server) UploadFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	t, err := s.svc.AuthorizeFileAccess(vars["taskID"], capabilityToken(r))
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	path := s.taskFilePath(t.ID, "output", vars["name"])
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	f, err := os.Create(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	n, err := io.Copy(f, r.Body)
	if err != nil {
		os.Remove(path)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("task", t.ID).Str("file", filepath.Base(path)).Int64("bytes", n).Msg("stored output file")
	writeJson(w, map[string]bool{"ok": true})
}
