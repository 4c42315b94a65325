package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/ehdc-llpg/linkage/internal/obslog"
)

// Server is a small read-only HTTP server exposing one linkage run's CSV
// reports, generalising internal/web/server.go +
// internal/web/handlers from address-search endpoints over Postgres to
// generic-record report endpoints over a run directory's CSV files.
type Server struct {
	outDir string
	log *obslog.Logger
	router *mux.Router
	httpServer *http.Server
}

// NewServer builds a Server over one driver run's output directory
// (the directory a Driver.WriteAll call populated).
func NewServer(outDir string, log *obslog.Logger) *Server {
	s := &Server{outDir: outDir, log: log}
	s.setupRoutes()
	return s
}

// setupRoutes wires /reports/{name} (raw CSV passthrough) and
// /groups/{id} (one group's rows as JSON), replacing
// address-search-specific /api/search/* routes with report endpoints
// generic over any linkage run.
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.HandleFunc("/reports/{name}", s.getReport).Methods(http.MethodGet)
	s.router.HandleFunc("/groups/{id}", s.getGroup).Methods(http.MethodGet)
	s.router.Use(s.logging)
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			s.log.Debugf("report server: %s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

// getReport streams one report CSV (e.g. match-pairs.csv, groups.csv)
// from the run directory. Rejects any name containing a path separator
// so the handler can't be used to read files outside outDir.
func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if strings.ContainsAny(name, `/\`) {
		http.Error(w, "invalid report name", http.StatusBadRequest)
		return
	}
	path := filepath.Join(s.outDir, name)
	f, err := os.Open(path)
	if err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/csv")
	if _, err := io.Copy(w, f); err != nil {
		s.log.Warnf("report server: streaming %s: %v", name, err)
	}
}

// getGroup returns groups.csv rows whose GroupID column matches {id} as
// a JSON array of field maps.
func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	f, err := os.Open(filepath.Join(s.outDir, "groups.csv"))
	if err != nil {
		http.Error(w, "groups.csv not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		http.Error(w, "groups.csv empty", http.StatusInternalServerError)
		return
	}

	var rows []map[string]string
	for {
		rec, err := reader.Read()
		if err != nil {
			break
		}
		if len(rec) == 0 || rec[0] != id {
			continue
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		http.Error(w, "group not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// Addr binds the server to the given host:port, matching
// server.go Start method's signature shape (Config.Server.Host/Port)
// but taking an address directly since this package has no web.Config.
func (s *Server) Addr(host string, port int) {
	s.httpServer = &http.Server{
		Addr: fmt.Sprintf("%s:%d", host, port),
		Handler: s.router,
		ReadTimeout: 15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

// ListenAndServe starts the HTTP server, blocking until it errors or
// ctx is cancelled (in which case it shuts down gracefully).
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.httpServer == nil {
		s.Addr("localhost", 8080)
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("report server: listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
