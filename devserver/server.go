package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"protoforge/catalog"
	"protoforge/prototype"
	"protoforge/schema"
)

// Server wires the loader, type table, and event hub behind HTTP endpoints.
type Server struct {
	table  *prototype.Table
	loader *catalog.Loader
	hub    *Hub
	log    *zap.Logger
}

func New(table *prototype.Table, loader *catalog.Loader, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		table:  table,
		loader: loader,
		hub:    NewHub(log),
		log:    log,
	}
	loader.Registry().Subscribe(s.hub.Broadcast)
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /schema.json", s.handleSchema)
	mux.HandleFunc("GET /prototypes", s.handlePrototypes)
	mux.HandleFunc("POST /reload", s.handleReload)
	mux.HandleFunc("GET /events", s.hub.HandleEvents)
	return mux
}

func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info("dev server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, schema.Generate(s.table))
}

func (s *Server) handlePrototypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"records": s.loader.Registry().Summaries(),
	})
}

type reloadResponse struct {
	Records      int      `json:"records"`
	RecordErrors []string `json:"recordErrors,omitempty"`
	Unresolved   []string `json:"unresolved,omitempty"`
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	report, err := s.loader.Reload()
	if err != nil {
		s.log.Error("reload failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		Records:      report.Records,
		RecordErrors: errorStrings(report.RecordErrors),
		Unresolved:   errorStrings(report.Diagnostics),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
