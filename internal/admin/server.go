// Read-only HTTP view over engine snapshots
package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"skymesh-sim/internal/sim"
)

//go:embed templates/index.html
var content embed.FS

// Server exposes engine snapshots to dashboards and metric scrapers. It never
// mutates the simulation.
type Server struct {
	Eng *sim.Engine
	tpl *template.Template
}

// NewServer builds a server over the given engine.
func NewServer(eng *sim.Engine) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{Eng: eng, tpl: tpl}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/drones", s.handleDrones)
	mux.HandleFunc("/users", s.handleUsers)
	mux.HandleFunc("/graph", s.handleGraph)
	mux.HandleFunc("/reports", s.handleReports)
	mux.HandleFunc("/notifications", s.handleNotifications)
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		RunID   string
		Tick    int
		Summary any
	}{
		RunID:   s.Eng.RunID(),
		Tick:    s.Eng.Tick(),
		Summary: s.Eng.Metrics(),
	}
	_ = s.tpl.Execute(w, data)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleDrones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Drones())
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Users())
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Graph())
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Reports())
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Notifications())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Eng.Metrics())
}
