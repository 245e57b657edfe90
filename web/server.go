// ABOUTME: Read-only HTTP viewer for a card collection behind a single chi router.
// ABOUTME: Serves HTML pages and JSON endpoints over one snapshot loaded at startup.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/2389-research/binder/collection"
	"github.com/2389-research/binder/report"
	"github.com/2389-research/binder/store"
)

// ErrNonLoopbackBind is returned when the configured listen address would
// expose the viewer beyond this machine.
var ErrNonLoopbackBind = errors.New("refusing to bind non-loopback address")

// Server serves a read-only view of one collection over HTTP. The collection
// is loaded once at startup; changes written to the spreadsheet afterwards
// are not picked up until the server restarts.
type Server struct {
	table     *collection.Table
	templates *TemplateEngine
	router    chi.Router
	addr      string
	file      string // display name of the collection file
}

// ServerConfig holds the configuration for the viewer server.
type ServerConfig struct {
	Addr           string // listen address (default: "127.0.0.1:2389")
	CollectionPath string // spreadsheet to load and serve
}

// NewServer creates a new Server with the given configuration. It validates
// the listen address, loads the collection snapshot, and sets up routing.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:2389"
	}
	if cfg.CollectionPath == "" {
		return nil, fmt.Errorf("CollectionPath must not be empty")
	}
	if err := checkLoopback(cfg.Addr); err != nil {
		return nil, err
	}

	tbl, err := store.Load(cfg.CollectionPath)
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	s := &Server{
		table:     tbl,
		templates: tmpl,
		addr:      cfg.Addr,
		file:      filepath.Base(cfg.CollectionPath),
	}

	s.router = s.buildRouter()
	return s, nil
}

// checkLoopback rejects listen addresses outside the loopback interface.
// The viewer has no authentication, so it only ever listens locally.
func checkLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("%w: %s", ErrNonLoopbackBind, addr)
	}
	return nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured address with
// appropriate timeouts to prevent resource exhaustion from slow clients.
func (s *Server) ListenAndServe() error {
	log.Printf("component=web action=listen addr=%s file=%s records=%d",
		s.addr, s.file, s.table.Len())
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	return srv.ListenAndServe()
}

// buildRouter constructs the chi router with all routes and middleware.
// Every route is a GET; the viewer never mutates the collection.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/stats", s.handleStats)
	r.Get("/health", s.handleHealth)
	r.Get("/api/records", s.handleAPIRecords)
	r.Get("/api/stats", s.handleAPIStats)
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	return r
}

// handleIndex renders the record table, optionally narrowed by ?q=.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	view := s.table.Search(q)

	data := PageData{
		Title:    "Collection",
		File:     s.file,
		Query:    q,
		Records:  len(view),
		TotalQty: totalQuantity(view),
		Entries:  view,
	}
	if err := s.templates.Render(w, "index.html", data); err != nil {
		log.Printf("error rendering index: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleStats renders the statistics report, optionally narrowed by the
// same filter parameters the JSON endpoint takes.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	filter := statsFilterFromQuery(r)
	stats := collection.ComputeStats(s.table.Records(), filter)
	md := report.Markdown(s.file, stats, filter, time.Now())

	data := PageData{
		Title:     "Statistics",
		File:      s.file,
		StatsHTML: report.HTML(md),
	}
	if err := s.templates.Render(w, "stats.html", data); err != nil {
		log.Printf("error rendering stats: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleAPIRecords returns the records as a JSON array, optionally narrowed
// by ?q=. The shape matches the JSON export format.
func (s *Server) handleAPIRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	view := s.table.Search(q)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := store.ExportJSON(w, view); err != nil {
		log.Printf("error encoding records: %v", err)
	}
}

// handleAPIStats returns aggregate statistics as JSON, optionally narrowed
// by color, rarity, kind, and alt_art parameters.
func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	filter := statsFilterFromQuery(r)
	stats := collection.ComputeStats(s.table.Records(), filter)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}

// statsFilterFromQuery reads the optional filter parameters shared by the
// stats page and the stats API.
func statsFilterFromQuery(r *http.Request) collection.StatsFilter {
	q := r.URL.Query()
	return collection.StatsFilter{
		Color:      q.Get("color"),
		Rarity:     q.Get("rarity"),
		Kind:       q.Get("kind"),
		AltArtOnly: q.Get("alt_art") == "1" || q.Get("alt_art") == "true",
	}
}

func totalQuantity(view collection.View) int {
	total := 0
	for _, e := range view {
		total += e.Card.Quantity
	}
	return total
}
