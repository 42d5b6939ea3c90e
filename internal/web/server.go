package web

import (
	"context"
	"net/http"
	"time"

	"mvp-board/internal/fetcher"
	"mvp-board/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const defaultRenderWait = 10 * time.Second

type Options struct {
	// RenderWait bounds how long a page waits for the first result before
	// rendering the loading state and leaving the rest to the websocket.
	RenderWait  time.Duration
	ViewTTL     time.Duration
	CORSOrigins []string
	IsDev       bool
}

type Server struct {
	store     store.Store
	templates *Templates
	source    fetcher.Source
	views     *ViewRegistry
	opts      Options
}

// NewServer wires the form and result views. ctx scopes every scoring request
// started by a result view.
func NewServer(ctx context.Context, store store.Store, templates *Templates, source fetcher.Source, opts Options) *Server {
	if opts.RenderWait <= 0 {
		opts.RenderWait = defaultRenderWait
	}
	return &Server{
		store:     store,
		templates: templates,
		source:    source,
		views:     NewViewRegistry(ctx, source, opts.ViewTTL),
		opts:      opts,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/", s.handleIndex)
	r.Post("/", s.handleQuerySubmit)
	r.Get("/result", s.handleResult)
	r.Get("/result/panel", s.handleResultPanel)
	r.Get("/result/ws", s.handleResultWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/results", s.handleAPIResults)
	})

	return r
}

// Close stops every open result view.
func (s *Server) Close() {
	s.views.Close()
}

func (s *Server) baseView(title string) BaseView {
	return BaseView{Title: title, IsDev: s.opts.IsDev}
}
