package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mvp-board/internal/fetcher"
	"mvp-board/internal/model"
	"mvp-board/internal/query"

	"github.com/rs/zerolog"
)

// resolveQuery prefers the query published at submit time and falls back to
// the URL parameters, so a shared link works on its own.
func (s *Server) resolveQuery(r *http.Request) (model.Query, bool) {
	values := r.URL.Query()
	if ref := strings.TrimSpace(values.Get("ref")); ref != "" {
		if published, ok := s.store.GetQuery(r.Context(), ref); ok {
			return published.Query, true
		}
	}
	q, err := query.Parse(values)
	if err != nil {
		return model.Query{}, false
	}
	return q, true
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	q, ok := s.resolveQuery(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	viewID, f := s.views.Create()
	_, st, err := s.submitAndAwait(r.Context(), f, q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view := ResultPageView{
		BaseView: s.baseView("MVP Scores " + q.Year),
		ViewID:   viewID,
		Form:     formView(query.FieldsFromQuery(q)),
		ShareURL: resultURL(q),
		Result:   BuildResultView(st),
	}
	if err := s.templates.Render(w, "result.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleResultPanel switches an open result view to a refined query and
// returns the re-rendered panel. An empty year leaves the view untouched.
func (s *Server) handleResultPanel(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	f, ok := s.views.Get(r.URL.Query().Get("view"))
	if !ok {
		redirect(w, r, resultURL(q))
		return
	}

	gen, st, err := s.submitAndAwait(r.Context(), f, q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// A timed-out wait still shows the previous commit; the address bar
	// follows the query the view is now fetching.
	shown := st.Query
	if st.Status == fetcher.StatusIdle || st.Generation < gen {
		if active, ok := f.Active(); ok {
			shown = active
		} else {
			shown = q
		}
	}
	w.Header().Set("HX-Push-Url", resultURL(shown))
	if err := s.templates.RenderPartial(w, "result_panel", BuildResultView(st)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// submitAndAwait makes q the view's active query and waits up to RenderWait
// for a commit. On timeout the current state is returned as is; the page
// picks up the result over the websocket.
func (s *Server) submitAndAwait(ctx context.Context, f *fetcher.Fetcher, q model.Query) (uint64, fetcher.State, error) {
	gen, err := f.Submit(q)
	if err != nil {
		return 0, fetcher.State{}, err
	}
	waitCtx, cancel := context.WithTimeout(ctx, s.opts.RenderWait)
	defer cancel()

	st, err := f.Await(waitCtx, gen)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		zerolog.Ctx(ctx).Debug().Err(err).Uint64("generation", gen).Msg("await result")
	}
	return gen, st, nil
}
