package web

import (
	"errors"
	"net/http"
	"net/url"

	"mvp-board/internal/model"
	"mvp-board/internal/query"

	"github.com/rs/zerolog"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := IndexView{
		BaseView: s.baseView("Search"),
		Form:     formView(query.FieldsFromQuery(model.DefaultQuery())),
	}
	if err := s.templates.Render(w, "index.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleQuerySubmit validates the form, publishes the query and redirects to
// a result URL that carries the whole query.
func (s *Server) handleQuerySubmit(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	fields := query.Fields{
		Year:             r.PostFormValue(query.ParamYear),
		LowerPoints:      r.PostFormValue(query.ParamLowerPoints),
		LowerEfg:         r.PostFormValue(query.ParamLowerEfg),
		LowerGamesPlayed: r.PostFormValue(query.ParamLowerGamesPlayed),
	}
	q, err := query.Build(fields)
	if err != nil {
		var verr *query.ValidationError
		if !errors.As(err, &verr) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		form := formView(fields)
		form.YearInvalid = verr.Field == query.ParamYear
		form.Error = verr.Message
		view := IndexView{BaseView: s.baseView("Search"), Form: form}
		if err := s.templates.RenderStatus(w, http.StatusUnprocessableEntity, "index.html", view); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	target := resultURL(q)
	published, err := s.store.PublishQuery(r.Context(), q)
	if err != nil {
		logger.Warn().Err(err).Str("year", q.Year).Msg("publish query")
	} else {
		target += "&ref=" + url.QueryEscape(published.ID)
	}
	redirect(w, r, target)
}

func formView(fields query.Fields) FormView {
	return FormView{
		Year:             fields.Year,
		LowerPoints:      fields.LowerPoints,
		LowerEfg:         fields.LowerEfg,
		LowerGamesPlayed: fields.LowerGamesPlayed,
	}
}

func resultURL(q model.Query) string {
	return "/result?" + query.Serialize(q)
}
