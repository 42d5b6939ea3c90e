package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"mvp-board/internal/fetcher"
	"mvp-board/internal/model"
	"mvp-board/internal/query"
)

type apiResult struct {
	State   string                `json:"state"`
	Query   *model.Query          `json:"query,omitempty"`
	Players *[]model.PlayerResult `json:"players,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// handleAPIResults runs one fetch for the URL's query and returns the
// resulting state as JSON.
func (s *Server) handleAPIResults(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(r.URL.Query())
	if err != nil {
		var verr *query.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, apiResult{State: fetcher.StatusFailure.String(), Error: verr.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, apiResult{State: fetcher.StatusFailure.String(), Error: err.Error()})
		return
	}

	f := fetcher.New(r.Context(), s.source)
	defer f.Close()
	gen, err := f.Submit(q)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResult{State: fetcher.StatusFailure.String(), Error: err.Error()})
		return
	}
	st, err := f.Await(r.Context(), gen)
	if err != nil {
		writeJSON(w, http.StatusGatewayTimeout, apiResult{State: fetcher.StatusFailure.String(), Query: &q, Error: fetcher.GenericFailureMessage})
		return
	}

	resp := apiResult{State: st.Status.String(), Query: &st.Query}
	switch st.Status {
	case fetcher.StatusSuccess:
		resp.Players = &st.Players
	case fetcher.StatusFailure:
		resp.Error = st.Message
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
