package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mvp-board/internal/model"
	"mvp-board/internal/query"

	"github.com/rs/zerolog"
)

const resultPath = "/result"

// Client talks to the external scoring endpoint that filters players and
// computes MVP scores.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a scoring client. A nil httpClient uses a client with the
// transport's default timeouts.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ResultURL returns the request URL for q.
func (c *Client) ResultURL(q model.Query) string {
	return c.baseURL + resultPath + "?" + query.Serialize(q)
}

// Results issues one GET for q. The error is a *RequestError, *DecodeError or
// *ApplicationError.
func (c *Client) Results(ctx context.Context, q model.Query) ([]model.PlayerResult, error) {
	logger := zerolog.Ctx(ctx)
	target := c.ResultURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("read response: %w", err)}
	}
	logger.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("scoring response")

	players, err := decodeResponse(body)
	if err != nil {
		var appErr *ApplicationError
		if errors.As(err, &appErr) {
			appErr.StatusCode = resp.StatusCode
		}
		return nil, err
	}
	return players, nil
}

type playerRecord struct {
	Player   *string  `json:"Player"`
	MVPScore *float64 `json:"MVP Score"`
	MVP      bool     `json:"MVP"`
}

type errorEnvelope struct {
	Error *string `json:"error"`
}

// decodeResponse reads either the success envelope (a JSON array of player
// records) or the error envelope ({"error": "..."}). Anything else is a
// DecodeError.
func decodeResponse(body []byte) ([]model.PlayerResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &DecodeError{Err: errors.New("empty body")}
	}

	switch trimmed[0] {
	case '[':
		var records []playerRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("player list: %w", err)}
		}
		players := make([]model.PlayerResult, 0, len(records))
		for i, rec := range records {
			if rec.Player == nil || rec.MVPScore == nil {
				return nil, &DecodeError{Err: fmt.Errorf("player record %d: missing Player or MVP Score", i)}
			}
			players = append(players, model.PlayerResult{
				Player:   *rec.Player,
				MVPScore: *rec.MVPScore,
				IsMVP:    rec.MVP,
			})
		}
		return players, nil
	case '{':
		var envelope errorEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("error envelope: %w", err)}
		}
		if envelope.Error == nil || strings.TrimSpace(*envelope.Error) == "" {
			return nil, &DecodeError{Err: errors.New("object without error message")}
		}
		return nil, &ApplicationError{Message: *envelope.Error}
	}
	return nil, &DecodeError{Err: fmt.Errorf("unexpected payload starting with %q", trimmed[0])}
}
