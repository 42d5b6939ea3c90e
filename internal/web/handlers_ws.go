package web

import (
	"bytes"
	"net/http"
	"time"

	"mvp-board/internal/fetcher"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handleResultWS pushes the rendered panel of a result view each time one of
// its fetches commits.
func (s *Server) handleResultWS(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	f, ok := s.views.Get(r.URL.Query().Get("view"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	updates, unsubscribe := f.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	if st := f.State(); st.Status != fetcher.StatusIdle {
		if err := s.writeState(conn, st); err != nil {
			logger.Debug().Err(err).Msg("websocket write")
			return
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case st, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "view closed"),
					time.Now().Add(writeWait))
				return
			}
			if err := s.writeState(conn, st); err != nil {
				logger.Debug().Err(err).Msg("websocket write")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeState(conn *websocket.Conn, st fetcher.State) error {
	var buf bytes.Buffer
	if err := s.templates.ExecutePartial(&buf, "result_panel", BuildResultView(st)); err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(liveMessage{
		Type:       "state",
		Generation: st.Generation,
		HTML:       buf.String(),
	})
}

// readUntilClosed drains the client side so pongs and close frames are
// processed, and closes done once the peer goes away.
func readUntilClosed(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
