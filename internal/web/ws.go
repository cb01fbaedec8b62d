package web

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/p-n-ai/studymate/internal/app"
)

// progressMessage is sent back for every scroll report.
type progressMessage struct {
	Progress float64 `json:"progress"`
}

// handleWebSocket reads scroll events from the content pane and answers
// each with the live reading progress.
func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var ev app.ScrollEvent
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			if !isClosed(err) {
				slog.Warn("websocket read failed", "error", err)
				conn.Close(websocket.StatusUnsupportedData, "invalid scroll event")
			}
			return
		}
		if err := wsjson.Write(ctx, conn, progressMessage{Progress: s.ctrl.OnScroll(ev)}); err != nil {
			slog.Warn("websocket write failed", "error", err)
			return
		}
	}
}

func isClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return errors.Is(err, net.ErrClosed)
}
