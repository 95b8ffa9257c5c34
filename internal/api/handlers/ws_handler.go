package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/hirea/internal/state"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
	wsBuffer     = 32
)

type WSHandler struct {
	state    *state.JobsState
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(st *state.JobsState, l *logrus.Logger, allowOrigin func(r *http.Request) bool) *WSHandler {
	if allowOrigin == nil {
		allowOrigin = func(r *http.Request) bool { return true }
	}
	return &WSHandler{
		state: st,
		log:   l,
		upgrader: websocket.Upgrader{
			CheckOrigin: allowOrigin,
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.c.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

// StateWS streams state events. The first frame is a snapshot so the
// client does not need a separate GET.
func (h *WSHandler) StateWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}

	// slow clients drop events rather than block the state
	events := make(chan state.Event, wsBuffer)
	unsubscribe := h.state.Subscribe(func(ev state.Event) {
		select {
		case events <- ev:
		default:
			h.log.WithField("type", ev.Type).Warn("ws client lagging, event dropped")
		}
	})
	defer unsubscribe()

	snap, _ := json.Marshal(gin.H{"type": "snapshot", "state": h.state.Snapshot()})
	if err := wc.writeText(snap); err != nil {
		return
	}

	// reader: only control frames are expected; it ends on close
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-readDone:
			return
		case <-c.Request.Context().Done():
			return
		case ev := <-events:
			b, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := wc.writeText(b); err != nil {
				return
			}
		case <-ticker.C:
			if err := wc.ping(); err != nil {
				return
			}
		}
	}
}
