package matchhub

import (
	"time"

	"github.com/gorilla/websocket"
)

// Watcher is a read-only websocket client, a scoreboard screen or a phone
// following the match. It receives full state documents and can never send
// anything into the game.
type Watcher struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Receive chan []byte
	Error   chan error
}

func NewWatcher(hub *Hub, conn *websocket.Conn) *Watcher {
	return &Watcher{
		Hub:     hub,
		Conn:    conn,
		Receive: make(chan []byte, 16),
		Error:   make(chan error, 1),
	}
}

func (w *Watcher) WriteStates() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		w.Hub.leaveWatcher(w)
		_ = w.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-w.Receive:
			_ = w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = w.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			writer, err := w.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = writer.Write(message)

			// Collapse any queued states into the same frame. Only the
			// latest one matters to a scoreboard anyway.
			n := len(w.Receive)
			for i := 0; i < n; i++ {
				_, _ = writer.Write(newline)
				_, _ = writer.Write(<-w.Receive)
			}

			if err := writer.Close(); err != nil {
				return
			}
		case <-ticker.C:
			_ = w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case closeErr := <-w.Error:
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, closeErr.Error())
			_ = w.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = w.Conn.WriteMessage(websocket.CloseMessage, msg)
			return
		}
	}
}

// ReadPongs drains the connection so control frames get processed. Any
// inbound data frame from a watcher is discarded.
func (w *Watcher) ReadPongs() {
	defer func() {
		w.Hub.leaveWatcher(w)
		_ = w.Conn.Close()
	}()

	w.Conn.SetReadLimit(maxMessageSize)
	_ = w.Conn.SetReadDeadline(time.Now().Add(pongWait))
	w.Conn.SetPongHandler(func(string) error {
		_ = w.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := w.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
