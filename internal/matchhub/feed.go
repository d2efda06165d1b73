package matchhub

import (
	"time"

	"github.com/gorilla/websocket"
)

// Feed is the websocket connection from the board bridge. Exactly one feed
// may be attached to a hub at a time; it pushes raw camera snapshots which
// the hub reconciles into events.
type Feed struct {
	Hub   *Hub
	Conn  *websocket.Conn
	Close chan error
}

func NewFeed(hub *Hub, conn *websocket.Conn) *Feed {
	return &Feed{
		Hub:   hub,
		Conn:  conn,
		Close: make(chan error, 1),
	}
}

func (f *Feed) ReadSnapshots() {
	defer func() {
		f.Hub.detachFeed(f)
		_ = f.Conn.Close()
	}()

	f.Conn.SetReadLimit(maxMessageSize)
	_ = f.Conn.SetReadDeadline(time.Now().Add(pongWait))
	f.Conn.SetPongHandler(func(string) error {
		_ = f.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := f.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				f.Hub.pushError(err)
			}
			return
		}

		snap, parseErrs, err := parseSnapshot(raw)
		if err != nil {
			// A malformed snapshot never stops the feed. The bridge will
			// send another one within a second.
			f.Hub.pushError(err)
			continue
		}
		for _, perr := range parseErrs {
			f.Hub.pushError(perr)
		}

		f.Hub.pushSnapshot(snap)
	}
}

func (f *Feed) KeepAlive() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = f.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = f.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := f.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case closeErr := <-f.Close:
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, closeErr.Error())
			_ = f.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = f.Conn.WriteMessage(websocket.CloseMessage, msg)
			return
		}
	}
}
