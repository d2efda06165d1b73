package matchhub

import (
	"errors"
	"time"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 1 * time.Minute

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from the board bridge. Snapshots are
	// small; anything bigger is garbage.
	maxMessageSize = 4096
)

var (
	newline = []byte{'\n'}

	ErrFeedNotAuthorized   = errors.New("feed token not recognized")
	ErrFeedAlreadyAttached = errors.New("a board feed is already attached")
	ErrHubClosed           = errors.New("match hub has shut down")
	ErrMatchFinished       = errors.New("match is finished")
)
