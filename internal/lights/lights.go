// Package lights pushes game triggers to a venue lighting controller, a
// WLED box or anything else that accepts a small JSON POST. Delivery is
// fire-and-forget; a dead controller must never slow a match down.
package lights

import (
	"bytes"
	json2 "encoding/json"
	"fmt"
	"net/http"
	"time"

	"DartTableApi/internal/game"
	"DartTableApi/internal/jsonlog"
)

type Notifier struct {
	endpoint string
	client   *http.Client
	logger   *jsonlog.Logger
}

func New(endpoint string, logger *jsonlog.Logger) *Notifier {
	return &Notifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 2 * time.Second},
		logger:   logger,
	}
}

// Notify posts the trigger in the background. Errors are logged and
// swallowed; the caller is the hub loop and must not wait on the network.
func (n *Notifier) Notify(trigger game.Trigger) {
	go func() {
		if err := n.post(trigger); err != nil {
			n.logger.PrintError(err, map[string]string{
				"trigger":  string(trigger),
				"endpoint": n.endpoint,
			})
		}
	}()
}

func (n *Notifier) post(trigger game.Trigger) error {
	body, err := json2.Marshal(map[string]string{"trigger": string(trigger)})
	if err != nil {
		return err
	}

	resp, err := n.client.Post(n.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("lights controller responded %d", resp.StatusCode)
	}
	return nil
}
