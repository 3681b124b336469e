package ws

import (
	"context"
	"encoding/json"

	"resume-evaluator/internal/domain/event"
)

// Notifier adapts a Hub to the events.Publisher interface.
type Notifier struct {
	hub *Hub
}

func NewNotifier(h *Hub) *Notifier {
	return &Notifier{hub: h}
}

func (n *Notifier) Publish(_ context.Context, evt event.Event) error {
	if n == nil || n.hub == nil {
		return nil
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	n.hub.Broadcast(b)
	return nil
}
