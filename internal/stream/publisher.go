package stream

import (
	"log/slog"

	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/services/game"
)

var _ game.EventPublisher = (*Publisher)(nil)

// Publisher forwards game events to the hub of the game they belong to
type Publisher struct {
	hubs   *HubManager
	logger *slog.Logger
}

// NewPublisher creates a Publisher over hubs
func NewPublisher(hubs *HubManager, logger *slog.Logger) *Publisher {
	return &Publisher{
		hubs:   hubs,
		logger: logger.With(slog.String("component", "stream-publisher")),
	}
}

// Publish broadcasts the event to the game's followers. Games nobody is
// following have no hub and the event is dropped. A deleted game's hub is
// closed after the event goes out.
func (p *Publisher) Publish(event model.Event) {
	hub := p.hubs.GetHub(event.GameID)
	if hub == nil {
		return
	}

	data, err := response.Marshal(response.EventFromModel(event))
	if err != nil {
		p.logger.Error("failed to encode event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", string(event.Type)),
			slog.String("error", err.Error()),
		)
		return
	}
	hub.Broadcast(Message{Event: string(event.Type), Data: data})

	if event.Type == model.EventGameDeleted {
		p.hubs.RemoveHub(event.GameID)
	}
}
