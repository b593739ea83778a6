package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quintrical/internal/dependencies/mocks"
	"github.com/mcoot/quintrical/internal/model"
	"github.com/mcoot/quintrical/internal/testutil"
)

func TestPublisherIgnoresGamesWithoutFollowers(t *testing.T) {
	m := NewHubManager(mocks.NewMockIDs(), testutil.NopLogger())
	p := NewPublisher(m, testutil.NopLogger())

	p.Publish(model.Event{Type: model.EventGameCreated, GameID: "nobody"})

	assert.Nil(t, m.GetHub("nobody"))
}

func TestPublisherEncodesTurnEvents(t *testing.T) {
	m := NewHubManager(mocks.NewMockIDs(), testutil.NopLogger())
	defer m.Close()
	p := NewPublisher(m, testutil.NopLogger())

	hub := m.GetOrCreateHub("g1")
	c := newClient("c", transportSSE)
	require.True(t, hub.Register(c))

	p.Publish(model.Event{
		Type:      model.EventTurnPlayed,
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		GameID:    "g1",
		Payload: model.TurnPlayedPayload{
			Turn: model.TurnResult{
				Step:          3,
				Player:        model.ColorBlue,
				Outcome:       model.OutcomeEliminated,
				Possibilities: 0,
				Residual:      17,
			},
			Fingerprint: "abc123",
		},
	})

	msg, ok := receive(t, c)
	require.True(t, ok)
	assert.Equal(t, "turn_played", msg.Event)
	assert.JSONEq(t, `{
		"type": "turn_played",
		"timestamp": "2024-01-01T00:00:00Z",
		"game_id": "g1",
		"fingerprint": "abc123",
		"turn": {
			"step": 3,
			"player": "blue",
			"outcome": "eliminated",
			"possibilities": 0,
			"residual": 17,
			"game_over": false
		}
	}`, string(msg.Data))
}

func TestPublisherClosesHubOnDelete(t *testing.T) {
	m := NewHubManager(mocks.NewMockIDs(), testutil.NopLogger())
	p := NewPublisher(m, testutil.NopLogger())

	hub := m.GetOrCreateHub("g1")
	c := newClient("c", transportSSE)
	require.True(t, hub.Register(c))

	p.Publish(model.Event{Type: model.EventGameDeleted, GameID: "g1"})

	msg, ok := receive(t, c)
	require.True(t, ok)
	assert.Equal(t, "game_deleted", msg.Event)

	_, ok = receive(t, c)
	assert.False(t, ok)
	assert.Nil(t, m.GetHub("g1"))
}
