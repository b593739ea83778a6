package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated  EventType = "game_created"
	EventTurnPlayed   EventType = "turn_played"
	EventGameFinished EventType = "game_finished"
	EventGameDeleted  EventType = "game_deleted"
)

// Event is published after every state change so UIs can redraw
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	Payload   any // Type-specific data
}

// TurnPlayedPayload contains data for turn played events
type TurnPlayedPayload struct {
	Turn        TurnResult
	Fingerprint string
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	Standings []Standing
	Leaders   []Color
}
