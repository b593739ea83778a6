package request

// CreateGameRequest is the request body for creating a game. Zero sizes
// fall back to the server defaults.
type CreateGameRequest struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// PlaceRequest is the request body for committing a placement. Option
// indexes the list returned by the placements endpoint for the same
// anchor and piece.
type PlaceRequest struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Piece  string `json:"piece"`
	Option int    `json:"option"`
}

// AutoplayRequest is the request body for automatic play
type AutoplayRequest struct {
	MaxTurns int `json:"max_turns,omitempty"`
}
