package apierr

import (
	"errors"
	"net/http"

	"github.com/mcoot/quintrical/internal/api/response"
	"github.com/mcoot/quintrical/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidBoardSize = "INVALID_BOARD_SIZE"
	CodeInvalidAnchor    = "INVALID_ANCHOR"
	CodeNoSuchOption     = "NO_SUCH_OPTION"
	CodePieceNotOwned    = "PIECE_NOT_OWNED"
	CodeUnknownPiece     = "UNKNOWN_PIECE"
	CodeIllegalMove      = "ILLEGAL_MOVE"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeGameFinished     = "GAME_FINISHED"
	CodeEliminated       = "PLAYER_ELIMINATED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.JSON(w, he.status, ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error is reported with
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Client errors carry the wrapped detail, e.g. which anchor was rejected
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrInvalidBoardSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoardSize, err.Error()}}
	case errors.Is(err, model.ErrInvalidAnchor):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAnchor, err.Error()}}
	case errors.Is(err, model.ErrNoSuchOption):
		return &httpError{http.StatusBadRequest, APIError{CodeNoSuchOption, err.Error()}}
	case errors.Is(err, model.ErrPieceNotOwned):
		return &httpError{http.StatusBadRequest, APIError{CodePieceNotOwned, err.Error()}}
	case errors.Is(err, model.ErrUnknownPiece):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownPiece, err.Error()}}
	case errors.Is(err, model.ErrIllegalMove):
		return &httpError{http.StatusBadRequest, APIError{CodeIllegalMove, err.Error()}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrEliminated):
		return &httpError{http.StatusConflict, APIError{CodeEliminated, "Current player has been eliminated"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
