package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const maxBodySize = 1 << 16

var errMissingField = errors.New("missing required field")

type uGame interface {
	NewGame(ctx context.Context, req usecase.NewGameRequest) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	ToggleMode(ctx context.Context, id string) (*entity.Game, error)
	LeaveGame(ctx context.Context, id string) error

	SuggestMove(ctx context.Context, board *entity.Board, player entity.Cell, level int) (tictactoe.Result, error)
}

type moveRequest struct {
	Board  *entity.Board `json:"board"`
	Player entity.Cell   `json:"player"`
	Level  *int          `json:"level,omitempty"`
}

type moveResponse struct {
	Move  entity.Move `json:"move"`
	Score string      `json:"score"`
}

type newGameRequest struct {
	Size     int         `json:"size,omitempty"`
	Mode     entity.Mode `json:"mode,omitempty"`
	AIPlayer entity.Cell `json:"ai_player,omitempty"`
	AILevel  *int        `json:"ai_level,omitempty"`
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	uGame  uGame
}

func newHandlers(logger *slog.Logger, uGame uGame) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

// suggestMove - answers with the engine move for a board snapshot.
func (that *handlers) suggestMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, "suggestMove", err)
		return
	}

	if req.Board == nil {
		that.writeError(w, "suggestMove", fmt.Errorf("%w: board", errMissingField))
		return
	}

	level := tictactoe.LevelMinimax
	if req.Level != nil {
		level = *req.Level
	}

	result, err := that.uGame.SuggestMove(r.Context(), req.Board, req.Player, level)
	if err != nil {
		that.writeError(w, "suggestMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{
		Move:  result.Move,
		Score: tictactoe.FormatScore(result.Score),
	})
}

func (that *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, "newGame", err)
		return
	}

	game, err := that.uGame.NewGame(r.Context(), usecase.NewGameRequest{
		Size:     req.Size,
		Mode:     req.Mode,
		AIPlayer: req.AIPlayer,
		AILevel:  req.AILevel,
	})
	if err != nil {
		that.writeError(w, "newGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "getGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, "makeTurn", fmt.Errorf("%w: row and col", errMissingField))
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), r.PathValue("id"), *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) restart(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.Restart(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "restart", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) toggleMode(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.ToggleMode(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "toggleMode", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) leaveGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.LeaveGame(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, "leaveGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody treats an empty body as an empty object.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode request: %w", err)
	}

	return nil
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	} else {
		that.logger.Debug("request rejected", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var sizeErr *http.MaxBytesError

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNoAvailableMoves):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidBoardSize),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidPlayer),
		errors.Is(err, apperror.ErrInvalidLevel),
		errors.Is(err, apperror.ErrInvalidMode),
		errors.Is(err, apperror.ErrInvalidDepth),
		errors.Is(err, errMissingField),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.As(err, &sizeErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
