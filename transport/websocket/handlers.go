package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var (
	errBoardRequired  = errors.New("board is required")
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("row and col are required")
)

func (that *Server) handleEngineMove(ctx context.Context, payload *Payload) (ResponsePayload, error) {
	if payload.Board == nil {
		return ResponsePayload{}, errBoardRequired
	}

	level := tictactoe.LevelMinimax
	if payload.Level != nil {
		level = *payload.Level
	}

	result, err := that.uGame.SuggestMove(ctx, payload.Board, payload.Player, level)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to suggest move: %w", err)
	}

	return ResponsePayload{
		Move:  &result.Move,
		Score: tictactoe.FormatScore(result.Score),
	}, nil
}

func (that *Server) handleNewGame(ctx context.Context, payload *Payload) (ResponsePayload, error) {
	game, err := that.uGame.NewGame(ctx, usecase.NewGameRequest{
		Size:     payload.Size,
		Mode:     payload.Mode,
		AIPlayer: payload.AIPlayer,
		AILevel:  payload.AILevel,
	})
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to create a new game: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID)

	return ResponsePayload{Game: game}, nil
}

func (that *Server) handleGetGame(ctx context.Context, payload *Payload) (ResponsePayload, error) {
	if payload.GameID == "" {
		return ResponsePayload{}, errGameIDRequired
	}

	game, err := that.uGame.GetGame(ctx, payload.GameID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", payload.GameID, err)
	}

	return ResponsePayload{Game: game}, nil
}

func (that *Server) handleGameTurn(ctx context.Context, payload *Payload) (ResponsePayload, error) {
	if payload.GameID == "" {
		return ResponsePayload{}, errGameIDRequired
	}

	if payload.Row == nil || payload.Col == nil {
		return ResponsePayload{}, errCellRequired
	}

	game, err := that.uGame.MakeTurn(ctx, payload.GameID, *payload.Row, *payload.Col)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", payload.GameID, err)
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "game_id", game.ID, "winner", game.Winner.String())
	}

	return ResponsePayload{Game: game}, nil
}

func (that *Server) handleGameRestart(ctx context.Context, payload *Payload) (ResponsePayload, error) {
	if payload.GameID == "" {
		return ResponsePayload{}, errGameIDRequired
	}

	game, err := that.uGame.Restart(ctx, payload.GameID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", payload.GameID, err)
	}

	return ResponsePayload{Game: game}, nil
}

func (that *Server) handleGameMode(ctx context.Context, payload *Payload) (ResponsePayload, error) {
	if payload.GameID == "" {
		return ResponsePayload{}, errGameIDRequired
	}

	game, err := that.uGame.ToggleMode(ctx, payload.GameID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", payload.GameID, err)
	}

	return ResponsePayload{Game: game}, nil
}

func (that *Server) handleGameLeave(ctx context.Context, payload *Payload) (ResponsePayload, error) {
	if payload.GameID == "" {
		return ResponsePayload{}, errGameIDRequired
	}

	if err := that.uGame.LeaveGame(ctx, payload.GameID); err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", payload.GameID, err)
	}

	that.logger.Info("player left", "game_id", payload.GameID)

	return ResponsePayload{}, nil
}
