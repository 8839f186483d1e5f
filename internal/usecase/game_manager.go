package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type moveCache interface {
	Get(ctx context.Context, board *entity.Board, player entity.Cell, depth int) (tictactoe.Result, error)
	Set(ctx context.Context, board *entity.Board, player entity.Cell, depth int, result tictactoe.Result) error
}

// Settings are the defaults applied to new games and move requests.
type Settings struct {
	MaxDepth  int
	BoardSize int
	AIPlayer  entity.Cell
	AILevel   int
}

// NewGameRequest - zero values fall back to Settings.
type NewGameRequest struct {
	Size     int
	Mode     entity.Mode
	AIPlayer entity.Cell
	AILevel  *int
}

type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	moveCache moveCache
	settings  Settings
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, moveCache moveCache, settings Settings) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		gameRepo:  gameRepo,
		moveCache: moveCache,
		settings:  settings,
	}
}

func (that *GameManager) NewGame(ctx context.Context, req NewGameRequest) (*entity.Game, error) {
	log := that.logger.With("method", "NewGame")

	size := req.Size
	if size == 0 {
		size = that.settings.BoardSize
	}

	mode := req.Mode
	if mode == "" {
		mode = entity.ModeAI
	}

	aiPlayer := req.AIPlayer
	if aiPlayer == entity.EmptyCell {
		aiPlayer = that.settings.AIPlayer
	}

	level := that.settings.AILevel
	if req.AILevel != nil {
		level = *req.AILevel
	}

	if !tictactoe.IsValidLevel(level) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidLevel, level)
	}

	game, err := entity.NewGame(uuid.NewString(), size, mode, aiPlayer, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.replyIfAITurn(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("game created", "game_id", game.ID, "size", size, "mode", mode, "ai_player", aiPlayer.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human move for whoever is to move and, in ai mode,
// the AI reply.
func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn")

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsAITurn() {
		return game, apperror.ErrNotYourTurn
	}

	if err = game.MakeTurn(game.Turn, row, col); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.replyIfAITurn(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "game_id", game.ID, "winner", game.Winner.String())
	}

	return game, nil
}

// Restart - clears the board; the AI opens when it plays X.
func (that *GameManager) Restart(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.replyIfAITurn(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) ToggleMode(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.ToggleMode()

	if err = that.replyIfAITurn(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) LeaveGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "game_id", id)

	return nil
}

// SuggestMove - picks a move for player on a board snapshot. Searched
// results are cached; random play is not.
func (that *GameManager) SuggestMove(ctx context.Context, board *entity.Board, player entity.Cell, level int) (tictactoe.Result, error) {
	log := that.logger.With("method", "SuggestMove")

	ai := tictactoe.NewAI(that.logger, player, that.settings.MaxDepth, level)
	if level != tictactoe.LevelMinimax {
		return that.analyze(ai, board)
	}

	depth := ai.EffectiveDepth(board.Size())

	cached, err := that.moveCache.Get(ctx, board, player, depth)
	switch {
	case err == nil:
		log.Debug("move served from cache", "row", cached.Move.Row, "col", cached.Move.Col)
		return cached, nil
	case !errors.Is(err, repository.ErrMoveNotCached):
		log.Warn("failed to read move cache", "error", err)
	}

	result, err := that.analyze(ai, board)
	if err != nil {
		return result, err
	}

	if err = that.moveCache.Set(ctx, board, player, depth, result); err != nil {
		log.Warn("failed to write move cache", "error", err)
	}

	return result, nil
}

func (that *GameManager) analyze(ai *tictactoe.AI, board *entity.Board) (tictactoe.Result, error) {
	result, err := ai.Analyze(board)
	if err != nil {
		return result, fmt.Errorf("failed to choose move: %w", err)
	}

	return result, nil
}

func (that *GameManager) replyIfAITurn(ctx context.Context, game *entity.Game) error {
	if !game.IsAITurn() {
		return nil
	}

	result, err := that.SuggestMove(ctx, game.Board, game.AIPlayer, game.AILevel)
	if err != nil {
		return fmt.Errorf("ai failed to make turn: %w", err)
	}

	if err = game.MakeTurn(game.AIPlayer, result.Move.Row, result.Move.Col); err != nil {
		return fmt.Errorf("ai failed to make turn: %w", err)
	}

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
