package tictactoe

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	DefaultMaxDepth = 4

	// smallBoardSize is searched one ply deeper than configured.
	smallBoardSize = 3
)

const (
	LevelRandom  = 0
	LevelMinimax = 1
)

func IsValidLevel(level int) bool {
	return level == LevelRandom || level == LevelMinimax
}

// AI picks moves for one side of the board.
type AI struct {
	logger *slog.Logger

	player   entity.Cell
	maxDepth int
	level    int
}

func NewAI(logger *slog.Logger, player entity.Cell, maxDepth, level int) *AI {
	return &AI{
		logger:   logger.With("component", "ai"),
		player:   player,
		maxDepth: maxDepth,
		level:    level,
	}
}

func (that *AI) Player() entity.Cell {
	return that.player
}

// EffectiveDepth is the search depth used for a board of the given size.
func (that *AI) EffectiveDepth(size int) int {
	if size == smallBoardSize {
		return that.maxDepth + 1
	}

	return that.maxDepth
}

// ChooseMove returns the move the AI plays on board.
func (that *AI) ChooseMove(board *entity.Board) (entity.Move, error) {
	result, err := that.Analyze(board)
	if err != nil {
		return entity.NoMove, err
	}

	return result.Move, nil
}

// Analyze returns the chosen move together with its score. Random play
// reports a score of zero.
func (that *AI) Analyze(board *entity.Board) (Result, error) {
	log := that.logger.With("method", "Analyze")

	if err := that.validate(board); err != nil {
		return Result{Move: entity.NoMove}, err
	}

	if that.level == LevelRandom {
		result := that.randomMove(board)
		log.Debug("AI has chosen a random move", "row", result.Move.Row, "col", result.Move.Col)

		return result, nil
	}

	depth := that.EffectiveDepth(board.Size())
	searcher := NewSearcher(depth)

	result := searcher.Search(board, that.player)
	if result.Move.IsNone() {
		return result, apperror.ErrNoAvailableMoves
	}

	stats := searcher.Stats()
	log.Debug("AI has chosen a move",
		"player", that.player.String(),
		"row", result.Move.Row,
		"col", result.Move.Col,
		"score", result.Score,
		"depth", depth,
		"nodes", stats.Nodes,
		"cutoffs", stats.Cutoffs,
	)

	return result, nil
}

func (that *AI) validate(board *entity.Board) error {
	if !that.player.IsPlayer() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, that.player)
	}

	if that.maxDepth < 1 {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidDepth, that.maxDepth)
	}

	if !IsValidLevel(that.level) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidLevel, that.level)
	}

	if board.IsFull() {
		return apperror.ErrNoAvailableMoves
	}

	if board.Winner() != entity.EmptyCell {
		return apperror.ErrGameFinished
	}

	return nil
}

func (that *AI) randomMove(board *entity.Board) Result {
	availableCells := board.EmptyCells()
	chosenCell := availableCells[rand.Intn(len(availableCells))] //nolint: gosec // it's ok

	return Result{Move: chosenCell}
}
