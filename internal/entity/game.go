package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Mode string

const (
	ModeAI  Mode = "ai"
	ModePVP Mode = "pvp"
)

func (that Mode) IsValid() bool {
	return that == ModeAI || that == ModePVP
}

// Game is a live session: one board, the side to move and the AI settings.
type Game struct {
	ID       string `json:"id"`
	Board    *Board `json:"board"`
	Turn     Cell   `json:"turn"`
	Winner   Cell   `json:"winner"`
	Status   string `json:"status"`
	Mode     Mode   `json:"mode"`
	AIPlayer Cell   `json:"ai_player"`
	AILevel  int    `json:"ai_level"`
}

func NewGame(id string, size int, mode Mode, aiPlayer Cell, aiLevel int) (*Game, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	if !aiPlayer.IsPlayer() {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, aiPlayer)
	}

	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}

	return &Game{
		ID:       id,
		Board:    board,
		Turn:     PlayerX,
		Status:   StatusOngoing,
		Mode:     mode,
		AIPlayer: aiPlayer,
		AILevel:  aiLevel,
	}, nil
}

// MakeTurn marks the cell for player and passes the turn on.
func (that *Game) MakeTurn(player Cell, row, col int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.Mark(row, col, player); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Turn = player.Opponent()
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	if winner := that.Board.Winner(); winner != EmptyCell {
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
		return
	}

	// the game will continue until all the squares are full
	if that.Board.IsFull() {
		that.Winner = EmptyCell
		that.Status = StatusFinished
		that.Turn = EmptyCell
		return
	}

	that.Status = StatusOngoing
}

// Reset starts the same session over on a fresh board.
func (that *Game) Reset() {
	that.Board.Reset()
	that.Turn = PlayerX
	that.Winner = EmptyCell
	that.Status = StatusOngoing
}

func (that *Game) ToggleMode() {
	if that.Mode == ModeAI {
		that.Mode = ModePVP
	} else {
		that.Mode = ModeAI
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == EmptyCell
}

// IsAITurn reports whether the AI should move next.
func (that *Game) IsAITurn() bool {
	return that.Mode == ModeAI && !that.IsFinished() && that.Turn == that.AIPlayer
}
