package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, mode Mode) *Game {
	t.Helper()

	game, err := NewGame("123", 3, mode, PlayerO, 1)
	require.NoError(t, err)

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Creates an ongoing game with X to move", func(t *testing.T) {
		// When: a new game is created
		game := newTestGame(t, ModeAI)

		// Then: the game has the expected initial state
		assert.Equal(t, "123", game.ID)
		assert.Equal(t, PlayerX, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Equal(t, EmptyCell, game.Winner)
		assert.True(t, game.Board.IsBoardEmpty())
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		_, err := NewGame("123", 3, Mode("online"), PlayerO, 1)

		assert.ErrorIs(t, err, apperror.ErrInvalidMode)
	})

	t.Run("Rejects an empty ai player", func(t *testing.T) {
		_, err := NewGame("123", 3, ModeAI, EmptyCell, 1)

		assert.ErrorIs(t, err, apperror.ErrInvalidPlayer)
	})

	t.Run("Rejects a small board", func(t *testing.T) {
		_, err := NewGame("123", 2, ModeAI, PlayerO, 1)

		assert.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful Turn", func(t *testing.T) {
		// Given: a new game
		game := newTestGame(t, ModePVP)

		// When: Player X makes a valid turn
		err := game.MakeTurn(PlayerX, 0, 0)
		require.NoError(t, err)

		// Then: the mark is placed and the turn switches
		assert.Equal(t, PlayerX, game.Board.At(0, 0))
		assert.Equal(t, PlayerO, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: a game where cell (0,0) is occupied by Player X
		game := newTestGame(t, ModePVP)
		require.NoError(t, game.MakeTurn(PlayerX, 0, 0))

		// When: Player O tries to move to the same cell
		err := game.MakeTurn(PlayerO, 0, 0)

		// Then: ErrCellOccupied is returned and the turn stays with O
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, PlayerO, game.Turn)
		assert.Equal(t, 1, game.Board.MarkedCount())
	})

	t.Run("Error on Playing Out of Turn", func(t *testing.T) {
		game := newTestGame(t, ModePVP)

		err := game.MakeTurn(PlayerO, 1, 1)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.True(t, game.Board.IsBoardEmpty())
	})

	t.Run("Error on Invalid Cell", func(t *testing.T) {
		game := newTestGame(t, ModePVP)

		err := game.MakeTurn(PlayerX, 3, 0)

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Win finishes the game", func(t *testing.T) {
		// Given: X is one move away from the top row
		game := newTestGame(t, ModePVP)
		require.NoError(t, game.MakeTurn(PlayerX, 0, 0))
		require.NoError(t, game.MakeTurn(PlayerO, 1, 0))
		require.NoError(t, game.MakeTurn(PlayerX, 0, 1))
		require.NoError(t, game.MakeTurn(PlayerO, 1, 1))

		// When: X completes the row
		err := game.MakeTurn(PlayerX, 0, 2)
		require.NoError(t, err)

		// Then: X is the winner and nobody is to move
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsDraw())
		assert.Equal(t, PlayerX, game.Winner)
		assert.Equal(t, EmptyCell, game.Turn)

		// And: further moves are rejected
		assert.ErrorIs(t, game.MakeTurn(PlayerO, 2, 2), apperror.ErrGameFinished)
	})

	t.Run("Full board is a draw", func(t *testing.T) {
		game := newTestGame(t, ModePVP)
		moves := []Move{
			{0, 0}, {0, 1}, {0, 2},
			{1, 1}, {1, 0}, {1, 2},
			{2, 1}, {2, 0}, {2, 2},
		}

		player := PlayerX
		for _, move := range moves {
			require.NoError(t, game.MakeTurn(player, move.Row, move.Col))
			player = player.Opponent()
		}

		assert.True(t, game.IsDraw())
		assert.Equal(t, StatusFinished, game.Status)
	})
}

func TestGame_Reset(t *testing.T) {
	// Given: a game with some moves
	game := newTestGame(t, ModePVP)
	require.NoError(t, game.MakeTurn(PlayerX, 0, 0))
	require.NoError(t, game.MakeTurn(PlayerO, 1, 1))

	// When: restarting
	game.Reset()

	// Then: the board is empty and X moves first again
	assert.True(t, game.Board.IsBoardEmpty())
	assert.Equal(t, PlayerX, game.Turn)
	assert.Equal(t, StatusOngoing, game.Status)
	assert.Equal(t, "123", game.ID)
}

func TestGame_IsAITurn(t *testing.T) {
	t.Run("AI moves on its own turn in ai mode", func(t *testing.T) {
		game := newTestGame(t, ModeAI)
		require.NoError(t, game.MakeTurn(PlayerX, 0, 0))

		assert.True(t, game.IsAITurn())
	})

	t.Run("AI never moves in pvp mode", func(t *testing.T) {
		game := newTestGame(t, ModePVP)
		require.NoError(t, game.MakeTurn(PlayerX, 0, 0))

		assert.False(t, game.IsAITurn())
	})

	t.Run("Toggling mode switches between ai and pvp", func(t *testing.T) {
		game := newTestGame(t, ModeAI)

		game.ToggleMode()
		assert.Equal(t, ModePVP, game.Mode)

		game.ToggleMode()
		assert.Equal(t, ModeAI, game.Mode)
	})
}
