package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, rows [][]Cell) *Board {
	t.Helper()

	board, err := BoardFromRows(rows)
	require.NoError(t, err)

	return board
}

func TestNewBoard(t *testing.T) {
	t.Run("Creates an empty board", func(t *testing.T) {
		// When: a 4x4 board is created
		board, err := NewBoard(4)
		require.NoError(t, err)

		// Then: every cell is empty
		assert.Equal(t, 4, board.Size())
		assert.True(t, board.IsBoardEmpty())
		assert.False(t, board.IsFull())
		assert.Len(t, board.EmptyCells(), 16)
	})

	t.Run("Rejects sizes below three", func(t *testing.T) {
		// When: a 2x2 board is requested
		_, err := NewBoard(2)

		// Then: ErrInvalidBoardSize is returned
		assert.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})

	t.Run("Rejects oversized boards", func(t *testing.T) {
		_, err := NewBoard(MaxBoardSize + 1)

		assert.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})
}

func TestBoard_Mark(t *testing.T) {
	t.Run("Marks an empty cell", func(t *testing.T) {
		// Given: an empty board
		board, err := NewBoard(3)
		require.NoError(t, err)

		// When: X marks the center
		err = board.Mark(1, 1, PlayerX)

		// Then: the cell is owned by X and counted
		require.NoError(t, err)
		assert.Equal(t, PlayerX, board.At(1, 1))
		assert.Equal(t, 1, board.MarkedCount())
		assert.False(t, board.IsEmpty(1, 1))
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board with X in the corner
		board, err := NewBoard(3)
		require.NoError(t, err)
		require.NoError(t, board.Mark(0, 0, PlayerX))

		// When: O tries to mark the same cell
		err = board.Mark(0, 0, PlayerO)

		// Then: ErrCellOccupied is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, PlayerX, board.At(0, 0))
		assert.Equal(t, 1, board.MarkedCount())
	})

	t.Run("Error on out of range coordinates", func(t *testing.T) {
		board, err := NewBoard(3)
		require.NoError(t, err)

		for _, move := range []Move{{Row: -1, Col: 0}, {Row: 0, Col: 3}, {Row: 3, Col: 3}} {
			err = board.Mark(move.Row, move.Col, PlayerX)
			assert.ErrorIs(t, err, apperror.ErrInvalidCell)
		}
		assert.Equal(t, 0, board.MarkedCount())
	})

	t.Run("Error on empty player", func(t *testing.T) {
		board, err := NewBoard(3)
		require.NoError(t, err)

		err = board.Mark(0, 0, EmptyCell)

		assert.ErrorIs(t, err, apperror.ErrInvalidPlayer)
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	t.Run("Enumerates in row-major order", func(t *testing.T) {
		// Given: a board with two marks
		board := mustBoard(t, [][]Cell{
			{PlayerX, EmptyCell, EmptyCell},
			{EmptyCell, PlayerO, EmptyCell},
			{EmptyCell, EmptyCell, EmptyCell},
		})

		// When: listing the empty cells
		cells := board.EmptyCells()

		// Then: rows ascend, then columns
		assert.Equal(t, []Move{
			{0, 1}, {0, 2},
			{1, 0}, {1, 2},
			{2, 0}, {2, 1}, {2, 2},
		}, cells)
	})

	t.Run("Marking removes exactly the marked cell", func(t *testing.T) {
		board, err := NewBoard(4)
		require.NoError(t, err)

		player := PlayerX
		for !board.IsFull() {
			before := board.EmptyCells()
			move := before[len(before)/2]

			require.NoError(t, board.Mark(move.Row, move.Col, player))

			expected := make([]Move, 0, len(before)-1)
			for _, cell := range before {
				if cell != move {
					expected = append(expected, cell)
				}
			}
			assert.Equal(t, expected, board.EmptyCells())
			player = player.Opponent()
		}

		assert.Empty(t, board.EmptyCells())
		assert.Equal(t, 16, board.MarkedCount())
	})
}

func TestBoard_Winner(t *testing.T) {
	t.Run("Column win", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{
			{PlayerO, PlayerX, EmptyCell},
			{PlayerO, PlayerX, EmptyCell},
			{PlayerO, EmptyCell, PlayerX},
		})

		assert.Equal(t, PlayerO, board.Winner())
		assert.True(t, board.IsTerminal())
	})

	t.Run("Row win", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{
			{EmptyCell, EmptyCell, EmptyCell, EmptyCell},
			{EmptyCell, PlayerO, PlayerO, EmptyCell},
			{PlayerX, PlayerX, PlayerX, PlayerX},
			{EmptyCell, EmptyCell, PlayerO, EmptyCell},
		})

		assert.Equal(t, PlayerX, board.Winner())
	})

	t.Run("Main diagonal win", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{
			{PlayerX, PlayerO, EmptyCell},
			{EmptyCell, PlayerX, PlayerO},
			{EmptyCell, EmptyCell, PlayerX},
		})

		assert.Equal(t, PlayerX, board.Winner())
	})

	t.Run("Anti diagonal win", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{
			{PlayerX, PlayerX, PlayerO},
			{EmptyCell, PlayerO, EmptyCell},
			{PlayerO, EmptyCell, PlayerX},
		})

		assert.Equal(t, PlayerO, board.Winner())
	})

	t.Run("Main diagonal is checked before anti diagonal", func(t *testing.T) {
		// Given: an injected 4x4 board where both diagonals are complete for different players
		board := mustBoard(t, [][]Cell{
			{PlayerX, EmptyCell, EmptyCell, PlayerO},
			{EmptyCell, PlayerX, PlayerO, EmptyCell},
			{EmptyCell, PlayerO, PlayerX, EmptyCell},
			{PlayerO, EmptyCell, EmptyCell, PlayerX},
		})

		// Then: the main diagonal owner is reported
		assert.Equal(t, PlayerX, board.Winner())
	})

	t.Run("Empty lines never win", func(t *testing.T) {
		board, err := NewBoard(3)
		require.NoError(t, err)

		assert.Equal(t, EmptyCell, board.Winner())
		assert.False(t, board.IsTerminal())
	})

	t.Run("Full board without a line is terminal", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{
			{PlayerX, PlayerO, PlayerX},
			{PlayerX, PlayerO, PlayerO},
			{PlayerO, PlayerX, PlayerX},
		})

		assert.Equal(t, EmptyCell, board.Winner())
		assert.True(t, board.IsFull())
		assert.True(t, board.IsTerminal())
	})
}

func TestBoard_Lines(t *testing.T) {
	board, err := NewBoard(5)
	require.NoError(t, err)

	lines := board.Lines()

	assert.Len(t, lines, 2*5+2)
	for _, line := range lines {
		assert.Len(t, line, 5)
	}
}

func TestBoard_Play(t *testing.T) {
	// Given: a board with one mark
	board := mustBoard(t, [][]Cell{
		{PlayerX, EmptyCell, EmptyCell},
		{EmptyCell, EmptyCell, EmptyCell},
		{EmptyCell, EmptyCell, EmptyCell},
	})

	// When: a move is played on a copy
	next := board.Play(Move{Row: 2, Col: 2}, PlayerO)

	// Then: only the copy changes
	assert.Equal(t, PlayerO, next.At(2, 2))
	assert.Equal(t, 2, next.MarkedCount())
	assert.Equal(t, EmptyCell, board.At(2, 2))
	assert.Equal(t, 1, board.MarkedCount())

	// And: further changes to the copy do not leak back
	require.NoError(t, next.Mark(1, 1, PlayerX))
	assert.True(t, board.IsEmpty(1, 1))
}

func TestBoard_Reset(t *testing.T) {
	board := mustBoard(t, [][]Cell{
		{PlayerX, PlayerO, EmptyCell},
		{EmptyCell, PlayerX, EmptyCell},
		{EmptyCell, EmptyCell, PlayerO},
	})

	board.Reset()

	assert.True(t, board.IsBoardEmpty())
	assert.Len(t, board.EmptyCells(), 9)
}

func TestBoard_Key(t *testing.T) {
	board := mustBoard(t, [][]Cell{
		{PlayerX, PlayerX, EmptyCell},
		{EmptyCell, PlayerO, EmptyCell},
		{EmptyCell, EmptyCell, EmptyCell},
	})

	assert.Equal(t, "110020000", board.Key())
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Encodes as a grid", func(t *testing.T) {
		board := mustBoard(t, [][]Cell{
			{PlayerX, EmptyCell, EmptyCell},
			{EmptyCell, PlayerO, EmptyCell},
			{EmptyCell, EmptyCell, EmptyCell},
		})

		data, err := json.Marshal(board)

		require.NoError(t, err)
		assert.JSONEq(t, `[[1,0,0],[0,2,0],[0,0,0]]`, string(data))
	})

	t.Run("Decoding recomputes the marked count", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[[1,2,0],[0,1,0],[0,0,2]]`), &board)

		require.NoError(t, err)
		assert.Equal(t, 4, board.MarkedCount())
		assert.Equal(t, PlayerO, board.At(0, 1))
	})

	t.Run("Rejects ragged grids", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[[1,2,0],[0,1],[0,0,2]]`), &board)

		assert.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Rejects unknown cell values", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[[1,7,0],[0,1,0],[0,0,2]]`), &board)

		assert.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}
