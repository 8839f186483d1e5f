package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 10
)

// Cell is the content of one board square.
type Cell int

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

// Opponent returns the other player. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "-"
	}
}

// Move is a 0-indexed board coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove marks a search result that carries no move.
var NoMove = Move{Row: -1, Col: -1}

func (that Move) IsNone() bool {
	return that == NoMove
}

// Board is a square grid of cells together with the number of marked cells.
type Board struct {
	size   int
	cells  []Cell
	marked int
}

func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) MarkedCount() int {
	return that.marked
}

// At returns the cell at row, col. Coordinates must be in range.
func (that *Board) At(row, col int) Cell {
	return that.cells[row*that.size+col]
}

func (that *Board) inRange(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// Mark puts the player's mark on an empty cell.
func (that *Board) Mark(row, col int, player Cell) error {
	if !player.IsPlayer() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, player)
	}

	if !that.inRange(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, row, col)
	}

	if that.At(row, col) != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.cells[row*that.size+col] = player
	that.marked++

	return nil
}

// IsEmpty reports whether the cell is in range and unmarked.
func (that *Board) IsEmpty(row, col int) bool {
	return that.inRange(row, col) && that.At(row, col) == EmptyCell
}

// EmptyCells lists unmarked cells in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, len(that.cells)-that.marked)
	for i, cell := range that.cells {
		if cell == EmptyCell {
			moves = append(moves, Move{Row: i / that.size, Col: i % that.size})
		}
	}

	return moves
}

func (that *Board) IsFull() bool {
	return that.marked == that.size*that.size
}

func (that *Board) IsBoardEmpty() bool {
	return that.marked == 0
}

// Lines returns the 2N+2 winning lines: every column, every row, the main
// diagonal and the anti-diagonal, in that order.
func (that *Board) Lines() [][]Cell {
	lines := make([][]Cell, 0, 2*that.size+2)

	for col := 0; col < that.size; col++ {
		line := make([]Cell, that.size)
		for row := 0; row < that.size; row++ {
			line[row] = that.At(row, col)
		}
		lines = append(lines, line)
	}

	for row := 0; row < that.size; row++ {
		line := make([]Cell, that.size)
		copy(line, that.cells[row*that.size:(row+1)*that.size])
		lines = append(lines, line)
	}

	diag := make([]Cell, that.size)
	anti := make([]Cell, that.size)
	for i := 0; i < that.size; i++ {
		diag[i] = that.At(i, i)
		anti[i] = that.At(i, that.size-1-i)
	}

	return append(lines, diag, anti)
}

// Winner returns the owner of the first uniform line, or EmptyCell when no
// line is complete.
func (that *Board) Winner() Cell {
	for _, line := range that.Lines() {
		if owner := uniform(line); owner != EmptyCell {
			return owner
		}
	}

	return EmptyCell
}

func uniform(line []Cell) Cell {
	first := line[0]
	for _, cell := range line[1:] {
		if cell != first {
			return EmptyCell
		}
	}

	return first
}

// IsTerminal reports a completed line or a full board.
func (that *Board) IsTerminal() bool {
	return that.Winner() != EmptyCell || that.IsFull()
}

// Clone returns an independent copy of the board.
func (that *Board) Clone() *Board {
	cells := make([]Cell, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		size:   that.size,
		cells:  cells,
		marked: that.marked,
	}
}

// Play returns a copy of the board with the move applied. The move must be
// one of EmptyCells and the receiver is left untouched.
func (that *Board) Play(move Move, player Cell) *Board {
	next := that.Clone()
	next.cells[move.Row*next.size+move.Col] = player
	next.marked++

	return next
}

// Reset clears every cell.
func (that *Board) Reset() {
	for i := range that.cells {
		that.cells[i] = EmptyCell
	}
	that.marked = 0
}

// Key is a row-major fingerprint of the cells, e.g. "110000000".
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(len(that.cells))
	for _, cell := range that.cells {
		sb.WriteByte('0' + byte(cell))
	}

	return sb.String()
}

// Rows returns the grid as a slice of rows.
func (that *Board) Rows() [][]Cell {
	rows := make([][]Cell, that.size)
	for row := range rows {
		rows[row] = make([]Cell, that.size)
		copy(rows[row], that.cells[row*that.size:(row+1)*that.size])
	}

	return rows
}

// BoardFromRows builds a board from a square grid of cell values.
func BoardFromRows(rows [][]Cell) (*Board, error) {
	board, err := NewBoard(len(rows))
	if err != nil {
		return nil, err
	}

	for row, cells := range rows {
		if len(cells) != board.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidBoard, row, len(cells), board.size)
		}

		for col, cell := range cells {
			if cell == EmptyCell {
				continue
			}

			if err = board.Mark(row, col, cell); err != nil {
				return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
			}
		}
	}

	return board, nil
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Rows())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	board, err := BoardFromRows(rows)
	if err != nil {
		return err
	}

	*that = *board

	return nil
}
