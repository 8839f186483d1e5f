package tictactoe

import (
	"math"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Result is a searched move with its score from X's point of view.
type Result struct {
	Move  entity.Move
	Score float64
}

// Stats counts the work done by one search.
type Stats struct {
	Nodes       int
	Evaluations int
	Terminals   int
	Cutoffs     int
}

// role is the search objective of the side to move. X always maximizes.
type role int

const (
	maximizer role = iota
	minimizer
)

func roleOf(player entity.Cell) role {
	if player == entity.PlayerX {
		return maximizer
	}

	return minimizer
}

// worst is the score every real result improves on.
func (that role) worst() float64 {
	if that == maximizer {
		return math.Inf(-1)
	}

	return math.Inf(1)
}

// improves must stay strict so the earliest of equal moves is kept.
func (that role) improves(score, best float64) bool {
	if that == maximizer {
		return score > best
	}

	return score < best
}

func (that role) narrow(alpha, beta, score float64) (float64, float64) {
	if that == maximizer {
		return math.Max(alpha, score), beta
	}

	return alpha, math.Min(beta, score)
}

// Searcher runs depth-limited minimax with alpha-beta pruning.
type Searcher struct {
	maxDepth int
	stats    Stats
}

func NewSearcher(maxDepth int) *Searcher {
	return &Searcher{maxDepth: maxDepth}
}

func (that *Searcher) MaxDepth() int {
	return that.maxDepth
}

// Stats returns the counters of the last Search call.
func (that *Searcher) Stats() Stats {
	return that.stats
}

// Search finds the best move for player with a full alpha-beta window.
// The board is never modified.
func (that *Searcher) Search(board *entity.Board, player entity.Cell) Result {
	that.stats = Stats{}

	return that.AlphaBeta(board, math.Inf(-1), math.Inf(1), 0, player)
}

// AlphaBeta scores board for player at the given depth. Terminal boards get
// their exact score, boards at the depth limit get the heuristic, and all
// other boards are expanded over their empty cells in row-major order.
func (that *Searcher) AlphaBeta(board *entity.Board, alpha, beta float64, depth int, player entity.Cell) Result {
	that.stats.Nodes++

	if board.IsTerminal() {
		that.stats.Terminals++
		return Result{Move: entity.NoMove, Score: terminalScore(board)}
	}

	if depth == that.maxDepth {
		that.stats.Evaluations++
		return Result{Move: entity.NoMove, Score: Evaluate(board)}
	}

	side := roleOf(player)
	best := Result{Move: entity.NoMove, Score: side.worst()}

	for _, move := range board.EmptyCells() {
		branch := board.Play(move, player)

		result := that.AlphaBeta(branch, alpha, beta, depth+1, player.Opponent())
		result.Move = move

		// the first move is always taken so a lost position still names a move
		if best.Move.IsNone() || side.improves(result.Score, best.Score) {
			best = result
		}

		alpha, beta = side.narrow(alpha, beta, result.Score)
		if beta <= alpha {
			that.stats.Cutoffs++
			break
		}
	}

	return best
}

func terminalScore(board *entity.Board) float64 {
	switch board.Winner() {
	case entity.PlayerX:
		return math.Inf(1)
	case entity.PlayerO:
		return math.Inf(-1)
	default:
		return 0
	}
}

// FormatScore renders a score as text, since JSON has no infinity literal.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

func ParseScore(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}
