package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// lineWeight scales every mark on an open line.
const lineWeight = 4

// Evaluate scores a non-terminal board from X's point of view.
//
// Every row, column and both diagonals are inspected. A line that holds no O
// mark is open for X and adds its X mark count k to X's histogram; the same
// rule applies to O. The score is Σ 4·k·freqX[k] − Σ 4·k·freqO[k].
func Evaluate(board *entity.Board) float64 {
	size := board.Size()
	xCounts := make([]int, size+1)
	oCounts := make([]int, size+1)

	for _, line := range board.Lines() {
		var xMarks, oMarks int
		for _, cell := range line {
			switch cell {
			case entity.PlayerX:
				xMarks++
			case entity.PlayerO:
				oMarks++
			}
		}

		if oMarks == 0 {
			xCounts[xMarks]++
		}
		if xMarks == 0 {
			oCounts[oMarks]++
		}
	}

	return float64(histogramScore(xCounts) - histogramScore(oCounts))
}

func histogramScore(counts []int) int {
	score := 0
	for marks, freq := range counts {
		score += lineWeight * marks * freq
	}

	return score
}
