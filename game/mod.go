package game

// BoardSize is the number of rows and columns of the hex grid.
const BoardSize = 11

// Capacity is the total number of cells on the board.
const Capacity = BoardSize * BoardSize

// Cell is the content of one grid cell.
type Cell int8

const (
	Empty Cell = 0
	// Red connects row 0 to row 10 and owns the even-numbered plies.
	Red Cell = 1
	// Blue connects column 0 to column 10.
	Blue Cell = -1
)

// Action is one stone placement. It is comparable so it can key the
// children map of a search tree node.
type Action struct {
	Row int8
	Col int8
}

// InBounds reports whether the action targets a cell on the board.
func (a Action) InBounds() bool {
	return a.Row >= 0 && a.Row < BoardSize && a.Col >= 0 && a.Col < BoardSize
}

// ActionPrior pairs a candidate action with its heuristic weight.
type ActionPrior struct {
	Action Action
	Weight float64
}

// DefaultOpening is the forced first placement on an empty board.
var DefaultOpening = Action{Row: 1, Col: 2}
