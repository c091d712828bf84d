package game

import "fmt"

// State is the full board position: the grid plus the number of placed
// stones. The side to move is implied by piece-count parity (even count
// means Red moves next). State is a value type; every simulation branch
// works on its own copy and no board is ever shared between branches.
type State struct {
	cells  [BoardSize][BoardSize]Cell
	pieces int
}

// PieceCount returns the number of stones on the board.
func (s *State) PieceCount() int { return s.pieces }

// IsFull reports whether every cell is occupied.
func (s *State) IsFull() bool { return s.pieces == Capacity }

// RedToMove reports whether Red owns the next placement.
func (s *State) RedToMove() bool { return s.pieces%2 == 0 }

// At returns the content of the given cell. Out-of-bounds reads come
// back Empty.
func (s *State) At(a Action) Cell {
	if !a.InBounds() {
		return Empty
	}
	return s.cells[a.Row][a.Col]
}

// ApplyMove places the mover's stone on the target cell and advances
// the turn. Out-of-bounds and occupied targets are rejected without
// mutating the board.
func (s *State) ApplyMove(a Action) error {
	if !a.InBounds() {
		return fmt.Errorf("action (%d,%d) out of bounds", a.Row, a.Col)
	}
	if s.cells[a.Row][a.Col] != Empty {
		return fmt.Errorf("cell (%d,%d) already occupied", a.Row, a.Col)
	}
	mark := Blue
	if s.RedToMove() {
		mark = Red
	}
	s.cells[a.Row][a.Col] = mark
	s.pieces++
	return nil
}

// neighborOffsets are the six hex adjacencies of a cell: left, right,
// row up, row up / col right, row down, row down / col left.
var neighborOffsets = [6][2]int8{
	{0, -1}, {0, 1}, {-1, 0}, {-1, 1}, {1, 0}, {1, -1},
}

// CheckWinner reports which side, if any, connects its two board edges
// with an unbroken chain of its own stones. Red spans rows, Blue spans
// columns. A full board always has a winner; an empty result from a
// check is a normal outcome, not an error.
func (s *State) CheckWinner() Cell {
	if s.sideConnects(Red) {
		return Red
	}
	if s.sideConnects(Blue) {
		return Blue
	}
	return Empty
}

func (s *State) sideConnects(side Cell) bool {
	// Partition the side's stones into the frontier (on its starting
	// edge) and the traversable pool.
	var frontier []Action
	var pool [BoardSize][BoardSize]bool
	count := 0
	for r := int8(0); r < BoardSize; r++ {
		for c := int8(0); c < BoardSize; c++ {
			if s.cells[r][c] != side {
				continue
			}
			count++
			if (side == Red && r == 0) || (side == Blue && c == 0) {
				frontier = append(frontier, Action{Row: r, Col: c})
			} else {
				pool[r][c] = true
			}
		}
	}
	// A spanning chain needs at least BoardSize stones.
	if count < BoardSize || len(frontier) == 0 {
		return false
	}

	// Depth-first reachability over hex adjacency. Matched stones leave
	// the pool immediately, so the pool strictly shrinks and the search
	// terminates.
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if (side == Red && cur.Row == BoardSize-1) || (side == Blue && cur.Col == BoardSize-1) {
			return true
		}
		for _, d := range neighborOffsets {
			next := Action{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if !next.InBounds() || !pool[next.Row][next.Col] {
				continue
			}
			pool[next.Row][next.Col] = false
			frontier = append(frontier, next)
		}
	}
	return false
}
