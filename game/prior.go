package game

import "golang.org/x/exp/slices"

// openingMargin is how many border rows and columns to exclude from
// candidate generation at the given piece count. Early play on the edge
// is almost never best, so the first plies search only the interior.
func openingMargin(pieces int) int8 {
	switch {
	case pieces <= 4:
		return 3
	case pieces <= 8:
		return 2
	case pieces <= 12:
		return 1
	default:
		return 0
	}
}

// CandidateMoves lists the empty cells worth considering from this
// position, each weighted by a local-pattern heuristic and ranked by
// descending weight (stable for ties). When forceFirst is set and the
// board is empty, only the forced opening is returned, with neutral
// weight. Occupied cells are never offered.
func (s *State) CandidateMoves(forceFirst bool, forced Action) []ActionPrior {
	if s.pieces == 0 && forceFirst {
		return []ActionPrior{{Action: forced, Weight: 1.0}}
	}

	margin := openingMargin(s.pieces)
	priors := make([]ActionPrior, 0, Capacity-s.pieces)
	for r := margin; r < BoardSize-margin; r++ {
		for c := margin; c < BoardSize-margin; c++ {
			if s.cells[r][c] != Empty {
				continue
			}
			a := Action{Row: r, Col: c}
			priors = append(priors, ActionPrior{Action: a, Weight: s.weigh(a)})
		}
	}
	slices.SortStableFunc(priors, func(x, y ActionPrior) int {
		switch {
		case x.Weight > y.Weight:
			return -1
		case x.Weight < y.Weight:
			return 1
		default:
			return 0
		}
	})
	return priors
}

// weigh scores a candidate by its immediate neighborhood and board
// position. The multipliers compose; they are the only prior signal
// feeding tree expansion and rollout action choice.
func (s *State) weigh(a Action) float64 {
	red, blue := 0, 0
	for r := max(a.Row-1, 0); r <= min(a.Row+1, BoardSize-1); r++ {
		for c := max(a.Col-1, 0); c <= min(a.Col+1, BoardSize-1); c++ {
			switch s.cells[r][c] {
			case Red:
				red++
			case Blue:
				blue++
			}
		}
	}

	weight := 1.0
	// Contested neighborhood: both sides present with one of them
	// holding two or more stones. Bridge fights happen here.
	if (red >= 1 && blue > 1) || (red > 1 && blue >= 1) {
		weight *= 2
	}
	// Dense local cluster.
	if red+blue >= 4 {
		weight *= 2
	}
	// Central 8x8 sub-board.
	if a.Row >= 2 && a.Row <= 9 && a.Col >= 2 && a.Col <= 9 {
		weight *= 1.5
	}
	return weight
}
