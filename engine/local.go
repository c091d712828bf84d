package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/Lingfeng158/HexMcts/game"
	"github.com/Lingfeng158/HexMcts/searcher"
)

// LocalEngine plays two controllers against each other in process,
// bypassing the wire protocol. Used for integration tests and strength
// experiments.
type LocalEngine struct {
	agents [2]*searcher.MCTS
}

// NewLocalEngine pairs the Red and Blue controllers. Both must start
// from the same (normally empty) position.
func NewLocalEngine(red, blue *searcher.MCTS) *LocalEngine {
	return &LocalEngine{agents: [2]*searcher.MCTS{red, blue}}
}

// RandomOpening jitters the forced opening so repeated self-play games
// do not all replay the same deterministic line.
func RandomOpening(rng *rand.Rand) game.Action {
	return game.Action{
		Row: int8(1 + rng.Intn(game.BoardSize-2)),
		Col: int8(1 + rng.Intn(game.BoardSize-2)),
	}
}

// Run plays a single game to a winner and returns it together with the
// number of moves played. A full board without a winner is a defect.
func (e *LocalEngine) Run() (game.Cell, int, error) {
	moves := 0
	for {
		agent := e.agents[moves%2]
		state := agent.State()
		if winner := state.CheckWinner(); winner != game.Empty {
			return winner, moves, nil
		}
		if state.IsFull() {
			return game.Empty, moves, fmt.Errorf("board full after %d moves with no winner", moves)
		}

		action, err := agent.ComputeNextMove(time.Now(), 1.0)
		if err != nil {
			return game.Empty, moves, fmt.Errorf("move %d: %w", moves+1, err)
		}
		for _, a := range e.agents {
			if err := a.UpdateWithMove(action); err != nil {
				return game.Empty, moves, fmt.Errorf("committing move %d: %w", moves+1, err)
			}
		}
		moves++
		log.Debug().Int("move", moves).Int8("row", action.Row).Int8("col", action.Col).Msg("self-play move")
	}
}
