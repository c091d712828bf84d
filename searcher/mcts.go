package searcher

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lingfeng158/HexMcts/game"
)

// rolloutMode tags a rollout continuation: the outer line plays the
// top-ranked candidate; after a fork, the two continuations take
// opposite halves of the ranked candidate list for one step.
type rolloutMode int

const (
	rolloutFull rolloutMode = iota
	rolloutFirstHalf
	rolloutSecondHalf
)

type Option func(*MCTS)

// MCTS owns the authoritative board state and the search tree, and
// turns a wall-clock budget into a committed move. Everything runs on
// the caller's goroutine; isolation between rollout branches comes
// purely from copying the board state, never from synchronization.
type MCTS struct {
	state       game.State
	root        *node
	exploration float64
	budget      time.Duration
	opening     game.Action
	metrics     MetricsCollector
	lastMetrics MoveMetrics
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithBudget(budget time.Duration) Option {
	return func(m *MCTS) {
		if budget > 0 {
			m.budget = budget
		}
	}
}

// WithOpening overrides the forced first placement on an empty board.
func WithOpening(a game.Action) Option {
	return func(m *MCTS) {
		if a.InBounds() {
			m.opening = a
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		exploration: DefaultExploration,
		budget:      DefaultBudget,
		opening:     game.DefaultOpening,
		metrics:     NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	m.root = newNode(nil, 1.0, m.state.RedToMove())
	return m
}

// State returns a copy of the authoritative position.
func (m *MCTS) State() game.State { return m.state }

// LastMetrics returns the metrics of the most recent ComputeNextMove.
func (m *MCTS) LastMetrics() MoveMetrics { return m.lastMetrics }

// RecoverFromHistory rebuilds the authoritative position by replaying
// moves in order and resets the tree for it. An illegal move anywhere
// in the history fails the whole call.
func (m *MCTS) RecoverFromHistory(moves []game.Action) error {
	var state game.State
	for i, action := range moves {
		if err := state.ApplyMove(action); err != nil {
			return fmt.Errorf("replaying move %d: %w", i, err)
		}
	}
	m.state = state
	m.root = newNode(nil, 1.0, m.state.RedToMove())
	return nil
}

// ComputeNextMove searches in batches of playouts until 87% of the
// scaled budget has elapsed, then commits to the most-visited root
// child. The remaining margin covers final selection and downstream
// I/O. The deadline is polled only between batches, so at least one
// batch always runs even on an exhausted budget and the root gets
// expanded. A childless root after the loop is fatal for the call.
func (m *MCTS) ComputeNextMove(start time.Time, multiplier float64) (game.Action, error) {
	m.metrics.Start()
	deadline := time.Duration(float64(m.budget) * multiplier * budgetFraction)
	for {
		for i := 0; i < playoutBatch; i++ {
			stateCopy := m.state
			m.playout(&stateCopy)
		}
		if time.Since(start) >= deadline {
			break
		}
	}
	m.lastMetrics = m.metrics.Complete()

	action, _, ok := m.root.selectChild(m.exploration, true)
	if !ok {
		return game.Action{}, errors.New("root has no children to select from")
	}
	return action, nil
}

// playout runs one selection/expansion/rollout cycle against a private
// copy of the authoritative state: descend by UCT to a leaf while
// mirroring the moves onto the copy, expand the leaf with heuristic
// candidates, then simulate from there.
func (m *MCTS) playout(state *game.State) {
	m.metrics.AddPlayout()
	n := m.root
	for !n.isLeaf() {
		action, child, ok := n.selectChild(m.exploration, false)
		if !ok {
			log.Error().Msg("playout selection on a childless node")
			return
		}
		if err := state.ApplyMove(action); err != nil {
			log.Error().Err(err).Msg("playout mirrored an illegal tree move")
			return
		}
		n = child
	}
	n.expand(state.CandidateMoves(true, m.opening))
	m.branchingRollout(n, *state, 0, rolloutFull)
}

// branchingRollout simulates greedy play forward from state and
// backpropagates a scored outcome from start. Terminal checks run every
// ply inside the dense early window and every 16th ply after; results
// found early in the dense window are weighted up, late results decay
// per ply. Every 32nd ply the outer line forks one continuation on a
// cloned state to diversify the simulated line; recursion depth is
// bounded by the board capacity.
func (m *MCTS) branchingRollout(start *node, state game.State, ply int, mode rolloutMode) {
	for !state.IsFull() {
		if ply <= denseCheckLimit {
			if winner := state.CheckWinner(); winner != game.Empty {
				start.updateFromRoot(outcome(winner) * 16 / float64(ply+1) * start.perspective())
				return
			}
		}
		if ply != 0 && ply&sparseCheckMask == 0 {
			if winner := state.CheckWinner(); winner != game.Empty {
				m.metrics.AddRollout()
				start.updateFromRoot(outcome(winner) * start.perspective() * math.Pow(lateDecay, float64(ply)))
				return
			}
		}
		if mode == rolloutFull && ply&branchMask == 0 {
			mode = rolloutFirstHalf
			fork := state
			m.branchingRollout(start, fork, ply, rolloutSecondHalf)
		}

		priors := state.CandidateMoves(true, m.opening)
		if len(priors) == 0 {
			log.Error().Int("ply", ply).Msg("rollout found no candidates on a non-full board")
			return
		}
		if err := state.ApplyMove(pickGreedy(priors, mode)); err != nil {
			log.Error().Err(err).Msg("rollout played an illegal move")
			return
		}
		ply++
		mode = rolloutFull
	}

	// Board filled up without an earlier hit; one final check. The
	// connection game cannot end drawn, so a missing winner here is a
	// defect in candidate generation or the win check.
	winner := state.CheckWinner()
	if winner == game.Empty {
		log.Error().Msg("full board with no winner at rollout end")
		return
	}
	m.metrics.AddRollout()
	start.updateFromRoot(outcome(winner) * start.perspective() * math.Pow(lateDecay, float64(ply)))
}

// pickGreedy takes the top-ranked candidate, or the best of the second
// half of the ranking for a freshly forked continuation.
func pickGreedy(priors []game.ActionPrior, mode rolloutMode) game.Action {
	if mode == rolloutSecondHalf && len(priors) > 1 {
		return priors[len(priors)/2].Action
	}
	return priors[0].Action
}

// outcome maps a winner to a result from Red's perspective.
func outcome(winner game.Cell) float64 {
	switch winner {
	case game.Red:
		return 1
	case game.Blue:
		return -1
	default:
		return 0
	}
}

// UpdateWithMove commits a move, ours or the opponent's, to the
// authoritative state. If the tree already explored the move, its
// subtree is promoted to root with statistics intact and its parent
// reference cleared in the same step; all sibling subtrees are
// discarded. Otherwise the search restarts from a fresh root.
func (m *MCTS) UpdateWithMove(action game.Action) error {
	if err := m.state.ApplyMove(action); err != nil {
		return err
	}
	if child, ok := m.root.children[action]; ok {
		child.parent = nil
		m.root = child
		m.metrics.ReusedTree()
		return nil
	}
	m.root = newNode(nil, 1.0, m.state.RedToMove())
	return nil
}
