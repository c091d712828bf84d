package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lingfeng158/HexMcts/game"
)

// redWinHistory is a legal alternating sequence after which Red has a
// straight chain connecting both of its edges.
func redWinHistory() []game.Action {
	var moves []game.Action
	for i := int8(0); i < game.BoardSize; i++ {
		moves = append(moves, game.Action{Row: i, Col: 2})
		if i < game.BoardSize-1 {
			moves = append(moves, game.Action{Row: i, Col: 8})
		}
	}
	return moves
}

// fullBoardHistory fills every cell in row-major order.
func fullBoardHistory() []game.Action {
	moves := make([]game.Action, 0, game.Capacity)
	for r := int8(0); r < game.BoardSize; r++ {
		for c := int8(0); c < game.BoardSize; c++ {
			moves = append(moves, game.Action{Row: r, Col: c})
		}
	}
	return moves
}

func TestRecoverFromHistory(t *testing.T) {
	t.Run("replays alternating moves into the authoritative state", func(t *testing.T) {
		m := NewMCTS()
		history := []game.Action{{Row: 0, Col: 0}, {Row: 10, Col: 10}, {Row: 0, Col: 1}, {Row: 10, Col: 9}}
		require.NoError(t, m.RecoverFromHistory(history))

		state := m.State()
		require.Equal(t, 4, state.PieceCount())
		require.True(t, state.RedToMove())
		require.True(t, m.root.isRoot())
		require.Equal(t, 0, m.root.visits, "recovered tree starts fresh")
	})

	t.Run("an illegal move anywhere in the history is fatal", func(t *testing.T) {
		m := NewMCTS()
		require.Error(t, m.RecoverFromHistory([]game.Action{{Row: 0, Col: 0}, {Row: 0, Col: 0}}))
		require.Error(t, m.RecoverFromHistory([]game.Action{{Row: 11, Col: 0}}))
	})
}

func TestComputeNextMove(t *testing.T) {
	t.Run("empty board yields the forced opening on a previously empty cell", func(t *testing.T) {
		m := NewMCTS(WithBudget(20*time.Millisecond), WithMetrics())

		before := m.State()
		action, err := m.ComputeNextMove(time.Now(), 1.0)
		require.NoError(t, err)
		require.True(t, action.InBounds())
		require.Equal(t, game.Empty, before.At(action))
		require.Equal(t, game.DefaultOpening, action)
		require.Greater(t, m.LastMetrics().Playouts, int64(0))

		require.NoError(t, m.UpdateWithMove(action))
		state := m.State()
		require.Equal(t, game.Empty, state.CheckWinner(), "a single stone cannot win")
	})

	t.Run("an already-expired budget still runs one batch and answers", func(t *testing.T) {
		m := NewMCTS(WithBudget(50 * time.Millisecond))

		// The turn clock starts before the request is even read, so
		// the budget can be gone by the time the search begins; one
		// playout batch must still run so a move comes back.
		action, err := m.ComputeNextMove(time.Now().Add(-time.Second), 1.0)
		require.NoError(t, err)
		require.Equal(t, game.DefaultOpening, action)
	})

	t.Run("full board leaves nothing to select and fails the call", func(t *testing.T) {
		m := NewMCTS(WithBudget(20 * time.Millisecond))
		require.NoError(t, m.RecoverFromHistory(fullBoardHistory()))

		_, err := m.ComputeNextMove(time.Now(), 1.0)
		require.Error(t, err)
	})
}

func TestUpdateWithMove(t *testing.T) {
	t.Run("re-rooting onto an explored child keeps its statistics", func(t *testing.T) {
		m := NewMCTS(WithBudget(30*time.Millisecond), WithMetrics())
		action, err := m.ComputeNextMove(time.Now(), 1.0)
		require.NoError(t, err)

		child := m.root.children[action]
		require.NotNil(t, child)
		visits := child.visits
		require.Greater(t, visits, 0)

		require.NoError(t, m.UpdateWithMove(action))
		require.Same(t, child, m.root, "explored subtree must be promoted")
		require.True(t, m.root.isRoot(), "promoted root must drop its parent reference")
		require.Equal(t, visits, m.root.visits)

		// The reuse flag surfaces with the next completed search.
		_, err = m.ComputeNextMove(time.Now(), 1.0)
		require.NoError(t, err)
		require.True(t, m.LastMetrics().TreeReused)
	})

	t.Run("unexplored move starts a statistics-free root", func(t *testing.T) {
		m := NewMCTS(WithBudget(20 * time.Millisecond))
		action, err := m.ComputeNextMove(time.Now(), 1.0)
		require.NoError(t, err)
		require.NoError(t, m.UpdateWithMove(action))

		// The opening margin keeps (0,0) out of every candidate list
		// this early, so no child exists for it.
		offTree := game.Action{Row: 0, Col: 0}
		require.Nil(t, m.root.children[offTree])
		require.NoError(t, m.UpdateWithMove(offTree))
		require.Equal(t, 0, m.root.visits)
		require.True(t, m.root.isRoot())
	})

	t.Run("illegal commits are rejected", func(t *testing.T) {
		m := NewMCTS()
		require.NoError(t, m.UpdateWithMove(game.Action{Row: 0, Col: 0}))
		require.Error(t, m.UpdateWithMove(game.Action{Row: 0, Col: 0}), "occupied")
		require.Error(t, m.UpdateWithMove(game.Action{Row: 0, Col: 11}), "out of bounds")
	})
}

func TestBranchingRollout(t *testing.T) {
	t.Run("already-decided position backpropagates the dense-window reward", func(t *testing.T) {
		m := NewMCTS()
		require.NoError(t, m.RecoverFromHistory(redWinHistory()))
		// Blue is to move at the root, so the root banks results for
		// Red: a Red win found at ply 0 scores the full 16/(0+1).
		state := m.State()
		require.False(t, state.RedToMove())

		m.branchingRollout(m.root, state, 0, rolloutFull)

		require.Equal(t, 1, m.root.visits)
		require.InDelta(t, 16.0, m.root.quality, 1e-12)
	})

	t.Run("playout from a live position reaches a terminal result", func(t *testing.T) {
		m := NewMCTS()
		state := m.State()
		m.playout(&state)

		// The rollout forks immediately, so both the outer line and
		// its fork should land a result on the frontier node.
		require.GreaterOrEqual(t, m.root.visits, 2, "rollout outcomes must reach the frontier node")
		require.False(t, m.root.isLeaf(), "playout must expand the leaf it reaches")
	})
}
