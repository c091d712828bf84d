package searcher

import (
	"math"

	"github.com/Lingfeng158/HexMcts/game"
)

// node is one search tree position, reached by a specific move sequence
// from the root. The children map owns the subtrees; the parent pointer
// is non-owning and exists only for backpropagation and for UCT's
// parent-visit term. Re-rooting must clear it on the promoted node.
type node struct {
	parent    *node
	children  map[game.Action]*node
	visits    int
	quality   float64
	uct       float64
	prior     float64
	redToMove bool
}

func newNode(parent *node, prior float64, redToMove bool) *node {
	return &node{
		parent:    parent,
		children:  make(map[game.Action]*node),
		prior:     prior,
		redToMove: redToMove,
	}
}

func (n *node) isLeaf() bool { return len(n.children) == 0 }

func (n *node) isRoot() bool { return n.parent == nil }

// perspective is the sign of a Red win seen from this node. A node
// banks results for the player whose move produced its position, the
// opponent of the side to move here.
func (n *node) perspective() float64 {
	if n.redToMove {
		return -1
	}
	return 1
}

// expand adds one child per candidate action, carrying the candidate's
// heuristic weight as its prior. Actions already expanded are left
// untouched, so repeated calls are safe.
func (n *node) expand(priors []game.ActionPrior) {
	for _, ap := range priors {
		if _, ok := n.children[ap.Action]; ok {
			continue
		}
		n.children[ap.Action] = newNode(n, ap.Weight, !n.redToMove)
	}
}

// evaluate computes the UCT score. Only valid on non-root nodes whose
// parent has been visited at least once; the selection path guarantees
// both.
func (n *node) evaluate(exploration float64) float64 {
	n.uct = n.prior * exploration *
		math.Sqrt(2*math.Log(float64(n.parent.visits))) / float64(1+n.visits)
	return n.quality + n.uct
}

// selectChild picks the child with the best UCT score, or in final mode
// the most-visited child: the robust choice for the move actually
// played once the budget is spent. Ties fall to map iteration order.
// ok is false when the node has no children.
func (n *node) selectChild(exploration float64, final bool) (game.Action, *node, bool) {
	var (
		bestAction game.Action
		best       *node
	)
	bestScore := math.Inf(-1)
	for action, child := range n.children {
		var score float64
		if final {
			score = float64(child.visits)
		} else {
			score = child.evaluate(exploration)
		}
		if score > bestScore {
			bestScore = score
			bestAction = action
			best = child
		}
	}
	return bestAction, best, best != nil
}

// update folds one result into the running mean.
func (n *node) update(result float64) {
	n.visits++
	n.quality += (result - n.quality) / float64(n.visits)
}

// updateFromRoot records result here and propagates it up the ancestor
// chain. Each ancestor step negates the value (outcomes are zero-sum
// from alternating perspectives) and decays it, so confidence shrinks
// with distance from the rollout endpoint.
func (n *node) updateFromRoot(result float64) {
	if n.parent != nil {
		n.parent.updateFromRoot(-result * backpropDecay)
	}
	n.update(result)
}
