package searcher

import "time"

// Hyperparameters for the search.

// DefaultExploration scales the UCT exploration bonus.
const DefaultExploration = 0.5

// DefaultBudget is the per-turn wall-clock allowance.
const DefaultBudget = time.Second

// budgetFraction is how much of the allowance the playout loop may
// burn; the remainder is margin for final selection and response I/O.
const budgetFraction = 0.87

// playoutBatch is the number of playouts run between deadline polls.
// Cancellation is batch-grained, so a slow batch can overrun the
// nominal deadline.
const playoutBatch = 50

// backpropDecay discounts a rollout result per ancestor step during
// backpropagation.
const backpropDecay = 0.95

// lateDecay discounts a rollout result per simulated ply once past the
// dense early-check window.
const lateDecay = 0.995

const (
	// denseCheckLimit is the number of plies from the frontier node
	// that get a terminal check on every step.
	denseCheckLimit = 10
	// sparseCheckMask picks every 16th ply for terminal checks after
	// the dense window.
	sparseCheckMask = 15
	// branchMask picks every 32nd ply for rollout forking.
	branchMask = 31
)
