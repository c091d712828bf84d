// Package communication defines the wire types of the turn-based
// exchange protocol: line-delimited JSON on stdio, where the first
// request carries the full move history and later requests carry just
// the opponent's move.
package communication

import "github.com/Lingfeng158/HexMcts/game"

// Coord is an {x,y} pair on the wire; x is the row. Negative
// coordinates mean "no move yet", i.e. we open the game.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IsNoMove reports whether the coordinate is the "no move" marker.
func (c Coord) IsNoMove() bool {
	return c.X < 0 || c.Y < 0
}

// Action converts the wire coordinate to a board action.
func (c Coord) Action() game.Action {
	return game.Action{Row: int8(c.X), Col: int8(c.Y)}
}

// FromAction converts a board action to its wire coordinate.
func FromAction(a game.Action) Coord {
	return Coord{X: int(a.Row), Y: int(a.Col)}
}

// FirstRequest is the history message that opens a session: the
// opponent's moves and our own past replies, strictly interleaved.
type FirstRequest struct {
	Requests  []Coord `json:"requests"`
	Responses []Coord `json:"responses"`
}

// History flattens the message into the ordered move list to replay.
// The "no move" marker on the opening request is skipped.
func (fr FirstRequest) History() []game.Action {
	moves := make([]game.Action, 0, len(fr.Requests)+len(fr.Responses))
	for i, req := range fr.Requests {
		if !req.IsNoMove() {
			moves = append(moves, req.Action())
		}
		if i < len(fr.Responses) {
			moves = append(moves, fr.Responses[i].Action())
		}
	}
	return moves
}

// TurnResponse is the per-turn reply envelope.
type TurnResponse struct {
	Response Coord `json:"response"`
}

// KeepAlive is the sentinel emitted after each response so the host
// process is kept alive between turns.
const KeepAlive = ">>>BOTZONE_REQUEST_KEEP_RUNNING<<<"
