package engine

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Lingfeng158/HexMcts/communication"
	"github.com/Lingfeng158/HexMcts/searcher"
)

// Session drives one long-lived match over the turn protocol: recover
// the position from history, answer, then alternate with the opponent,
// emitting the keep-alive sentinel after every reply. The clock for a
// turn starts when its request arrives.
type Session struct {
	mcts            *searcher.MCTS
	in              *bufio.Scanner
	out             io.Writer
	firstMultiplier float64
}

// NewSession wraps a controller with the stdio protocol. The first
// turn's budget is scaled by firstMultiplier; the host grants extra
// time on turn one.
func NewSession(mcts *searcher.MCTS, in io.Reader, out io.Writer, firstMultiplier float64) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if firstMultiplier <= 0 {
		firstMultiplier = 1.0
	}
	return &Session{
		mcts:            mcts,
		in:              scanner,
		out:             out,
		firstMultiplier: firstMultiplier,
	}
}

// Run blocks until the input stream closes or a turn fails.
func (s *Session) Run() error {
	start := time.Now()
	line, err := s.readLine()
	if err != nil {
		return err
	}
	var first communication.FirstRequest
	if err := json.Unmarshal(line, &first); err != nil {
		return fmt.Errorf("decoding first request: %w", err)
	}
	history := first.History()
	if err := s.mcts.RecoverFromHistory(history); err != nil {
		return fmt.Errorf("recovering from history: %w", err)
	}
	log.Info().Int("moves", len(history)).Msg("recovered position from history")

	if err := s.respond(start, s.firstMultiplier); err != nil {
		return err
	}

	for {
		line, err := s.readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		start := time.Now()
		var move communication.Coord
		if err := json.Unmarshal(line, &move); err != nil {
			return fmt.Errorf("decoding opponent move: %w", err)
		}
		if err := s.mcts.UpdateWithMove(move.Action()); err != nil {
			return fmt.Errorf("applying opponent move: %w", err)
		}
		if err := s.respond(start, 1.0); err != nil {
			return err
		}
	}
}

func (s *Session) readLine() ([]byte, error) {
	for s.in.Scan() {
		line := bytes.TrimSpace(s.in.Bytes())
		if len(line) > 0 {
			return line, nil
		}
	}
	if err := s.in.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// respond searches under the scaled budget, commits the chosen move and
// writes the reply followed by the keep-alive sentinel.
func (s *Session) respond(start time.Time, multiplier float64) error {
	action, err := s.mcts.ComputeNextMove(start, multiplier)
	if err != nil {
		return fmt.Errorf("computing move: %w", err)
	}
	if err := s.mcts.UpdateWithMove(action); err != nil {
		return fmt.Errorf("committing own move: %w", err)
	}

	reply, err := json.Marshal(communication.TurnResponse{Response: communication.FromAction(action)})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.out, "%s\n%s\n", reply, communication.KeepAlive); err != nil {
		return err
	}

	metrics := s.mcts.LastMetrics()
	log.Info().
		Int8("row", action.Row).
		Int8("col", action.Col).
		Int64("playouts", metrics.Playouts).
		Int64("rollouts", metrics.Rollouts).
		Bool("tree_reused", metrics.TreeReused).
		Dur("took", metrics.Duration).
		Msg("move committed")
	return nil
}
