package domain

import "fmt"

// Target is a hostname to be checked for reachability.
type Target string

type State int

const (
	Down State = iota
	Up
)

func (s State) String() string {
	if s == Up {
		return "UP"
	}
	return "DOWN"
}

// Status is the computed reachability of one target for a single run.
type Status struct {
	Target Target
	State  State
}

// Line renders the human-readable status line for s.
func (s Status) Line() string {
	if s.State == Up {
		return fmt.Sprintf("UP %s The server is up and running", s.Target)
	}
	return fmt.Sprintf("DOWN %s The server is down, contact your Network Administrator", s.Target)
}

var defaultTargets = []Target{"google.com", "facebook.com", "punchng.com"}

// DefaultTargets returns a fresh copy of the fixed target list.
func DefaultTargets() []Target {
	out := make([]Target, len(defaultTargets))
	copy(out, defaultTargets)
	return out
}
