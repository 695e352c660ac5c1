package appstate

import (
	"fmt"

	"github.com/fosdem/glmix/lib/kbdctl"
)

type Phase int

const (
	Initializing Phase = iota
	Running
	Closing
)

func (p Phase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is everything the render loop mutates between frames. It is owned
// by the loop and handed to the input and draw steps explicitly.
type State struct {
	Mix    kbdctl.Mix
	Frames uint64

	phase Phase
}

func New() *State {
	return &State{}
}

func (s *State) Phase() Phase {
	return s.phase
}

// Start marks setup as complete. It is only valid once.
func (s *State) Start() error {
	if s.phase != Initializing {
		return fmt.Errorf("cannot start from phase %s", s.phase)
	}
	s.phase = Running
	return nil
}

// Close can be requested from any phase, setup failures included.
func (s *State) Close() {
	s.phase = Closing
}

func (s *State) Running() bool {
	return s.phase == Running
}
