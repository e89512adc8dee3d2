package machine

import (
	"errors"
	"fmt"
)

type State interface {
	~string
}

var ErrInvalidTransition = errors.New("invalid state transition")

// Transition lists the states reachable from a single state
type Transition[S State] struct {
	from S
	to   []S
}

// From starts a transition from the given state
func From[S State](from S) Transition[S] {
	return Transition[S]{from: from}
}

// To sets the states reachable from the transition's origin
func (t Transition[S]) To(to ...S) Transition[S] {
	t.to = to
	return t
}

// StateMachine validates moves away from a current state
type StateMachine[S State] struct {
	current S
	allowed map[S][]S
}

func New[S State](current S, transitions ...Transition[S]) *StateMachine[S] {
	allowed := make(map[S][]S, len(transitions))
	for _, t := range transitions {
		allowed[t.from] = append(allowed[t.from], t.to...)
	}

	return &StateMachine[S]{current: current, allowed: allowed}
}

// ToState returns ErrInvalidTransition unless s is reachable from the current state
func (m *StateMachine[S]) ToState(s S) error {
	for _, candidate := range m.allowed[m.current] {
		if candidate == s {
			return nil
		}
	}

	return fmt.Errorf("%w: %q to %q", ErrInvalidTransition, m.current, s)
}

// Terminal reports whether no transitions leave the current state
func (m *StateMachine[S]) Terminal() bool {
	return len(m.allowed[m.current]) == 0
}
