package machine

// Sequence is the ordered collection of states the machine navigates.
// The collection is owned by the host (a scene graph, a config loader,
// a test fixture) and must outlive the machine; the machine only reads
// from it. Indices are stable for the lifetime of the sequence.
type Sequence interface {
	// Len returns the number of states in the sequence.
	Len() int

	// At returns the state at index i, or nil when i is out of range.
	At(i int) State

	// ByName returns the first state with the given name, or nil when no
	// state matches.
	ByName(name string) State

	// IndexOf returns the index of the given state, or -1 when the state
	// is not a member of this sequence. This doubles as the ownership
	// check for transition requests.
	IndexOf(s State) int

	// States returns the states in sequence order.
	States() []State
}

var _ Sequence = (*SliceSequence)(nil)

// SliceSequence is a Sequence backed by a plain slice. It is the
// simplest host-side provider, used when states are assembled directly
// rather than discovered from a scene graph.
type SliceSequence struct {
	states []State
}

// NewSliceSequence creates a SliceSequence from the given states, in
// order.
func NewSliceSequence(states ...State) *SliceSequence {
	return &SliceSequence{states: states}
}

func (s *SliceSequence) Len() int {
	return len(s.states)
}

func (s *SliceSequence) At(i int) State {
	if i < 0 || i >= len(s.states) {
		return nil
	}
	return s.states[i]
}

func (s *SliceSequence) ByName(name string) State {
	for _, st := range s.states {
		if st.Name() == name {
			return st
		}
	}
	return nil
}

func (s *SliceSequence) IndexOf(target State) int {
	for i, st := range s.states {
		if st == target {
			return i
		}
	}
	return -1
}

func (s *SliceSequence) States() []State {
	out := make([]State, len(s.states))
	copy(out, s.states)
	return out
}
