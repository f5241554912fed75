package scene

import "github.com/calder-games/stagehand/internal/machine"

var _ machine.Sequence = (*childSequence)(nil)

// childSequence adapts a node's children into a machine.Sequence. It
// holds the parent node by reference, so structural edits to the graph
// are visible through the sequence immediately.
type childSequence struct {
	parent *Node
}

// SequenceOf returns a machine.Sequence over parent's children in
// sibling order. The view is read-only and non-owning: the graph must
// outlive the machine using it.
func SequenceOf(parent *Node) machine.Sequence {
	return &childSequence{parent: parent}
}

func (s *childSequence) Len() int {
	return len(s.parent.children)
}

func (s *childSequence) At(i int) machine.State {
	if c := s.parent.Child(i); c != nil {
		return c
	}
	return nil
}

func (s *childSequence) ByName(name string) machine.State {
	if c := s.parent.ChildByName(name); c != nil {
		return c
	}
	return nil
}

func (s *childSequence) IndexOf(target machine.State) int {
	node, ok := target.(*Node)
	if !ok {
		return -1
	}
	return s.parent.IndexOf(node)
}

func (s *childSequence) States() []machine.State {
	out := make([]machine.State, len(s.parent.children))
	for i, c := range s.parent.children {
		out[i] = c
	}
	return out
}
