// Package scene provides a minimal scene graph: named nodes with stable
// sibling order, the structure a host engine uses as the source of truth
// for state membership and ordering. A node's children can be viewed as
// a machine.Sequence, making the graph the state sequence provider for
// an ordered-state machine.
package scene

import (
	"fmt"
	"strings"

	"github.com/calder-games/stagehand/internal/machine"
	"github.com/gofrs/uuid/v5"
)

var (
	_ machine.State     = (*Node)(nil)
	_ machine.Enterable = (*Node)(nil)
	_ machine.Exitable  = (*Node)(nil)
	_ machine.Tickable  = (*Node)(nil)
)

// Node is one element of the scene graph. Child order is insertion
// order and defines sibling indices. A node may carry a behavior whose
// capability interfaces (machine.Enterable, machine.Exitable,
// machine.Tickable) receive the node's lifecycle notifications.
type Node struct {
	id       uuid.UUID
	name     string
	parent   *Node
	children []*Node
	behavior any
}

// NewNode creates a detached node with the given name.
func NewNode(name string) *Node {
	return &Node{
		id:   uuid.Must(uuid.NewV6()),
		name: name,
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() uuid.UUID {
	return n.id
}

// Name returns the node's name. Together with the node's sibling index
// this is the node's identity as a machine.State.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the node's parent, or nil for a root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks up the parent chain and returns the topmost node.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Path returns the slash-separated node names from the root to this node.
func (n *Node) Path() string {
	if n.parent == nil {
		return "/" + n.name
	}
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString("/")
		b.WriteString(names[i])
	}
	return b.String()
}

// SetBehavior attaches a behavior to the node. The behavior receives
// Enter/Exit/Tick notifications for whichever of the machine capability
// interfaces it implements.
func (n *Node) SetBehavior(b any) {
	n.behavior = b
}

// Behavior returns the attached behavior, or nil.
func (n *Node) Behavior() any {
	return n.behavior
}

// AddChild appends child to this node's children, after the existing
// siblings. The child must be detached.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return fmt.Errorf("cannot add nil child to %q", n.name)
	}
	if child.parent != nil {
		return fmt.Errorf("node %q already has parent %q", child.name, child.parent.name)
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == child {
			return fmt.Errorf("adding %q to %q would create a cycle", child.name, n.name)
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child from this node, preserving the order of
// the remaining siblings. Returns false when child is not a child of
// this node.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Children returns the node's children in sibling order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the child at index i, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// ChildByName returns the first child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// IndexOf returns the sibling index of child under this node, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Enter forwards the notification to the behavior's Enterable
// capability, if present.
func (n *Node) Enter() {
	if e, ok := n.behavior.(machine.Enterable); ok {
		e.Enter()
	}
}

// Exit forwards the notification to the behavior's Exitable capability,
// if present.
func (n *Node) Exit() {
	if e, ok := n.behavior.(machine.Exitable); ok {
		e.Exit()
	}
}

// Tick forwards the per-frame callback to the behavior's Tickable
// capability, if present.
func (n *Node) Tick() {
	if t, ok := n.behavior.(machine.Tickable); ok {
		t.Tick()
	}
}
