package searcher

import (
	"fmt"
	"mcts/game"
)

// NodeID addresses a node inside the Store that created it.
type NodeID uint64

// NoNode is the parent of the root.
const NoNode NodeID = 0

// Edge links a parent to the child reached by playing Action.
type Edge[A comparable] struct {
	Action A
	Node   NodeID
}

// Node holds the statistics of one game state. Score accumulates rewards from the
// perspective of ToPlay, the player choosing the next action at this state.
type Node[A comparable, P comparable] struct {
	Visits   int
	Score    float64
	ToPlay   P
	Parent   NodeID
	Children []Edge[A] // in expansion order
	Untried  []A
	Terminal bool
	Depth    int
}

func newNode[A comparable, P comparable](parent NodeID, depth int, state game.Game[A, P]) *Node[A, P] {
	node := &Node[A, P]{
		ToPlay:   state.CurrentPlayer(),
		Parent:   parent,
		Terminal: state.Done(),
		Depth:    depth,
	}
	if !node.Terminal {
		node.Untried = state.LegalActions()
		// A state without actions is over even if the game forgot to say so
		node.Terminal = len(node.Untried) == 0
		node.Children = make([]Edge[A], 0, len(node.Untried))
	}
	return node
}

// Child returns the node reached by action, if it has been expanded.
func (n *Node[A, P]) Child(action A) (NodeID, bool) {
	for _, edge := range n.Children {
		if edge.Action == action {
			return edge.Node, true
		}
	}
	return NoNode, false
}

// Expandable reports whether the node still has an untried action.
func (n *Node[A, P]) Expandable() bool {
	return !n.Terminal && len(n.Untried) > 0
}

// popUntried removes the last untried action.
func (n *Node[A, P]) popUntried() A {
	last := len(n.Untried) - 1
	action := n.Untried[last]
	n.Untried = n.Untried[:last]
	return action
}

func (n *Node[A, P]) String() string {
	return fmt.Sprintf("{to_play=%v visits=%d score=%.1f children=%d untried=%d terminal=%v}",
		n.ToPlay, n.Visits, n.Score, len(n.Children), len(n.Untried), n.Terminal)
}
