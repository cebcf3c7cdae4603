package searcher

import (
	"fmt"
	"mcts/game"
)

// Store owns every node of one search. Identifiers are handed out in creation order and
// are only meaningful to the store that created them.
type Store[A comparable, P comparable] struct {
	nodes []*Node[A, P]
}

func NewStore[A comparable, P comparable]() *Store[A, P] {
	return &Store[A, P]{}
}

// Create snapshots state into a new node under parent. Pass NoNode for the root.
func (s *Store[A, P]) Create(state game.Game[A, P], parent NodeID) (NodeID, error) {
	depth := 0
	if parent != NoNode {
		p, err := s.Get(parent)
		if err != nil {
			return NoNode, err
		}
		if p.Terminal {
			return NoNode, fmt.Errorf("%w: terminal node %d cannot have children", ErrInvariant, parent)
		}
		depth = p.Depth + 1
	}

	s.nodes = append(s.nodes, newNode(parent, depth, state))
	return NodeID(len(s.nodes)), nil
}

func (s *Store[A, P]) Get(id NodeID) (*Node[A, P], error) {
	if id == NoNode || int(id) > len(s.nodes) {
		return nil, fmt.Errorf("%w: unknown node %d", ErrInvariant, id)
	}
	return s.nodes[id-1], nil
}

func (s *Store[A, P]) Mutate(id NodeID, fn func(node *Node[A, P])) error {
	node, err := s.Get(id)
	if err != nil {
		return err
	}
	fn(node)
	return nil
}

// Len returns the number of nodes created so far.
func (s *Store[A, P]) Len() int {
	return len(s.nodes)
}
