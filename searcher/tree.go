package searcher

import (
	"fmt"
	"mcts/game"
)

// Tree is the result of one search. It is read-only once returned.
type Tree[A comparable, P comparable] struct {
	store  *Store[A, P]
	root   NodeID
	reward Reward
}

func newTree[A comparable, P comparable](state game.Game[A, P], reward Reward) (*Tree[A, P], error) {
	store := NewStore[A, P]()
	root, err := store.Create(state, NoNode)
	if err != nil {
		return nil, err
	}
	return &Tree[A, P]{store: store, root: root, reward: reward}, nil
}

func (t *Tree[A, P]) RootID() NodeID {
	return t.root
}

func (t *Tree[A, P]) Root() *Node[A, P] {
	root, err := t.store.Get(t.root)
	if err != nil {
		panic(err) // the root is created with the tree
	}
	return root
}

func (t *Tree[A, P]) Node(id NodeID) (*Node[A, P], error) {
	return t.store.Get(id)
}

// Len returns the number of nodes in the tree.
func (t *Tree[A, P]) Len() int {
	return t.store.Len()
}

// Value returns the win rate of a visited node from its parent's perspective.
func (t *Tree[A, P]) Value(id NodeID) (float64, error) {
	node, err := t.store.Get(id)
	if err != nil {
		return 0, err
	}
	if node.Visits == 0 {
		return 0, fmt.Errorf("%w: node %d has no visits", ErrInvariant, id)
	}
	return t.reward.parentValue(node.Score, node.Visits), nil
}

// bestChild returns the visited child with the highest value for the player to move at
// node. Ties go to the child with more visits, then to the earliest expanded.
func (t *Tree[A, P]) bestChild(node *Node[A, P]) (Edge[A], bool, error) {
	var best Edge[A]
	found := false
	bestValue, bestVisits := 0.0, 0
	for _, edge := range node.Children {
		child, err := t.store.Get(edge.Node)
		if err != nil {
			return Edge[A]{}, false, err
		}
		if child.Visits == 0 {
			continue
		}
		value := t.reward.parentValue(child.Score, child.Visits)
		if !found || value > bestValue || (value == bestValue && child.Visits > bestVisits) {
			best, found = edge, true
			bestValue, bestVisits = value, child.Visits
		}
	}
	return best, found, nil
}

// BestAction returns the root action whose child maximizes the root player's win rate.
func (t *Tree[A, P]) BestAction() (A, error) {
	edge, found, err := t.bestChild(t.Root())
	if err != nil {
		var none A
		return none, err
	}
	if !found {
		var none A
		return none, fmt.Errorf("%w: root has no visited children", ErrInvariant)
	}
	return edge.Action, nil
}

// Policy returns the visit count of every expanded root action.
func (t *Tree[A, P]) Policy() map[A]int {
	root := t.Root()
	policy := make(map[A]int, len(root.Children))
	for _, edge := range root.Children {
		child, err := t.store.Get(edge.Node)
		if err != nil {
			continue
		}
		policy[edge.Action] = child.Visits
	}
	return policy
}

// PrincipalVariation follows the best child from the root until a leaf.
func (t *Tree[A, P]) PrincipalVariation() []A {
	var pv []A
	node := t.Root()
	for len(node.Children) > 0 {
		edge, found, err := t.bestChild(node)
		if err != nil || !found {
			break
		}
		pv = append(pv, edge.Action)
		if node, err = t.store.Get(edge.Node); err != nil {
			break
		}
	}
	return pv
}
