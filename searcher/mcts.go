package searcher

import (
	"fmt"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/meta"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(c *config)

type config struct {
	iterations  int
	exploration float64
	reward      Reward
	rand        Rand
	logger      zerolog.Logger
	metrics     metrics.Collector
}

// MCTS runs random-rollout UCT searches. Every search builds a fresh tree. An MCTS must
// not be used by more than one goroutine at a time.
type MCTS[A comparable, P comparable] struct {
	config
}

func WithIterations(iterations int) Option {
	return func(c *config) {
		if iterations > 0 {
			c.iterations = iterations
		}
	}
}

func WithExploration(exploration float64) Option {
	return func(c *config) {
		if exploration >= 0 {
			c.exploration = exploration
		}
	}
}

func WithReward(reward Reward) Option {
	return func(c *config) {
		c.reward = reward
	}
}

func WithRand(r Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rand = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = metrics.NewCollector()
	}
}

func NewMCTS[A comparable, P comparable](options ...Option) *MCTS[A, P] {
	m := &MCTS[A, P]{config{ // Default values
		iterations:  meta.ITERATIONS,
		exploration: meta.EXPLORATION,
		reward:      SignedReward,
		rand:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		logger:      log.Logger,
		metrics:     metrics.NewDummyCollector(),
	}}
	for _, option := range options {
		option(&m.config)
	}
	return m
}

// Search returns the best action for the player to move in state after iterations
// simulations.
func Search[A comparable, P comparable](state game.Game[A, P], iterations int) (A, error) {
	if iterations < 1 {
		var none A
		return none, fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}
	return NewMCTS[A, P](WithIterations(iterations)).Search(state)
}

func (m *MCTS[A, P]) Iterations() int {
	return m.iterations
}

// Search runs the configured number of iterations on state and returns the best action.
// State is never modified.
func (m *MCTS[A, P]) Search(state game.Game[A, P]) (A, error) {
	tree, _, err := m.Simulate(state)
	if err != nil {
		var none A
		return none, err
	}
	return tree.BestAction()
}

// Simulate builds a search tree for state and returns it with the collected metrics.
func (m *MCTS[A, P]) Simulate(state game.Game[A, P]) (*Tree[A, P], metrics.SearchMetric, error) {
	if state.Done() || len(state.LegalActions()) == 0 {
		return nil, metrics.SearchMetric{}, ErrTerminalState
	}

	searchID := uuid.NewString()
	logger := m.logger.With().Str("search", searchID).Logger()

	tree, err := newTree(state, m.reward)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}

	start := time.Now()
	m.metrics.Start(searchID)
	for i := 0; i < m.iterations; i++ {
		if err := m.simulate(tree, state, logger); err != nil {
			logger.Error().Err(err).Int("iteration", i+1).Msg("search aborted")
			return nil, metrics.SearchMetric{}, fmt.Errorf("iteration %d: %w", i+1, err)
		}
	}
	metric := m.metrics.Complete(tree.Len())

	if e := logger.Debug(); e.Enabled() {
		e.Int("iterations", m.iterations).
			Int("nodes", tree.Len()).
			Interface("player", tree.Root().ToPlay).
			Interface("pv", tree.PrincipalVariation()).
			Dur("duration", time.Since(start)).
			Msg("search completed")
	}

	return tree, metric, nil
}

func (m *MCTS[A, P]) simulate(tree *Tree[A, P], initial game.Game[A, P], logger zerolog.Logger) error {
	expanded, state, depth, err := m.selectThenExpand(tree, initial, logger)
	if err != nil {
		return err
	}

	outcome, plies, err := Rollout(state, m.rand)
	if err != nil {
		return err
	}
	m.metrics.AddRollout(plies, outcome.Draw())
	m.metrics.AddIteration(depth)

	return backup(tree, expanded, outcome)
}

// selectThenExpand descends the tree by UCT until a node that is terminal or has an untried
// action, replays the path on a clone of initial, then expands one action. It returns the
// expanded node, its state and its depth.
func (m *MCTS[A, P]) selectThenExpand(tree *Tree[A, P], initial game.Game[A, P], logger zerolog.Logger) (NodeID, game.Game[A, P], int, error) {
	leaf, path, err := m.selection(tree)
	if err != nil {
		return NoNode, nil, 0, err
	}

	state := initial.Clone()
	for _, action := range path {
		if _, err := state.Step(action); err != nil {
			return NoNode, nil, 0, fmt.Errorf("%w: replaying %v: %w", ErrInvariant, action, err)
		}
	}

	node, err := tree.store.Get(leaf)
	if err != nil {
		return NoNode, nil, 0, err
	}
	if node.Terminal {
		m.metrics.AddTerminalLeaf()
		return leaf, state, node.Depth, nil
	}

	child, err := expand(tree, leaf, state)
	if err != nil {
		return NoNode, nil, 0, err
	}
	if e := logger.Trace(); e.Enabled() {
		e.Interface("path", path).Uint64("node", uint64(child)).Msg("expanded")
	}
	return child, state, node.Depth + 1, nil
}

// selection walks from the root and returns the selection leaf with the actions leading
// to it.
func (m *MCTS[A, P]) selection(tree *Tree[A, P]) (NodeID, []A, error) {
	id := tree.root
	var path []A
	for {
		node, err := tree.store.Get(id)
		if err != nil {
			return NoNode, nil, err
		}
		if node.Terminal || len(node.Untried) > 0 {
			return id, path, nil
		}
		if len(node.Children) == 0 {
			return NoNode, nil, fmt.Errorf("%w: node %d has neither untried actions nor children", ErrInvariant, id)
		}

		edge, err := m.pickChild(tree, id, node)
		if err != nil {
			return NoNode, nil, err
		}
		path = append(path, edge.Action)
		id = edge.Node
	}
}

func (m *MCTS[A, P]) pickChild(tree *Tree[A, P], id NodeID, node *Node[A, P]) (Edge[A], error) {
	if node.Visits == 0 {
		return Edge[A]{}, fmt.Errorf("%w: node %d has children but no visits", ErrInvariant, id)
	}

	policy := newUCT(m.reward, m.exploration, node.Visits)

	maxIndex := -1
	maxScore := 0.0
	for i, edge := range node.Children {
		child, err := tree.store.Get(edge.Node)
		if err != nil {
			return Edge[A]{}, err
		}
		if child.Visits == 0 {
			return Edge[A]{}, fmt.Errorf("%w: child %d of node %d has no visits", ErrInvariant, edge.Node, id)
		}
		score := policy.evaluate(child.Score, child.Visits)
		if maxIndex < 0 || score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return node.Children[maxIndex], nil
}

// expand plays the last untried action of id on state and links the resulting child.
func expand[A comparable, P comparable](tree *Tree[A, P], id NodeID, state game.Game[A, P]) (NodeID, error) {
	node, err := tree.store.Get(id)
	if err != nil {
		return NoNode, err
	}

	action := node.popUntried()
	if _, err := state.Step(action); err != nil {
		return NoNode, fmt.Errorf("%w: expanding %v: %w", ErrInvariant, action, err)
	}

	child, err := tree.store.Create(state, id)
	if err != nil {
		return NoNode, err
	}
	err = tree.store.Mutate(id, func(n *Node[A, P]) {
		n.Children = append(n.Children, Edge[A]{Action: action, Node: child})
	})
	return child, err
}

// backup credits outcome to every node from id up to the root, each from the perspective
// of its own player to move.
func backup[A comparable, P comparable](tree *Tree[A, P], id NodeID, outcome game.Outcome[P]) error {
	for id != NoNode {
		var parent NodeID
		err := tree.store.Mutate(id, func(n *Node[A, P]) {
			n.Visits++
			n.Score += tree.reward.credit(outcome.Decisive, outcome.WonBy(n.ToPlay))
			parent = n.Parent
		})
		if err != nil {
			return err
		}
		id = parent
	}
	return nil
}
