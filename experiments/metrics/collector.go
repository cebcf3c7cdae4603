package metrics

import (
	"time"
)

type SearchMetric struct {
	SearchID       string
	Iterations     int
	Duration       time.Duration
	Nodes          int
	MaxDepth       int
	TerminalLeaves int // iterations whose selection leaf was already terminal
	RolloutPlies   int
	Draws          int
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	GameID         string
	StartingPlayer string
	Winner         string // "" for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector receives search events. A collector serves one search at a time.
type Collector interface {
	Start(searchID string)
	AddIteration(depth int)
	AddTerminalLeaf()
	AddRollout(plies int, draw bool)
	Complete(nodes int) SearchMetric
}

type collector struct {
	searchID       string
	startTime      time.Time
	iterations     int
	maxDepth       int
	terminalLeaves int
	rolloutPlies   int
	draws          int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(searchID string) {
	*m = collector{searchID: searchID, startTime: time.Now()}
}

func (m *collector) AddIteration(depth int) {
	m.iterations++
	m.maxDepth = max(m.maxDepth, depth)
}

func (m *collector) AddTerminalLeaf() {
	m.terminalLeaves++
}

func (m *collector) AddRollout(plies int, draw bool) {
	m.rolloutPlies += plies
	if draw {
		m.draws++
	}
}

func (m *collector) Complete(nodes int) SearchMetric {
	return SearchMetric{
		SearchID:       m.searchID,
		Iterations:     m.iterations,
		Duration:       time.Since(m.startTime),
		Nodes:          nodes,
		MaxDepth:       m.maxDepth,
		TerminalLeaves: m.terminalLeaves,
		RolloutPlies:   m.rolloutPlies,
		Draws:          m.draws,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(searchID string)           {}
func (m *dummyCollector) AddIteration(depth int)          {}
func (m *dummyCollector) AddTerminalLeaf()                {}
func (m *dummyCollector) AddRollout(plies int, draw bool) {}
func (m *dummyCollector) Complete(nodes int) SearchMetric { return SearchMetric{} }
