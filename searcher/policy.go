package searcher

import "math"

// Rewards credited to a node's ToPlay
const (
	Win  = 1.0
	Loss = -Win
	Draw = 0.0
)

// Reward decides how a simulated outcome is credited to a node and how the accumulated
// score maps back to a win rate in [0, 1].
type Reward int

const (
	// SignedReward credits +1 for a win, -1 for a loss and 0 for a draw
	SignedReward Reward = iota
	// DrawAwareReward credits 1 for a win, 0 for a loss and 0.5 for a draw
	DrawAwareReward
)

func (r Reward) credit(decisive, won bool) float64 {
	switch {
	case !decisive && r == DrawAwareReward:
		return 0.5
	case !decisive:
		return Draw
	case won:
		return Win
	case r == DrawAwareReward:
		return 0
	default:
		return Loss
	}
}

// winRate normalizes an accumulated score to [0, 1] from the node's own perspective.
func (r Reward) winRate(score float64, visits int) float64 {
	mean := score / float64(visits)
	if r == DrawAwareReward {
		return mean
	}
	return (mean + 1) / 2
}

// parentValue is the child's win rate seen by the player choosing the move into the
// child, the opponent of the child's ToPlay.
func (r Reward) parentValue(score float64, visits int) float64 {
	return 1 - r.winRate(score, visits)
}

func (r Reward) String() string {
	if r == DrawAwareReward {
		return "draw-aware"
	}
	return "signed"
}

type uct struct {
	reward    Reward
	c         float64
	numerator float64
}

func newUCT(reward Reward, c float64, N int) uct {
	return uct{reward: reward, c: c, numerator: 2 * math.Log(float64(N))}
}

// UCT = (1 - winRate(q/n)) + c*sqrt(2*ln(N)/n)
func (u uct) evaluate(q float64, n int) float64 {
	return u.reward.parentValue(q, n) + u.c*math.Sqrt(u.numerator/float64(n))
}
