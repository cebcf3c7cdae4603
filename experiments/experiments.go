package experiments

import (
	"context"
	"fmt"
	"mcts/agent"
	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Matchup    Matchup
	Games      int
	FirstWins  int // wins of Matchup.First, whichever side it started on
	SecondWins int
	Draws      int
	MeanMoves  float64
	StdMoves   float64
}

func (s Summary) String() string {
	return fmt.Sprintf("agent %d vs agent %d: %d-%d with %d draws over %d games, %.1f±%.1f moves",
		s.Matchup.First, s.Matchup.Second, s.FirstWins, s.SecondWins, s.Draws, s.Games, s.MeanMoves, s.StdMoves)
}

type Report struct {
	Config    Config
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []Summary
}

// Run plays cfg.Games games for every matchup, at most cfg.Workers at a time. The agents
// swap sides every game so both start equally often.
func Run[A comparable, P comparable](ctx context.Context, cfg Config, newGame func() game.Game[A, P]) (Report, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	total := len(cfg.Matchups) * cfg.Games
	records := make([]metrics.GameRecord, total)
	moves := make([][]metrics.MoveRecord, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for mi, matchup := range cfg.Matchups {
		for i := 0; i < cfg.Games; i++ {
			mi, i := mi, i
			index := mi*cfg.Games + i
			first, second := cfg.agent(matchup.First), cfg.agent(matchup.Second)
			if i%2 == 1 {
				first, second = second, first
			}

			g.Go(func() error {
				logger := log.With().Int("matchup", mi+1).Int("game", i+1).Logger()
				gameSeed := seed + uint64(index)*2
				e, err := engine.NewLocal(newGame,
					newAgent[A, P](first, gameSeed, logger),
					newAgent[A, P](second, gameSeed+1, logger),
				)
				if err != nil {
					return err
				}
				e.Logger = logger

				result, err := playGame[P](ctx, e)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}

				records[index] = metrics.GameRecord{
					ID:         index + 1,
					Agent1:     first.ID,
					Agent2:     second.ID,
					GameMetric: result.Game,
				}
				moves[index] = make([]metrics.MoveRecord, 0, len(result.Moves))
				for _, mm := range result.Moves {
					moves[index] = append(moves[index], metrics.MoveRecord{Game: index + 1, MoveMetric: mm})
				}

				logger.Info().Msgf("completed game with winner: %v", result.Outcome)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Config: cfg, Games: records}
	for _, m := range moves {
		report.Moves = append(report.Moves, m...)
	}
	for mi, matchup := range cfg.Matchups {
		report.Summaries = append(report.Summaries, summarize(matchup, records[mi*cfg.Games:(mi+1)*cfg.Games]))
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)
	return report, nil
}

func playGame[P comparable](ctx context.Context, e engine.Engine[P]) (engine.Result[P], error) {
	return e.Run(ctx)
}

func newAgent[A comparable, P comparable](config metrics.AgentConfig, seed uint64, logger zerolog.Logger) agent.Agent[A, P] {
	r := rand.New(rand.NewSource(seed))
	if config.Random {
		return agent.NewRandomAgent[A, P](r)
	}

	mcts := searcher.NewMCTS[A, P](
		searcher.WithIterations(config.Iterations),
		searcher.WithExploration(config.Exploration),
		searcher.WithRand(r),
		searcher.WithLogger(logger),
		searcher.WithMetrics(),
	)
	if config.Temperature > 0 {
		return agent.NewSamplingAgent(mcts, config.Temperature, rand.New(rand.NewSource(seed^0x5eed)))
	}
	return agent.NewSearchAgent(mcts)
}

// summarize tallies the games of one matchup. Agent1 of a record is the agent that moved
// first, so a win by the starting player goes to it.
func summarize(matchup Matchup, records []metrics.GameRecord) Summary {
	summary := Summary{Matchup: matchup, Games: len(records)}
	lengths := make([]float64, 0, len(records))
	for _, record := range records {
		lengths = append(lengths, float64(record.TotalMoves))

		winner := 0
		switch record.Winner {
		case "":
			summary.Draws++
			continue
		case record.StartingPlayer:
			winner = record.Agent1
		default:
			winner = record.Agent2
		}
		if winner == matchup.First {
			summary.FirstWins++
		} else {
			summary.SecondWins++
		}
	}
	if len(lengths) > 0 {
		summary.MeanMoves, summary.StdMoves = stat.MeanStdDev(lengths, nil)
	}
	return summary
}

// Save writes the agent configs, game records and move records under
// <root>/<name>/<timestamp> and returns that directory.
func (r Report) Save(root string) (string, error) {
	writer, err := metrics.NewWriter(root, r.Config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(r.Config.Agents); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(r.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(r.Moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
