package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"mcts/agent"
	"mcts/engine"
	"mcts/experiments"
	"mcts/game"
	"mcts/game/tictactoe"
	"mcts/meta"
	"mcts/searcher"
	"os"
	"os/signal"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	mode        string
	human       string
	iterations  int
	exploration float64
	seed        uint64
	logLevel    string
	config      string
	out         string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("failed")
	}
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("mcts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.mode, "mode", "play", "play a game or run an experiment: play|experiment")
	fs.StringVar(&opts.human, "human", "X", "side played by the human: X|O|none")
	fs.IntVar(&opts.iterations, "iterations", meta.ITERATIONS, "search iterations per move")
	fs.Float64Var(&opts.exploration, "exploration", meta.EXPLORATION, "UCB1 exploration constant")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed, 0 seeds from the clock")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "trace|debug|info|warn|error")
	fs.StringVar(&opts.config, "config", "", "experiment config file (YAML)")
	fs.StringVar(&opts.out, "out", "results", "directory for experiment results")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.iterations < 1 {
		return options{}, fmt.Errorf("%w: got %d", searcher.ErrInvalidIterations, opts.iterations)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, in io.Reader, out, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	switch opts.mode {
	case "play":
		return play(ctx, opts, in, out)
	case "experiment":
		return experiment(ctx, opts, out)
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func newBoard() game.Game[tictactoe.Move, tictactoe.Player] {
	return tictactoe.New()
}

func newSearchAgent(opts options, seed uint64) agent.Agent[tictactoe.Move, tictactoe.Player] {
	searchOptions := []searcher.Option{
		searcher.WithIterations(opts.iterations),
		searcher.WithExploration(opts.exploration),
	}
	if opts.seed != 0 {
		searchOptions = append(searchOptions, searcher.WithSeed(seed))
	}
	return agent.NewSearchAgent(searcher.NewMCTS[tictactoe.Move, tictactoe.Player](searchOptions...))
}

func play(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	human := agent.NewHumanAgent[tictactoe.Move, tictactoe.Player](in, out, tictactoe.ParseMove)
	var agents []agent.Agent[tictactoe.Move, tictactoe.Player]
	switch opts.human {
	case "X":
		agents = append(agents, human, newSearchAgent(opts, opts.seed))
	case "O":
		agents = append(agents, newSearchAgent(opts, opts.seed), human)
	case "none":
		agents = append(agents, newSearchAgent(opts, opts.seed), newSearchAgent(opts, opts.seed+1))
	default:
		return fmt.Errorf("unknown human side %q", opts.human)
	}

	e, err := engine.NewLocal(newBoard, agents...)
	if err != nil {
		return err
	}

	term := termenv.NewOutput(out)
	fmt.Fprint(out, tictactoe.New().Render(term))
	e.OnMove = func(step int, player tictactoe.Player, action tictactoe.Move, state game.Game[tictactoe.Move, tictactoe.Player]) {
		fmt.Fprintf(out, "\nPlayer %v plays %v\n", player, action)
		if board, ok := state.(*tictactoe.Board); ok {
			fmt.Fprint(out, board.Render(term))
		}
	}

	result, err := e.Run(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(out, "\nBye!")
		return nil
	}
	if err != nil {
		return err
	}

	if result.Outcome.Decisive {
		fmt.Fprintf(out, "Player %v wins!\n", result.Outcome.Winner)
	} else {
		fmt.Fprintln(out, "Draw!")
	}
	return nil
}

func experiment(ctx context.Context, opts options, out io.Writer) error {
	if opts.config == "" {
		return errors.New("experiment mode needs -config")
	}
	cfg, err := experiments.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	report, err := experiments.Run(ctx, cfg, newBoard)
	if err != nil {
		return err
	}
	for _, summary := range report.Summaries {
		fmt.Fprintln(out, summary)
	}

	dir, err := report.Save(opts.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Results written to %s\n", dir)
	return nil
}
