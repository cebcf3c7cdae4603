package main

import (
	"bytes"
	"context"
	"io"
	"mcts/searcher"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(input), &out, io.Discard)
	return out.String(), err
}

func TestParseOptions(t *testing.T) {
	t.Run("using defaults", func(t *testing.T) {
		opts, err := parseOptions(nil, io.Discard)

		require.NoError(t, err)
		require.Equal(t, "play", opts.mode)
		require.Equal(t, "X", opts.human)
		require.Equal(t, 1000, opts.iterations)
		require.Equal(t, 1.0, opts.exploration)
	})

	t.Run("reading flags", func(t *testing.T) {
		opts, err := parseOptions([]string{"-mode", "experiment", "-iterations", "50", "-seed", "7", "-config", "a.yaml"}, io.Discard)

		require.NoError(t, err)
		require.Equal(t, "experiment", opts.mode)
		require.Equal(t, 50, opts.iterations)
		require.Equal(t, uint64(7), opts.seed)
		require.Equal(t, "a.yaml", opts.config)
	})

	t.Run("rejecting a non-positive budget", func(t *testing.T) {
		_, err := parseOptions([]string{"-iterations", "0"}, io.Discard)

		require.ErrorIs(t, err, searcher.ErrInvalidIterations)
	})
}

func TestRun(t *testing.T) {
	t.Run("watching self-play", func(t *testing.T) {
		out, err := runCLI(t, "", "-human", "none", "-iterations", "100", "-seed", "3")

		require.NoError(t, err)
		require.Contains(t, out, "Player X plays")
		require.True(t, strings.HasSuffix(out, "wins!\n") || strings.HasSuffix(out, "Draw!\n"), out)
	})

	t.Run("playing against a human", func(t *testing.T) {
		out, err := runCLI(t, "1 1\n", "-human", "O", "-iterations", "50", "-seed", "3")

		require.NoError(t, err)
		require.Contains(t, out, "Player O, enter your move: ")
		require.True(t, strings.HasSuffix(out, "Bye!\n"), "Running out of input should end the game")
	})

	t.Run("rejecting unknown modes", func(t *testing.T) {
		_, err := runCLI(t, "", "-mode", "tournament")
		require.Error(t, err)

		_, err = runCLI(t, "", "-human", "Z")
		require.Error(t, err)

		_, err = runCLI(t, "", "-log-level", "loud")
		require.Error(t, err)

		_, err = runCLI(t, "", "-mode", "experiment")
		require.Error(t, err, "Experiment mode needs a config")
	})

	t.Run("running an experiment", func(t *testing.T) {
		dir := t.TempDir()
		config := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(config, []byte(`
name: cli
games: 2
workers: 2
agents:
  - {id: 1, iterations: 20}
  - {id: 2, random: true}
matchups:
  - {first: 1, second: 2}
`), 0644))

		out, err := runCLI(t, "", "-mode", "experiment", "-config", config, "-out", dir, "-seed", "5")

		require.NoError(t, err)
		require.Contains(t, out, "agent 1 vs agent 2")
		require.Contains(t, out, "Results written to "+filepath.Join(dir, "cli"))
	})
}
