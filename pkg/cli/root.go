/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kubenum/pkg/config"
	"github.com/NVIDIA/kubenum/pkg/logging"
)

const name = "kubenum"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

// Execute runs the root command and exits the process with status 1 on error.
func Execute() {
	if code := execute(context.Background(), os.Args, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// execute runs the root command with args and returns the process exit code.
// Errors are printed once to stderr.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cmd := newRootCmd(cfg)
	cmd.Writer = stdout
	cmd.ErrWriter = stderr
	if err := cmd.Run(ctx, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Dump and analyze Kubernetes cluster configuration",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "timeout",
				Value: cfg.TimeoutSeconds(),
				Usage: "overall dump deadline in seconds",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "write logs to stderr as JSON",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logging.ParseLevel(cfg.LogLevel)
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			if cmd.Bool("log-json") {
				logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			} else {
				logging.SetDefaultCLILogger(level)
			}
			slog.Debug("starting",
				slog.String("name", name),
				slog.String("version", version),
				slog.String("commit", commit))
			return ctx, nil
		},
		Commands: []*cli.Command{
			dumpCmd(cfg),
			analyzeCmd(),
			{
				Name:   "commands",
				Usage:  "List all available commands",
				Hidden: true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					commandLister(ctx, cmd.Root())
					return nil
				},
			},
		},
	}
}

// commandLister prints the visible commands of cmd, one per line, nested
// subcommands prefixed with their parent.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	var walk func(prefix string, cmds []*cli.Command)
	walk = func(prefix string, cmds []*cli.Command) {
		for _, c := range cmds {
			if c.Hidden {
				continue
			}
			fmt.Fprintln(w, prefix+c.Name)
			walk(prefix+c.Name+" ", c.Commands)
		}
	}
	walk("", cmd.Commands)
}
