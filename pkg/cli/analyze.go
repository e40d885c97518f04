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

	"github.com/NVIDIA/kubenum/pkg/analyzer"
	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/serializer"
	"github.com/NVIDIA/kubenum/pkg/snapshot"
)

func reportFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   serializer.FormatText.String(),
		Usage:   "report format (text, json, yaml, table)",
	}
}

var reportFormats = []serializer.Format{serializer.FormatText, serializer.FormatJSON, serializer.FormatYAML, serializer.FormatTable}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Audit a snapshot produced by dump",
		Description: `Runs offline audits over a snapshot file. No cluster access is needed.
Use "-" as <file> to read a JSON snapshot from stdin.`,
		Commands: []*cli.Command{
			analyzeSecretsCmd(),
			analyzeNullsCmd(),
			analyzeVerboseCmd(),
			analyzeUnusedCmd(),
		},
	}
}

func analyzeSecretsCmd() *cli.Command {
	return &cli.Command{
		Name:      "secrets",
		Usage:     "Reveal decoded Secret data and Deployment environment variables",
		ArgsUsage: "<file>",
		Description: `Decodes every Secret's base64 data and lists every environment variable
declared on Deployment containers. Variables sourced through valueFrom
print as N/A.

Examples:
  kubenum analyze secrets snapshot.json --truncate 8
  kubenum analyze secrets snapshot.json --skip password --skip token --skip-ns kube-`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "truncate",
				Usage: "shorten values longer than this many characters (0 disables)",
			},
			&cli.StringSliceFlag{
				Name:  "skip",
				Usage: "hide entries whose key or value contains this text, ignoring case (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "skip-ns",
				Usage: "hide resources whose namespace contains this text (repeatable)",
			},
			reportFormatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd, reportFormats...)
			if err != nil {
				return err
			}
			truncate := cmd.Int("truncate")
			if truncate < 0 {
				return enumerrors.New(enumerrors.ErrCodeInvalidRequest,
					fmt.Sprintf("--truncate must not be negative, got %d", truncate))
			}

			a, snap, err := loadForAnalysis(cmd)
			if err != nil {
				return err
			}

			report, err := a.RevealSecrets(snap, analyzer.SecretOptions{
				Truncate:       truncate,
				Skip:           cmd.StringSlice("skip"),
				SkipNamespaces: cmd.StringSlice("skip-ns"),
			})
			if err != nil {
				return err
			}
			return writeReport(ctx, cmd, outFormat, report)
		},
	}
}

func analyzeNullsCmd() *cli.Command {
	return &cli.Command{
		Name:      "none-values",
		Aliases:   []string{"nulls"},
		Usage:     "List every field explicitly set to null",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{reportFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd, reportFormats...)
			if err != nil {
				return err
			}

			a, snap, err := loadForAnalysis(cmd)
			if err != nil {
				return err
			}

			report, err := a.NullValues(snap)
			if err != nil {
				return err
			}
			return writeReport(ctx, cmd, outFormat, report)
		},
	}
}

func analyzeVerboseCmd() *cli.Command {
	return &cli.Command{
		Name:      "verbose",
		Usage:     "Print the field structure of every resource",
		ArgsUsage: "<file>",
		Description: `Prints every resource's field names indented by depth, with scalar
values on their own line. Top-level metadata and status are left out.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, snap, err := loadForAnalysis(cmd)
			if err != nil {
				return err
			}

			report, err := a.Structure(snap)
			if err != nil {
				return err
			}
			return writeReport(ctx, cmd, serializer.FormatText, report)
		},
	}
}

func analyzeUnusedCmd() *cli.Command {
	return &cli.Command{
		Name:      "unused",
		Usage:     "List Secrets and ConfigMaps no Deployment loads through envFrom",
		ArgsUsage: "<file>",
		Description: `References are matched by name only; namespaces are ignored.
With --dangling, envFrom references to objects missing from the snapshot
are listed too, with the closest existing name as a suggestion.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dangling",
				Usage: "also list envFrom references whose target does not exist",
			},
			reportFormatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd, reportFormats...)
			if err != nil {
				return err
			}

			a, snap, err := loadForAnalysis(cmd)
			if err != nil {
				return err
			}

			report, err := a.Unused(snap, analyzer.UnusedOptions{Dangling: cmd.Bool("dangling")})
			if err != nil {
				return err
			}
			return writeReport(ctx, cmd, outFormat, report)
		},
	}
}

// loadForAnalysis reads the snapshot named by the command argument and
// returns an Analyzer stamped with it.
func loadForAnalysis(cmd *cli.Command) (*analyzer.Analyzer, *snapshot.Snapshot, error) {
	path, err := singleArg(cmd, "file")
	if err != nil {
		return nil, nil, err
	}

	var stdin io.Reader = os.Stdin
	if r := cmd.Root().Reader; r != nil {
		stdin = r
	}

	snap, err := snapshot.LoadFrom(path, stdin)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("loaded snapshot",
		slog.String("path", path),
		slog.Int("objects", snap.Count()))

	a := analyzer.New(
		analyzer.WithVersion(version),
		analyzer.WithSource(path),
	)
	return a, snap, nil
}

func writeReport(ctx context.Context, cmd *cli.Command, format serializer.Format, report any) error {
	if err := serializer.NewWriter(format, cmd.Root().Writer).Serialize(ctx, report); err != nil {
		return enumerrors.Wrap(enumerrors.ErrCodeInternal, "failed to write report", err)
	}
	return nil
}
