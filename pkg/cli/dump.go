/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kubenum/pkg/collector"
	"github.com/NVIDIA/kubenum/pkg/config"
	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/k8s/client"
	"github.com/NVIDIA/kubenum/pkg/serializer"
	"github.com/NVIDIA/kubenum/pkg/snapshotter"
)

func dumpCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:                  "dump",
		EnableShellCompletion: true,
		Usage:                 "Dump the configuration of a cluster into a snapshot",
		ArgsUsage:             "<api-url>",
		Description: `Lists the following resources across all namespaces of the cluster
reachable at <api-url> and writes them as one snapshot document:
  - Namespaces, Pods, Services, Deployments
  - Secrets, ConfigMaps
  - Roles, RoleBindings, ClusterRoles, ClusterRoleBindings

No credentials are sent. Point <api-url> at an endpoint that allows
anonymous reads, or at a local "kubectl proxy".

The whole dump runs under the global --timeout. Nothing is written
unless every resource type was listed successfully.

Examples:
  kubenum dump http://127.0.0.1:8001 -o snapshot.json
  kubenum --timeout 120 dump https://10.0.0.1:6443 --insecure-skip-tls-verify -o snapshot.yaml`,
		Flags: []cli.Flag{
			outputFlag(),
			&cli.StringFlag{
				Name:  "format",
				Value: serializer.FormatJSON.String(),
				Usage: "snapshot format (json, yaml); inferred from the --output extension when not set",
			},
			&cli.BoolFlag{
				Name:  "insecure-skip-tls-verify",
				Value: cfg.InsecureSkipTLSVerify,
				Usage: "do not verify the API server certificate",
			},
			&cli.FloatFlag{
				Name:  "qps",
				Value: cfg.QPS,
				Usage: "maximum list calls per second (0 means unlimited)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write dump metrics in Prometheus text format to this path",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			apiURL, err := singleArg(cmd, "api-url")
			if err != nil {
				return err
			}

			output := strings.TrimSpace(cmd.String("output"))
			outFormat, err := dumpFormat(cmd, output)
			if err != nil {
				return err
			}

			qps := cmd.Float("qps")
			if qps < 0 {
				return enumerrors.New(enumerrors.ErrCodeInvalidRequest,
					fmt.Sprintf("--qps must not be negative, got %v", qps))
			}
			timeout := cmd.Int("timeout")
			if timeout <= 0 {
				return enumerrors.New(enumerrors.ErrCodeInvalidRequest,
					fmt.Sprintf("--timeout must be a positive number of seconds, got %d", timeout))
			}

			clientset, _, err := client.BuildKubeClient(apiURL,
				client.WithInsecureSkipTLSVerify(cmd.Bool("insecure-skip-tls-verify")),
				client.WithUserAgent(fmt.Sprintf("%s/%s", name, version)),
			)
			if err != nil {
				return err
			}

			factory := collector.NewDefaultFactory(clientset)
			factory.QPS = qps

			var ss snapshotter.Snapshotter = &snapshotter.ClusterSnapshotter{
				Factory: factory,
				Timeout: time.Duration(timeout) * time.Second,
				Output: func() (serializer.Serializer, error) {
					if isStdoutPath(output) {
						return serializer.NewWriter(outFormat, cmd.Root().Writer), nil
					}
					return serializer.NewFileWriterOrStdout(outFormat, output)
				},
			}

			slog.Debug("dumping cluster configuration",
				slog.String("api", apiURL),
				slog.String("output", output),
				slog.String("format", outFormat.String()),
				slog.Int("timeout", timeout))

			dumpErr := ss.Measure(ctx)

			if path := strings.TrimSpace(cmd.String("metrics-file")); path != "" {
				if err := snapshotter.WriteMetrics(path); err != nil {
					if dumpErr == nil {
						return enumerrors.Wrap(enumerrors.ErrCodeInternal, "failed to write metrics", err)
					}
					slog.Warn("failed to write metrics", slog.String("error", err.Error()))
				}
			}

			if dumpErr != nil {
				if enumerrors.IsCode(dumpErr, enumerrors.ErrCodeTimeout) {
					slog.Debug("dump deadline expired, raise --timeout for large clusters",
						slog.Int("timeout", timeout))
				}
				return dumpErr
			}

			if !isStdoutPath(output) {
				fmt.Fprintf(cmd.Root().Writer, "Configuration dumped to %s\n", output)
			}
			return nil
		},
	}
}

// dumpFormat returns the snapshot format. An explicit --format wins,
// otherwise it follows the output file extension.
func dumpFormat(cmd *cli.Command, output string) (serializer.Format, error) {
	if !cmd.IsSet("format") && !isStdoutPath(output) {
		return serializer.FormatFromPath(output), nil
	}
	return parseOutputFormat(cmd, serializer.FormatJSON, serializer.FormatYAML)
}
