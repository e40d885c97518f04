/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// When allowed is not empty the format must be one of its entries.
func parseOutputFormat(cmd *cli.Command, allowed ...serializer.Format) (serializer.Format, error) {
	outFormat := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))

	valid := serializer.SupportedFormats()
	if len(allowed) > 0 {
		valid = make([]string, 0, len(allowed))
		for _, f := range allowed {
			valid = append(valid, f.String())
		}
	}

	if outFormat.IsUnknown() || !slices.Contains(valid, outFormat.String()) {
		return "", enumerrors.New(enumerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q, valid formats are: %s", outFormat, strings.Join(valid, ", ")))
	}
	return outFormat, nil
}

// isStdoutPath reports whether an --output value selects stdout.
func isStdoutPath(path string) bool {
	p := strings.TrimSpace(path)
	return p == "" || p == serializer.StdoutURI
}

// singleArg returns the only positional argument of cmd, named argName in errors.
func singleArg(cmd *cli.Command, argName string) (string, error) {
	switch cmd.NArg() {
	case 0:
		return "", enumerrors.New(enumerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("missing required argument <%s>", argName))
	case 1:
		arg := strings.TrimSpace(cmd.Args().First())
		if arg == "" {
			return "", enumerrors.New(enumerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("argument <%s> must not be empty", argName))
		}
		return arg, nil
	default:
		return "", enumerrors.NewWithContext(enumerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("expected exactly one <%s> argument, got %d", argName, cmd.NArg()),
			map[string]any{"args": cmd.Args().Slice()})
	}
}
