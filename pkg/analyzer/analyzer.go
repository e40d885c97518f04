/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"github.com/NVIDIA/kubenum/pkg/header"
)

// Report kinds.
const (
	KindSecretReport    header.Kind = "SecretReport"
	KindNullReport      header.Kind = "NullReport"
	KindStructureReport header.Kind = "StructureReport"
	KindUnusedReport    header.Kind = "UnusedReport"
)

// MetadataSource is the report metadata key naming the analyzed snapshot.
const MetadataSource = "source"

// Analyzer runs audits over snapshots.
type Analyzer struct {
	// Version is stamped into report headers.
	Version string

	// Source names the analyzed snapshot in report headers.
	Source string
}

// Option is a functional option for configuring an Analyzer.
type Option func(*Analyzer)

// WithVersion sets the version recorded in report headers.
func WithVersion(version string) Option {
	return func(a *Analyzer) {
		a.Version = version
	}
}

// WithSource sets the snapshot source recorded in report headers.
func WithSource(source string) Option {
	return func(a *Analyzer) {
		a.Source = source
	}
}

// New creates an Analyzer with the given options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) header(kind header.Kind) header.Header {
	opts := []header.Option{
		header.WithKind(kind),
		header.WithAPIVersion(header.APIVersionFor(kind)),
	}
	if a.Source != "" {
		opts = append(opts, header.WithMetadata(MetadataSource, a.Source))
	}
	h := header.New(opts...)
	h.Stamp(a.Version)
	return *h
}
