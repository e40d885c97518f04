// Package defaults provides centralized configuration constants for kubenum.
//
// This package defines the dump timeout, the placeholders the analyzers
// print for missing values, and other defaults used across the codebase.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/kubenum/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.DumpTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Dump: 60s for the whole collection, covering every list call
//   - Analyzers: no timeout, they never touch the network
package defaults
