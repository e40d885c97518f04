/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package analyzer runs read-only audits over a cluster snapshot.
//
// # Audits
//
//   - RevealSecrets decodes Secret data and lists Deployment environment
//     variables, with optional truncation, value block-list and namespace
//     block-list.
//   - NullValues lists every mapping field whose value is explicitly null.
//   - Structure prints the field tree of every resource, leaving out the
//     top-level metadata and status fields.
//   - Unused reports Secrets and ConfigMaps no Deployment references through
//     envFrom, and optionally references whose target does not exist.
//
// Every audit returns a report. Reports render as plain text (RenderText) or
// as JSON/YAML documents through the serializer package; each carries a
// header with kind, apiVersion and metadata.
//
// # Usage
//
//	a := analyzer.New(analyzer.WithVersion(version), analyzer.WithSource(path))
//	report, err := a.RevealSecrets(snap, analyzer.SecretOptions{Truncate: 8})
//	if err != nil {
//	    return err
//	}
//	return report.RenderText(os.Stdout)
//
// # Structural errors
//
// Snapshots are assumed well-formed. A resource lacking a field an audit
// needs (metadata.name, a deployment's spec.template.spec.containers, ...)
// fails the audit with an ErrCodeInvalidSnapshot error naming the resource
// type, the index and the missing path.
//
// # Reference matching
//
// Unused matches references by kind and name only. A Deployment in one
// namespace referencing ConfigMap "app" marks every ConfigMap named "app"
// as used, in any namespace.
package analyzer
