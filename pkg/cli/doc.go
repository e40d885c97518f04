// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface for the kubenum tool.
//
// # Overview
//
// kubenum dumps the configuration of a Kubernetes cluster into a single
// snapshot document and audits snapshots offline. It is meant for security
// reviews of clusters whose API server allows anonymous reads.
//
// # Commands
//
// dump - Capture cluster configuration:
//
//	kubenum dump <api-url> [--output FILE] [--format json|yaml]
//	kubenum dump http://127.0.0.1:8001 -o snapshot.json
//	kubenum --timeout 120 dump https://10.0.0.1:6443 --insecure-skip-tls-verify --qps 5
//
// Lists Namespaces, Pods, Services, Deployments, Secrets, ConfigMaps, Roles,
// RoleBindings, ClusterRoles and ClusterRoleBindings across all namespaces.
// Nothing is written unless every list call succeeded within the deadline.
//
// analyze - Audit a snapshot:
//
//	kubenum analyze secrets snapshot.json [--truncate N] [--skip TEXT]... [--skip-ns TEXT]...
//	kubenum analyze none-values snapshot.json
//	kubenum analyze verbose snapshot.json
//	kubenum analyze unused snapshot.json [--dangling]
//
// Use "-" as the file to read a JSON snapshot from stdin. Reports print as
// text by default; secrets, none-values and unused also accept
// --format json|yaml|table.
//
// # Global Flags
//
//	--timeout      Dump deadline in seconds (default: 60)
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL                         Set logging verbosity (debug, info, warn, error)
//	KUBENUM_TIMEOUT                   Default dump deadline (e.g. 90s)
//	KUBENUM_INSECURE_SKIP_TLS_VERIFY  Default for --insecure-skip-tls-verify
//	KUBENUM_QPS                       Default for --qps
//
// # Exit Codes
//
//	0  Success
//	1  Any error, including a dump timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/kubenum/pkg/cli.version=1.0.0'"
package cli
