package analyzer

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/NVIDIA/kubenum/pkg/defaults"
	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/header"
	"github.com/NVIDIA/kubenum/pkg/snapshot"
	"github.com/NVIDIA/kubenum/pkg/tree"
)

// SecretOptions controls RevealSecrets.
type SecretOptions struct {
	// Truncate shortens values longer than this many characters; 0 disables it.
	Truncate int

	// Skip suppresses entries whose key or value contains any of these, ignoring case.
	Skip []string

	// SkipNamespaces suppresses resources whose namespace contains any of these.
	SkipNamespaces []string
}

// RevealedValue is one decoded secret entry or environment variable.
type RevealedValue struct {
	Key       string `json:"key" yaml:"key"`
	Value     string `json:"value" yaml:"value"`
	Truncated bool   `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// SecretFinding lists the revealed entries of one Secret.
type SecretFinding struct {
	Name      string          `json:"name" yaml:"name"`
	Namespace string          `json:"namespace" yaml:"namespace"`
	Data      []RevealedValue `json:"data" yaml:"data"`
}

// ContainerEnv lists the environment variables of one container.
type ContainerEnv struct {
	Name string          `json:"name" yaml:"name"`
	Env  []RevealedValue `json:"env" yaml:"env"`
}

// DeploymentFinding lists the containers with environment variables of one Deployment.
type DeploymentFinding struct {
	Name       string         `json:"name" yaml:"name"`
	Namespace  string         `json:"namespace" yaml:"namespace"`
	Containers []ContainerEnv `json:"containers" yaml:"containers"`
}

// SecretReport is the result of RevealSecrets.
type SecretReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Secrets     []SecretFinding     `json:"secrets" yaml:"secrets"`
	Deployments []DeploymentFinding `json:"deployments" yaml:"deployments"`
}

// RevealSecrets decodes every Secret's data and lists every Deployment's
// environment variables, in snapshot order.
func (a *Analyzer) RevealSecrets(snap *snapshot.Snapshot, opts SecretOptions) (*SecretReport, error) {
	report := &SecretReport{
		Header:      a.header(KindSecretReport),
		Secrets:     []SecretFinding{},
		Deployments: []DeploymentFinding{},
	}

	for _, r := range resources(snapshot.KeySecrets, snap.Resources(snapshot.KeySecrets)) {
		finding, ok, err := revealSecret(r, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			report.Secrets = append(report.Secrets, finding)
		}
	}

	for _, r := range resources(snapshot.KeyDeployments, snap.Resources(snapshot.KeyDeployments)) {
		finding, ok, err := revealDeploymentEnv(r, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			report.Deployments = append(report.Deployments, finding)
		}
	}

	return report, nil
}

func revealSecret(r resource, opts SecretOptions) (SecretFinding, bool, error) {
	ns, err := r.namespace()
	if err != nil {
		return SecretFinding{}, false, err
	}
	if skipNamespace(ns, opts.SkipNamespaces) {
		return SecretFinding{}, false, nil
	}
	name, err := r.name()
	if err != nil {
		return SecretFinding{}, false, err
	}

	finding := SecretFinding{Name: name, Namespace: ns, Data: []RevealedValue{}}

	data, ok := present(r.v, "data")
	if !ok {
		return finding, true, nil
	}
	if !data.IsMapping() {
		return SecretFinding{}, false, r.missing([]string{"data"}, "a mapping")
	}

	for _, e := range data.Entries() {
		encoded, ok := e.Value.Str()
		if !ok {
			return SecretFinding{}, false, r.missing([]string{"data", e.Key}, "a base64 string")
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return SecretFinding{}, false, enumerrors.WrapWithContext(enumerrors.ErrCodeInvalidSnapshot,
				fmt.Sprintf("invalid base64 in secret %s/%s key %q", ns, name, e.Key), err,
				map[string]any{"namespace": ns, "name": name, "key": e.Key})
		}
		value := strings.ToValidUTF8(string(raw), "\uFFFD")
		if skipEntry(e.Key, value, opts.Skip) {
			continue
		}
		shown, cut := truncate(value, opts.Truncate)
		finding.Data = append(finding.Data, RevealedValue{Key: e.Key, Value: shown, Truncated: cut})
	}

	return finding, true, nil
}

func revealDeploymentEnv(r resource, opts SecretOptions) (DeploymentFinding, bool, error) {
	ns, err := r.namespace()
	if err != nil {
		return DeploymentFinding{}, false, err
	}
	if skipNamespace(ns, opts.SkipNamespaces) {
		return DeploymentFinding{}, false, nil
	}

	containers, err := r.seq("spec", "template", "spec", "containers")
	if err != nil {
		return DeploymentFinding{}, false, err
	}

	var withEnv []ContainerEnv
	for i, c := range containers {
		env, ok := present(c, "env")
		if !ok || env.Len() == 0 {
			continue
		}
		if !env.IsSequence() {
			return DeploymentFinding{}, false, r.missing(containerPath(i, "env"), "a list")
		}
		cname, err := requireString(r, c, []string{"name"})
		if err != nil {
			return DeploymentFinding{}, false, r.missing(containerPath(i, "name"), "a string")
		}

		ce := ContainerEnv{Name: cname, Env: []RevealedValue{}}
		for j, ev := range env.Items() {
			vname, ok := ev.Lookup("name")
			key, isStr := vname.Str()
			if !ok || !isStr {
				return DeploymentFinding{}, false,
					r.missing(containerPath(i, fmt.Sprintf("env[%d].name", j)), "a string")
			}
			value := envValue(ev)
			if skipEntry(key, value, opts.Skip) {
				continue
			}
			shown, cut := truncate(value, opts.Truncate)
			ce.Env = append(ce.Env, RevealedValue{Key: key, Value: shown, Truncated: cut})
		}
		withEnv = append(withEnv, ce)
	}

	if len(withEnv) == 0 {
		return DeploymentFinding{}, false, nil
	}

	name, err := r.name()
	if err != nil {
		return DeploymentFinding{}, false, err
	}
	return DeploymentFinding{Name: name, Namespace: ns, Containers: withEnv}, true, nil
}

// envValue returns the literal value of an env var, or the placeholder when
// there is none (valueFrom, null or missing). The placeholder is filtered and
// truncated like any other value.
func envValue(ev *tree.Value) string {
	v, ok := ev.Get("value")
	if !ok || v.IsNull() || !v.IsScalar() {
		return defaults.NotAvailable
	}
	return v.Text()
}

func containerPath(i int, field string) []string {
	return []string{"spec", "template", "spec", fmt.Sprintf("containers[%d]", i), field}
}

// RenderText writes the report as plain text.
func (r *SecretReport) RenderText(w io.Writer) error {
	p := &printer{w: w}
	p.banner("Secrets and Environment Variables:")
	for _, s := range r.Secrets {
		p.line("")
		p.linef("Secret: %s (Namespace: %s)", s.Name, s.Namespace)
		for _, d := range s.Data {
			p.linef("  %s: %s", d.Key, d.Value)
		}
	}
	for _, d := range r.Deployments {
		p.line("")
		p.linef("Deployment: %s (Namespace: %s)", d.Name, d.Namespace)
		for _, c := range d.Containers {
			p.linef("  Container: %s", c.Name)
			for _, e := range c.Env {
				p.linef("    %s: %s", e.Key, e.Value)
			}
		}
	}
	return p.err
}
