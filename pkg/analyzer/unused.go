package analyzer

import (
	"fmt"
	"io"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/kubenum/pkg/header"
	"github.com/NVIDIA/kubenum/pkg/snapshot"
)

// Reference kinds used in markers.
const (
	RefConfigMap = "ConfigMap"
	RefSecret    = "Secret"
)

// UnusedOptions controls Unused.
type UnusedOptions struct {
	// Dangling also reports envFrom references whose target is not in the snapshot.
	Dangling bool
}

// ObjectRef identifies a Secret or ConfigMap.
type ObjectRef struct {
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// DanglingRef is an envFrom reference to an object missing from the snapshot.
type DanglingRef struct {
	Kind       string `json:"kind" yaml:"kind"`
	Name       string `json:"name" yaml:"name"`
	Deployment string `json:"deployment" yaml:"deployment"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// UnusedReport is the result of Unused.
type UnusedReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Secrets    []ObjectRef   `json:"secrets" yaml:"secrets"`
	ConfigMaps []ObjectRef   `json:"configMaps" yaml:"configMaps"`
	Dangling   []DanglingRef `json:"dangling,omitempty" yaml:"dangling,omitempty"`
}

// envFromRef is one envFrom reference and the deployment holding it.
type envFromRef struct {
	kind       string
	name       string
	deployment string
}

func marker(kind, name string) string {
	return kind + "/" + name
}

// Unused reports Secrets and ConfigMaps that no Deployment references through
// envFrom. Matching is by kind and name only, namespaces are ignored.
func (a *Analyzer) Unused(snap *snapshot.Snapshot, opts UnusedOptions) (*UnusedReport, error) {
	refs, err := collectEnvFromRefs(snap)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(refs))
	for _, ref := range refs {
		used[marker(ref.kind, ref.name)] = true
	}

	report := &UnusedReport{
		Header:     a.header(KindUnusedReport),
		Secrets:    []ObjectRef{},
		ConfigMaps: []ObjectRef{},
	}

	existing := map[string][]string{}
	for _, t := range []struct {
		key  string
		kind string
		out  *[]ObjectRef
	}{
		{snapshot.KeySecrets, RefSecret, &report.Secrets},
		{snapshot.KeyConfigMaps, RefConfigMap, &report.ConfigMaps},
	} {
		for _, r := range resources(t.key, snap.Resources(t.key)) {
			name, err := r.name()
			if err != nil {
				return nil, err
			}
			existing[t.kind] = append(existing[t.kind], name)
			if !used[marker(t.kind, name)] {
				*t.out = append(*t.out, ObjectRef{Name: name, Namespace: r.optionalNamespace("")})
			}
		}
	}

	if opts.Dangling {
		report.Dangling = danglingRefs(refs, existing)
	}

	return report, nil
}

// collectEnvFromRefs scans every deployment container's envFrom entries.
// configMapRef is checked before secretRef; an entry with neither is ignored.
func collectEnvFromRefs(snap *snapshot.Snapshot) ([]envFromRef, error) {
	var refs []envFromRef
	for _, r := range resources(snapshot.KeyDeployments, snap.Resources(snapshot.KeyDeployments)) {
		containers, err := r.seq("spec", "template", "spec", "containers")
		if err != nil {
			return nil, err
		}

		var deployment string
		for i, c := range containers {
			envFrom, ok := present(c, "envFrom")
			if !ok {
				continue
			}
			if !envFrom.IsSequence() {
				return nil, r.missing(containerPath(i, "envFrom"), "a list")
			}
			for j, src := range envFrom.Items() {
				kind, field := "", ""
				if _, ok := present(src, "configMapRef"); ok {
					kind, field = RefConfigMap, "configMapRef"
				} else if _, ok := present(src, "secretRef"); ok {
					kind, field = RefSecret, "secretRef"
				} else {
					continue
				}

				name, err := requireString(r, src, []string{field, "name"})
				if err != nil {
					return nil, r.missing(containerPath(i, fmt.Sprintf("envFrom[%d].%s.name", j, field)), "a string")
				}

				if deployment == "" {
					deployment = deploymentID(r)
				}
				refs = append(refs, envFromRef{kind: kind, name: name, deployment: deployment})
			}
		}
	}
	return refs, nil
}

func deploymentID(r resource) string {
	name, err := r.name()
	if err != nil {
		name = fmt.Sprintf("%s[%d]", r.typ, r.index)
	}
	if ns := r.optionalNamespace(""); ns != "" {
		return ns + "/" + name
	}
	return name
}

// danglingRefs returns references whose target is missing, once per
// kind, name and deployment, with the closest existing name as a suggestion.
func danglingRefs(refs []envFromRef, existing map[string][]string) []DanglingRef {
	exists := make(map[string]bool)
	for kind, names := range existing {
		for _, n := range names {
			exists[marker(kind, n)] = true
		}
	}

	seen := make(map[string]bool)
	out := []DanglingRef{}
	for _, ref := range refs {
		if exists[marker(ref.kind, ref.name)] {
			continue
		}
		key := marker(ref.kind, ref.name) + "@" + ref.deployment
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, DanglingRef{
			Kind:       ref.kind,
			Name:       ref.name,
			Deployment: ref.deployment,
			Suggestion: closest(ref.name, existing[ref.kind]),
		})
	}
	return out
}

// closest returns the candidate nearest to name by edit distance, if it is
// within half of name's length. Ties keep the first candidate.
func closest(name string, candidates []string) string {
	best, bestDist := "", len(name)/2+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// RenderText writes the report as plain text.
func (r *UnusedReport) RenderText(w io.Writer) error {
	p := &printer{w: w}
	p.banner("Unused Secrets and ConfigMaps:")
	for _, s := range r.Secrets {
		p.linef("Unused Secret: %s", s.Name)
	}
	for _, c := range r.ConfigMaps {
		p.linef("Unused ConfigMap: %s", c.Name)
	}
	if r.Dangling != nil {
		p.line("")
		p.banner("Missing Secrets and ConfigMaps:")
		for _, d := range r.Dangling {
			if d.Suggestion != "" {
				p.linef("Missing %s: %s (referenced by %s; did you mean %s?)", d.Kind, d.Name, d.Deployment, d.Suggestion)
				continue
			}
			p.linef("Missing %s: %s (referenced by %s)", d.Kind, d.Name, d.Deployment)
		}
	}
	return p.err
}
