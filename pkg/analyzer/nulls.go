package analyzer

import (
	"io"

	"github.com/NVIDIA/kubenum/pkg/header"
	"github.com/NVIDIA/kubenum/pkg/snapshot"
	"github.com/NVIDIA/kubenum/pkg/tree"
)

// NullReport is the result of NullValues.
type NullReport struct {
	header.Header `json:",inline" yaml:",inline"`

	// Paths are resourceType/resourceName/field... locations of null fields.
	Paths []string `json:"paths" yaml:"paths"`
}

// NullValues lists every mapping field holding an explicit null, depth first
// in document order. Null sequence elements are not fields and are not listed.
func (a *Analyzer) NullValues(snap *snapshot.Snapshot) (*NullReport, error) {
	report := &NullReport{
		Header: a.header(KindNullReport),
		Paths:  []string{},
	}

	for _, typ := range snap.Types() {
		for _, r := range resources(typ, snap.Resources(typ)) {
			name, err := r.name()
			if err != nil {
				return nil, err
			}
			err = tree.Walk(r.v, typ+"/"+name, func(n tree.Node) error {
				if n.ViaKey && n.Value.IsNull() {
					report.Paths = append(report.Paths, n.Path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return report, nil
}

// RenderText writes the report as plain text.
func (r *NullReport) RenderText(w io.Writer) error {
	p := &printer{w: w}
	p.banner("Instances of null values:")
	for _, path := range r.Paths {
		p.linef("Null value found: %s", path)
	}
	return p.err
}
