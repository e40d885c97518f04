package analyzer

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/kubenum/pkg/defaults"
	"github.com/NVIDIA/kubenum/pkg/header"
	"github.com/NVIDIA/kubenum/pkg/snapshot"
	"github.com/NVIDIA/kubenum/pkg/tree"
)

// hiddenFields are the top-level resource fields Structure leaves out.
var hiddenFields = map[string]bool{
	"metadata": true,
	"status":   true,
}

// ResourceStructure is the rendered field tree of one resource.
type ResourceStructure struct {
	Name      string
	Namespace string

	// Lines are the indented field lines, without trailing newlines.
	Lines []string
}

// TypeStructure groups the resources of one resource type.
type TypeStructure struct {
	Type      string
	Resources []ResourceStructure
}

// StructureReport is the result of Structure. It only has a text form.
type StructureReport struct {
	header.Header

	Types []TypeStructure
}

// Structure renders the field tree of every resource.
func (a *Analyzer) Structure(snap *snapshot.Snapshot) (*StructureReport, error) {
	report := &StructureReport{Header: a.header(KindStructureReport)}

	for _, typ := range snap.Types() {
		ts := TypeStructure{Type: typ}
		for _, r := range resources(typ, snap.Resources(typ)) {
			name, err := r.name()
			if err != nil {
				return nil, err
			}
			rs := ResourceStructure{
				Name:      name,
				Namespace: r.optionalNamespace(defaults.NotAvailable),
				Lines:     structureLines(r.v),
			}
			ts.Resources = append(ts.Resources, rs)
		}
		report.Types = append(report.Types, ts)
	}

	return report, nil
}

// structureLines prints field names indented by nesting depth. Scalars print
// their literal text one level deeper than their key; sequence items get no
// index line of their own.
func structureLines(res *tree.Value) []string {
	var lines []string
	indent := func(depth int) string {
		return strings.Repeat(" ", defaults.StructureIndent+defaults.StructureIndentStep*depth)
	}

	// Walk never fails here: the callback only returns SkipChildren.
	_ = tree.Walk(res, "", func(n tree.Node) error {
		if n.Depth == 0 {
			return nil
		}
		if n.ViaKey {
			if n.Depth == 1 && hiddenFields[n.Key] {
				return tree.SkipChildren
			}
			lines = append(lines, indent(n.Depth-1)+n.Key+":")
		}
		if n.Value.IsScalar() {
			lines = append(lines, indent(n.Depth)+n.Value.Text())
		}
		return nil
	})

	return lines
}

// RenderText writes the report as plain text.
func (r *StructureReport) RenderText(w io.Writer) error {
	upper := cases.Upper(language.Und)

	p := &printer{w: w}
	p.banner("Verbose Structure of Resources:")
	for _, t := range r.Types {
		p.line("")
		p.line(upper.String(t.Type) + ":")
		for _, res := range t.Resources {
			p.line(fmt.Sprintf("  - Name: %s", res.Name))
			p.line(fmt.Sprintf("    Namespace: %s", res.Namespace))
			for _, l := range res.Lines {
				p.line(l)
			}
		}
	}
	return p.err
}
