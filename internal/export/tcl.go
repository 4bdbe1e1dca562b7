// Package export writes a preprocessed building out as an OpenSees Tcl
// script or as a JSON document. Output is deterministic: tags are
// assigned in model traversal order, never from internal ids.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/osmg/osmg/internal/building"
	"github.com/osmg/osmg/internal/material"
)

// TclOptions adjusts the Tcl writer.
type TclOptions struct {
	// Header lines are written as leading Tcl comments.
	Header []string
}

// Steel02 hardening constants recommended by the OpenSees docs.
const (
	steel02R0  = 20.0
	steel02CR1 = 0.925
	steel02CR2 = 0.15
)

// WriteTcl writes the building as an OpenSees model definition script.
func WriteTcl(w io.Writer, b *building.Building, opts TclOptions) error {
	var buf bytes.Buffer
	for _, line := range opts.Header {
		fmt.Fprintf(&buf, "# %s\n", line)
	}
	buf.WriteString("model BasicBuilder -ndm 3 -ndf 6\n")

	nodeTags := make(map[int64]int)
	nextNode := 0
	tagOf := func(n *building.Node) int {
		tag, ok := nodeTags[n.UID]
		if !ok {
			nextNode++
			tag = nextNode
			nodeTags[n.UID] = tag
		}
		return tag
	}

	buf.WriteString("\n# nodes\n")
	allNodes := b.AllNodes()
	for _, n := range allNodes {
		fmt.Fprintf(&buf, "node %d %g %g %g", tagOf(n), n.Coords.X, n.Coords.Y, n.Coords.Z)
		if n.Mass != [6]float64{} {
			buf.WriteString(" -mass")
			for _, m := range n.Mass {
				fmt.Fprintf(&buf, " %g", m)
			}
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("\n# restraints\n")
	for _, n := range allNodes {
		switch n.Restraint {
		case building.RestraintFixed:
			fmt.Fprintf(&buf, "fix %d 1 1 1 1 1 1\n", nodeTags[n.UID])
		case building.RestraintPinned:
			fmt.Fprintf(&buf, "fix %d 1 1 1 0 0 0\n", nodeTags[n.UID])
		case building.RestraintParent:
			fmt.Fprintf(&buf, "fix %d 0 0 1 1 1 0\n", nodeTags[n.UID])
		}
	}

	diaphragms := false
	for _, lvl := range b.Levels.List() {
		if lvl.ParentNode == nil {
			continue
		}
		if !diaphragms {
			buf.WriteString("\n# rigid diaphragms\n")
			diaphragms = true
		}
		fmt.Fprintf(&buf, "rigidDiaphragm 3 %d", nodeTags[lvl.ParentNode.UID])
		for _, n := range lvl.Nodes.List() {
			fmt.Fprintf(&buf, " %d", nodeTags[n.UID])
		}
		buf.WriteByte('\n')
	}

	materials := b.Materials.List()
	if len(materials) > 0 {
		buf.WriteString("\n# materials\n")
	}
	for i, m := range materials {
		if err := writeTclMaterial(&buf, i+1, m); err != nil {
			return err
		}
	}

	buf.WriteString("\n# elements\n")
	eleTag := 0
	transfTag := 0
	type loadedElem struct {
		tag  int
		elem *building.LinearElement
	}
	var elems []loadedElem
	for _, bc := range b.FrameElements() {
		for _, e := range bc.InternalElems {
			transfTag++
			fmt.Fprintf(&buf, "geomTransf Linear %d %g %g %g", transfTag, e.Z.X, e.Z.Y, e.Z.Z)
			zero := [3]float64{}
			oi := [3]float64{e.OffsetI.X, e.OffsetI.Y, e.OffsetI.Z}
			oj := [3]float64{e.OffsetJ.X, e.OffsetJ.Y, e.OffsetJ.Z}
			if oi != zero || oj != zero {
				buf.WriteString(" -jntOffset")
				for _, v := range append(oi[:], oj[:]...) {
					fmt.Fprintf(&buf, " %g", v)
				}
			}
			buf.WriteByte('\n')

			eleTag++
			props := e.Section.Properties
			params := e.Section.Material.Params
			fmt.Fprintf(&buf, "element elasticBeamColumn %d %d %d %g %g %g %g %g %g %d\n",
				eleTag, nodeTags[e.NodeI.UID], nodeTags[e.NodeJ.UID],
				props["A"], params["E0"], params["G"],
				props["J"], props["Iy"], props["Ix"], transfTag)
			elems = append(elems, loadedElem{tag: eleTag, elem: e})
		}
	}

	var loads bytes.Buffer
	for _, le := range elems {
		udl := le.elem.UDLTotal()
		if udl.X == 0 && udl.Y == 0 && udl.Z == 0 {
			continue
		}
		fmt.Fprintf(&loads, "    eleLoad -ele %d -type -beamUniform %g %g %g\n",
			le.tag, udl.Y, udl.Z, udl.X)
	}
	for _, n := range allNodes {
		total := n.LoadTotal()
		if total == [6]float64{} {
			continue
		}
		fmt.Fprintf(&loads, "    load %d", nodeTags[n.UID])
		for _, v := range total {
			fmt.Fprintf(&loads, " %g", v)
		}
		loads.WriteByte('\n')
	}
	if loads.Len() > 0 {
		buf.WriteString("\n# loads\npattern Plain 1 Linear {\n")
		buf.Write(loads.Bytes())
		buf.WriteString("}\n")
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func writeTclMaterial(buf *bytes.Buffer, tag int, m *material.Material) error {
	switch m.Model {
	case "Steel02":
		fmt.Fprintf(buf, "uniaxialMaterial Steel02 %d %g %g %g %g %g %g\n",
			tag, m.Params["Fy"], m.Params["E0"], m.Params["b"],
			steel02R0, steel02CR1, steel02CR2)
	default:
		return fmt.Errorf("material %s: unsupported model %s", m.Name, m.Model)
	}
	return nil
}
