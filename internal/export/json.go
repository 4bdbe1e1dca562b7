package export

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/osmg/osmg/internal/building"
	"github.com/osmg/osmg/internal/geom"
)

// JSONOptions adjusts the JSON writer.
type JSONOptions struct {
	// Indent is the indentation unit. Two spaces when empty.
	Indent string
}

type jsonDoc struct {
	Units       string         `json:"units"`
	Levels      []jsonLevel    `json:"levels"`
	Nodes       []jsonNode     `json:"nodes"`
	Elements    []jsonElement  `json:"elements"`
	Sections    []jsonSection  `json:"sections"`
	Materials   []jsonMaterial `json:"materials"`
	LevelMasses []float64      `json:"level_masses"`
}

type jsonLevel struct {
	Name         string       `json:"name"`
	Elevation    float64      `json:"elevation"`
	Restraint    string       `json:"restraint"`
	SurfaceDL    float64      `json:"surface_dl"`
	ParentNode   *jsonNode    `json:"parent_node,omitempty"`
	FloorPolygon [][2]float64 `json:"floor_polygon,omitempty"`
}

type jsonNode struct {
	UID           int64      `json:"uid"`
	Coords        [3]float64 `json:"coords"`
	Restraint     string     `json:"restraint"`
	Mass          [6]float64 `json:"mass"`
	Load          [6]float64 `json:"load"`
	TributaryArea float64    `json:"tributary_area"`
}

type jsonElement struct {
	UID           int64      `json:"uid"`
	NodeI         int64      `json:"node_i"`
	NodeJ         int64      `json:"node_j"`
	Section       string     `json:"section"`
	Angle         float64    `json:"angle"`
	Placement     string     `json:"placement"`
	NSub          int        `json:"n_sub"`
	OffsetI       [3]float64 `json:"offset_i"`
	OffsetJ       [3]float64 `json:"offset_j"`
	UDLTotal      [3]float64 `json:"udl_total"`
	TributaryArea float64    `json:"tributary_area"`
}

type jsonSection struct {
	Name       string             `json:"name"`
	Family     string             `json:"family"`
	Material   string             `json:"material"`
	Properties map[string]float64 `json:"properties"`
}

type jsonMaterial struct {
	Name    string             `json:"name"`
	Model   string             `json:"model"`
	Density float64            `json:"density"`
	Params  map[string]float64 `json:"params"`
}

// WriteJSON writes the building as an indented JSON document. Slices
// are sorted by uid or name so output is reproducible.
func WriteJSON(w io.Writer, b *building.Building, opts JSONOptions) error {
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(buildDoc(b))
}

func buildDoc(b *building.Building) jsonDoc {
	doc := jsonDoc{
		Units:       "lb-in-s",
		LevelMasses: b.LevelMasses(),
	}

	for _, lvl := range b.Levels.List() {
		jl := jsonLevel{
			Name:         lvl.Name,
			Elevation:    lvl.Elevation,
			Restraint:    string(lvl.Restraint),
			SurfaceDL:    lvl.SurfaceDL,
			FloorPolygon: planPolygon(lvl.FloorCoordinates),
		}
		if lvl.ParentNode != nil {
			pn := nodeDoc(lvl.ParentNode)
			jl.ParentNode = &pn
		}
		doc.Levels = append(doc.Levels, jl)
	}

	nodes := b.AllNodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].UID < nodes[j].UID })
	for _, n := range nodes {
		doc.Nodes = append(doc.Nodes, nodeDoc(n))
	}

	members := b.FrameElements()
	sort.Slice(members, func(i, j int) bool { return members[i].UID < members[j].UID })
	for _, m := range members {
		udl := m.InternalElems[0].UDLTotal()
		doc.Elements = append(doc.Elements, jsonElement{
			UID:           m.UID,
			NodeI:         m.NodeI.UID,
			NodeJ:         m.NodeJ.UID,
			Section:       m.Section.Name,
			Angle:         m.Ang,
			Placement:     string(m.Placement),
			NSub:          m.NSub,
			OffsetI:       vecDoc(m.OffsetI),
			OffsetJ:       vecDoc(m.OffsetJ),
			UDLTotal:      vecDoc(udl),
			TributaryArea: m.TributaryArea,
		})
	}

	for _, sec := range b.Sections.List() {
		doc.Sections = append(doc.Sections, jsonSection{
			Name:       sec.Name,
			Family:     sec.Family,
			Material:   sec.Material.Name,
			Properties: sec.Properties,
		})
	}

	for _, m := range b.Materials.List() {
		doc.Materials = append(doc.Materials, jsonMaterial{
			Name:    m.Name,
			Model:   m.Model,
			Density: m.Density,
			Params:  m.Params,
		})
	}
	return doc
}

func nodeDoc(n *building.Node) jsonNode {
	return jsonNode{
		UID:           n.UID,
		Coords:        vecDoc(n.Coords),
		Restraint:     string(n.Restraint),
		Mass:          n.Mass,
		Load:          n.LoadTotal(),
		TributaryArea: n.TributaryArea,
	}
}

func vecDoc(v geom.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func planPolygon(coords []geom.Vec2) [][2]float64 {
	if len(coords) == 0 {
		return nil
	}
	out := make([][2]float64, len(coords))
	for i, c := range coords {
		out[i] = [2]float64{c.X, c.Y}
	}
	return out
}
