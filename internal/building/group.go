package building

import (
	"fmt"
	"sort"
)

// Group labels a set of frame elements. Elements can belong to several
// groups at once.
type Group struct {
	Name     string
	Elements []*BeamColumn
}

// Add puts an element in the group unless it is already there.
func (g *Group) Add(e *BeamColumn) {
	for _, other := range g.Elements {
		if other == e {
			return
		}
	}
	g.Elements = append(g.Elements, e)
}

// Remove takes an element out of the group.
func (g *Group) Remove(e *BeamColumn) {
	for i, other := range g.Elements {
		if other == e {
			g.Elements = append(g.Elements[:i], g.Elements[i+1:]...)
			return
		}
	}
}

// Groups stores the element groups of a building. Elements added to the
// building are also added to the active groups.
type Groups struct {
	list   []*Group
	active []*Group
}

// Add registers a group. Names are unique.
func (gs *Groups) Add(g *Group) error {
	for _, other := range gs.list {
		if other.Name == g.Name {
			return fmt.Errorf("group name already exists: %s", g.Name)
		}
	}
	gs.list = append(gs.list, g)
	sort.Slice(gs.list, func(i, j int) bool { return gs.list[i].Name < gs.list[j].Name })
	return nil
}

// Get looks a group up by name.
func (gs *Groups) Get(name string) (*Group, error) {
	for _, g := range gs.list {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("group %s does not exist", name)
}

// SetActive selects the active groups. An empty list is allowed and
// means new elements join no group.
func (gs *Groups) SetActive(names []string) error {
	active := make([]*Group, 0, len(names))
	for _, name := range names {
		g, err := gs.Get(name)
		if err != nil {
			return err
		}
		active = append(active, g)
	}
	gs.active = active
	return nil
}

// Active returns the active groups.
func (gs *Groups) Active() []*Group {
	return gs.active
}

// List returns all groups sorted by name.
func (gs *Groups) List() []*Group {
	return gs.list
}
