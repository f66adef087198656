package bramble

// Group is a drawable container: an ordered list of primitives and child
// groups positioned together. Every Group belongs to at most one container at
// a time; inserting a Group that is already contained panics.
type Group struct {
	X, Y   int
	Scale  int // integer pixel scale applied to contents, minimum 1
	Hidden bool

	prims  []primitive
	groups []*Group
	parent *Group
}

// NewGroup creates an empty, visible group at the origin.
func NewGroup() *Group {
	return &Group{Scale: 1}
}

// Parent returns the container this group belongs to, or nil.
func (g *Group) Parent() *Group {
	return g.parent
}

// Contains reports whether child is a direct member of g.
func (g *Group) Contains(child *Group) bool {
	return child != nil && child.parent == g
}

// Groups returns the child groups in draw order. The returned slice MUST NOT
// be mutated by the caller.
func (g *Group) Groups() []*Group {
	return g.groups
}

// Len returns the number of child groups.
func (g *Group) Len() int {
	return len(g.groups)
}

// Append adds child after all existing child groups.
func (g *Group) Append(child *Group) {
	g.Insert(len(g.groups), child)
}

// Insert adds child at the given index among the child groups.
func (g *Group) Insert(index int, child *Group) {
	if child == nil {
		panic("bramble: cannot insert nil group")
	}
	if child.parent != nil {
		panic("bramble: group already belongs to a container")
	}
	for p := g; p != nil; p = p.parent {
		if p == child {
			panic("bramble: inserting group would create a cycle")
		}
	}
	if index < 0 || index > len(g.groups) {
		panic("bramble: group index out of range")
	}
	g.groups = append(g.groups, nil)
	copy(g.groups[index+1:], g.groups[index:])
	g.groups[index] = child
	child.parent = g
}

// Remove detaches child from g. No-op if child is not a member.
func (g *Group) Remove(child *Group) {
	if child == nil || child.parent != g {
		return
	}
	for i, c := range g.groups {
		if c == child {
			copy(g.groups[i:], g.groups[i+1:])
			g.groups[len(g.groups)-1] = nil
			g.groups = g.groups[:len(g.groups)-1]
			break
		}
	}
	child.parent = nil
}

// Detach removes g from its container, if any.
func (g *Group) Detach() {
	if g.parent != nil {
		g.parent.Remove(g)
	}
}

// Clear detaches every child group and drops every primitive.
func (g *Group) Clear() {
	for _, c := range g.groups {
		c.parent = nil
	}
	g.groups = g.groups[:0]
	g.prims = g.prims[:0]
}

func (g *Group) addPrimitive(p primitive) {
	g.prims = append(g.prims, p)
}

func (g *Group) scale() int {
	if g.Scale < 1 {
		return 1
	}
	return g.Scale
}
