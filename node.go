package bramble

import "fmt"

// Node is the fundamental scene graph element. A single flat struct with a
// closed Kind tag is used for all node types; kind-specific state lives in
// the sprite, rect, text and cam fields, at most one of which is non-nil.
//
// Nodes are created through Scene constructors, which register them for
// per-frame ticking, and are only ever released by Scene.Destroy.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Kind NodeKind

	// Hierarchy
	parent   *Node
	children []*Node

	// Transform (local)
	position Vec3
	rotation Vec3
	scale    Vec2
	opacity  float64
	layer    int

	// Drawable, non-nil for visual kinds only.
	group *Group

	// Kind-specific state
	sprite *spriteState
	rect   *rectState
	text   *textState
	cam    *cameraState

	// OnTick, when set, runs after the node's own per-frame work.
	OnTick func(dt float64)

	// Metadata
	UserData any

	// Internal
	scene     *Scene
	tweens    []*Tween
	delays    []*Delay
	destroyed bool
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first. For a
// visual child the drawable moves with it: into this node's group when this
// node is visual, otherwise into the child's own layer.
// Panics if child is nil, destroyed, owned by another scene, or an ancestor
// of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("bramble: cannot add nil child")
	}
	checkLive(n, "AddChild (parent)")
	checkLive(child, "AddChild (child)")
	if child.scene != n.scene {
		panic("bramble: cannot add a child from another scene")
	}
	if isAncestor(child, n) {
		panic("bramble: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.attachDrawable()
	if n.scene.debug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node. A visual child's drawable
// returns to the child's own layer.
// Panics if child's parent is not this node.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		panic("bramble: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
	child.attachDrawable()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// Parent returns the logical parent, or nil for a root-level node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Scene returns the scene that owns this node.
func (n *Node) Scene() *Scene {
	return n.scene
}

// Group returns the node's drawable, or nil for non-visual kinds.
func (n *Node) Group() *Group {
	return n.group
}

// --- Layers ---

// Layer returns the node's depth layer.
func (n *Node) Layer() int {
	return n.layer
}

// SetLayer moves the node to the given depth layer, clamped to
// [0, LayerCount). A visual node's drawable is removed from its current
// container before it is appended to the new layer; if that container was a
// visual parent's group, the node is also detached from that parent so the
// drawable is never owned by two containers.
func (n *Node) SetLayer(layer int) {
	checkLive(n, "SetLayer")
	n.layer = clampInt(layer, 0, LayerCount-1)
	if n.group == nil {
		return
	}
	if n.parent != nil && n.parent.group != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
	}
	n.group.Detach()
	n.scene.Layer(n.layer).Append(n.group)
}

// --- Destruction ---

// Destroy is shorthand for Scene().Destroy(n).
func (n *Node) Destroy() {
	n.scene.Destroy(n)
}

// DestroyAll is shorthand for Scene().DestroyAll(n).
func (n *Node) DestroyAll() {
	n.scene.DestroyAll(n)
}

// DestroyChildren destroys every descendant of n, leaving n itself alive.
func (n *Node) DestroyChildren() {
	for len(n.children) > 0 {
		n.scene.DestroyAll(n.children[len(n.children)-1])
	}
}

// IsDestroyed reports whether the node has been destroyed.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// --- Ticking ---

// Tick advances kind-specific animation and then runs OnTick.
func (n *Node) Tick(dt float64) {
	if n.destroyed {
		return
	}
	if n.sprite != nil {
		n.tickSprite(dt)
	}
	if n.cam != nil {
		n.tickCamera()
	}
	if n.OnTick != nil {
		n.OnTick(dt)
	}
}

// --- Helpers ---

// attachDrawable places the node's group into the container it belongs to:
// its visual parent's group, or its own layer for root-level drawables.
func (n *Node) attachDrawable() {
	if n.group == nil {
		return
	}
	n.group.Detach()
	if n.parent != nil && n.parent.group != nil {
		n.parent.group.Append(n.group)
		return
	}
	n.scene.Layer(n.layer).Append(n.group)
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func checkLive(n *Node, op string) {
	if n.destroyed {
		panic(fmt.Sprintf("bramble: %s on destroyed node %q", op, n.Name))
	}
}

func (n *Node) mustKind(k NodeKind, op string) {
	if n.Kind != k {
		panic(fmt.Sprintf("bramble: %s on %s node %q", op, n.Kind, n.Name))
	}
}
