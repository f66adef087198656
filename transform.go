package bramble

import "math"

// --- Transform property accessors ---

// Position returns the node's local position.
func (n *Node) Position() Vec3 {
	return n.position
}

// SetPosition sets the node's local position. Visual nodes snap their
// drawable to whole pixels; camera nodes re-center the scene root.
func (n *Node) SetPosition(p Vec3) {
	n.position = p
	if n.group != nil {
		n.group.X = int(math.Floor(p.X))
		n.group.Y = int(math.Floor(p.Y))
	}
	if n.Kind == KindCamera && n.scene.camera == n {
		n.scene.applyCamera()
	}
}

// SetXY sets the X and Y components of the position, keeping Z.
func (n *Node) SetXY(x, y float64) {
	n.SetPosition(Vec3{x, y, n.position.Z})
}

// Rotation returns the node's rotation. Rotation is carried for game logic
// but not applied by the tile renderer.
func (n *Node) Rotation() Vec3 {
	return n.rotation
}

// SetRotation sets the node's rotation.
func (n *Node) SetRotation(r Vec3) {
	n.rotation = r
}

// Scale returns the node's scale.
func (n *Node) Scale() Vec2 {
	return n.scale
}

// SetScale sets the node's scale. The drawable uses the integer part of X,
// never less than 1.
func (n *Node) SetScale(s Vec2) {
	n.scale = s
	if n.group != nil {
		n.group.Scale = max(int(s.X), 1)
	}
}

// Opacity returns the node's opacity.
func (n *Node) Opacity() float64 {
	return n.opacity
}

// SetOpacity sets the node's opacity. At or below 0.01 the drawable is
// hidden; it stays in its container so the subtree keeps its structure.
func (n *Node) SetOpacity(o float64) {
	n.opacity = o
	if n.group != nil {
		n.group.Hidden = o <= hiddenOpacity
	}
}

// Visible reports whether the node and every visual ancestor are shown.
func (n *Node) Visible() bool {
	for p := n; p != nil; p = p.parent {
		if p.group != nil && p.group.Hidden {
			return false
		}
	}
	return true
}

// WorldPosition returns the node's position in display coordinates,
// composing integer-snapped offsets and scales of visual ancestors the way
// the renderer does.
func (n *Node) WorldPosition() Vec2 {
	if n.group == nil {
		return n.position.XY()
	}
	x, y := float64(n.group.X), float64(n.group.Y)
	for g := n.group.parent; g != nil; g = g.parent {
		s := float64(g.scale())
		x = float64(g.X) + x*s
		y = float64(g.Y) + y*s
	}
	return Vec2{x, y}
}
