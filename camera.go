package bramble

// cameraState holds follow and scroll state for a KindCamera node.
type cameraState struct {
	follow *Node
	offset Vec2
	lerp   float64
	scroll *Tween
}

// Follow makes the camera track target's position plus offset each tick.
// A lerp of 1 snaps immediately; lower values give smoother following.
func (n *Node) Follow(target *Node, offset Vec2, lerp float64) {
	n.mustKind(KindCamera, "Follow")
	n.cam.follow = target
	n.cam.offset = offset
	n.cam.lerp = clamp01(lerp)
}

// Unfollow stops tracking the current target.
func (n *Node) Unfollow() {
	n.mustKind(KindCamera, "Unfollow")
	n.cam.follow = nil
}

// ScrollTo animates the camera to p over ms milliseconds. Any previous
// scroll is replaced.
func (n *Node) ScrollTo(p Vec2, ms float64, e Ease) *Tween {
	n.mustKind(KindCamera, "ScrollTo")
	if n.cam.scroll != nil {
		n.cam.scroll.Destroy()
	}
	n.cam.scroll = n.scene.TweenPosition(n, p, ms, e)
	return n.cam.scroll
}

// SetZoom sets the integer pixel scale of the whole scene. Values below 1
// are raised to 1.
func (n *Node) SetZoom(zoom int) {
	n.mustKind(KindCamera, "SetZoom")
	n.scene.root.Scale = max(zoom, 1)
	if n.scene.camera == n {
		n.scene.applyCamera()
	}
}

// Zoom returns the scene's pixel scale.
func (n *Node) Zoom() int {
	n.mustKind(KindCamera, "Zoom")
	return n.scene.root.scale()
}

// Activate makes n the scene's active camera.
func (n *Node) Activate() {
	n.mustKind(KindCamera, "Activate")
	checkLive(n, "Activate")
	n.scene.camera = n
	n.scene.applyCamera()
}

func (n *Node) tickCamera() {
	c := n.cam
	if c.follow == nil {
		return
	}
	if c.follow.destroyed {
		c.follow = nil
		return
	}
	target := c.follow.position.XY().Add(c.offset)
	cur := n.position.XY()
	next := cur.Add(target.Sub(cur).Mul(c.lerp))
	n.SetXY(next.X, next.Y)
}
