package bramble

import (
	"image"
	"testing"
)

func testTexture(w, h int) *Texture {
	return NewTexture(image.NewNRGBA(image.Rect(0, 0, w, h)))
}

// --- Constructor defaults ---

func TestNewEmptyDefaults(t *testing.T) {
	s := NewScene()
	n := s.NewEmpty("test")
	assertNodeDefaults(t, n, "test", KindEmpty)
	if n.Group() != nil {
		t.Error("empty node should have no drawable")
	}
}

func TestNewSpriteDefaults(t *testing.T) {
	s := NewScene()
	n := s.NewSprite("spr", testTexture(32, 16), 4, 2)
	assertNodeDefaults(t, n, "spr", KindSprite)
	if n.Group() == nil {
		t.Fatal("sprite should own a drawable")
	}
	if n.Group().Parent() != s.Layer(0) {
		t.Error("new sprite should draw in layer 0")
	}
	if x, y := n.FrameCount(); x != 4 || y != 2 {
		t.Errorf("FrameCount = (%d, %d), want (4, 2)", x, y)
	}
}

func TestNewRectangleDefaults(t *testing.T) {
	s := NewScene()
	n := s.NewRectangle("box", 8, 4, ColorRed, false)
	assertNodeDefaults(t, n, "box", KindRectangle)
	if w, h := n.Size(); w != 8 || h != 4 {
		t.Errorf("Size = (%d, %d), want (8, 4)", w, h)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, kind NodeKind) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Kind != kind {
		t.Errorf("Kind = %v, want %v", n.Kind, kind)
	}
	if n.Scale() != (Vec2{1, 1}) {
		t.Errorf("Scale = %v, want (1, 1)", n.Scale())
	}
	if n.Opacity() != 1 {
		t.Errorf("Opacity = %v, want 1", n.Opacity())
	}
	if n.Layer() != 0 {
		t.Errorf("Layer = %d, want 0", n.Layer())
	}
	if n.IsDestroyed() {
		t.Error("new node should not be destroyed")
	}
}

func TestUniqueIDs(t *testing.T) {
	s := NewScene()
	a := s.NewEmpty("a")
	b := s.NewEmpty("b")
	c := s.NewRectangle("c", 1, 1, ColorWhite, false)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	s := NewScene()
	parent := s.NewEmpty("parent")
	child := s.NewEmpty("child")
	parent.AddChild(child)

	if child.Parent() != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	s := NewScene()
	p1 := s.NewEmpty("p1")
	p2 := s.NewEmpty("p2")
	child := s.NewEmpty("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 || child.Parent() != p2 {
		t.Error("child should belong to p2")
	}
}

func TestAddChildVisualIntoVisualParent(t *testing.T) {
	s := NewScene()
	parent := s.NewRectangle("parent", 4, 4, ColorBlue, false)
	child := s.NewRectangle("child", 2, 2, ColorRed, false)
	parent.AddChild(child)

	if child.Group().Parent() != parent.Group() {
		t.Error("child drawable should live in parent's group")
	}
	if s.Layer(0).Contains(child.Group()) {
		t.Error("child drawable should have left its layer")
	}
}

func TestAddChildVisualUnderEmptyKeepsLayer(t *testing.T) {
	s := NewScene()
	parent := s.NewEmpty("logic")
	child := s.NewRectangle("child", 2, 2, ColorRed, false)
	child.SetLayer(4)
	parent.AddChild(child)

	if child.Group().Parent() != s.Layer(4) {
		t.Error("child of an empty node should draw in its own layer")
	}
}

func TestAddChildPanicsOnNil(t *testing.T) {
	s := NewScene()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on nil child")
		}
	}()
	s.NewEmpty("p").AddChild(nil)
}

func TestAddChildPanicsOnSelf(t *testing.T) {
	s := NewScene()
	n := s.NewEmpty("n")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic adding node to itself")
		}
	}()
	n.AddChild(n)
}

func TestAddChildPanicsOnCycle(t *testing.T) {
	s := NewScene()
	a := s.NewEmpty("a")
	b := s.NewEmpty("b")
	c := s.NewEmpty("c")
	a.AddChild(b)
	b.AddChild(c)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on cycle")
		}
	}()
	c.AddChild(a)
}

func TestAddChildPanicsAcrossScenes(t *testing.T) {
	a := NewScene().NewEmpty("a")
	b := NewScene().NewEmpty("b")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic adding child from another scene")
		}
	}()
	a.AddChild(b)
}

func TestAddChildPanicsOnDestroyed(t *testing.T) {
	s := NewScene()
	p := s.NewEmpty("p")
	c := s.NewEmpty("c")
	c.Destroy()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic adding destroyed child")
		}
	}()
	p.AddChild(c)
}

// --- RemoveChild ---

func TestRemoveChildReturnsDrawableToLayer(t *testing.T) {
	s := NewScene()
	parent := s.NewRectangle("parent", 4, 4, ColorBlue, false)
	child := s.NewRectangle("child", 2, 2, ColorRed, false)
	child.SetLayer(2)
	parent.AddChild(child)
	parent.RemoveChild(child)

	if child.Parent() != nil {
		t.Error("child should have no parent")
	}
	if child.Group().Parent() != s.Layer(2) {
		t.Error("child drawable should return to layer 2")
	}
}

func TestRemoveChildPanicsOnStranger(t *testing.T) {
	s := NewScene()
	p := s.NewEmpty("p")
	other := s.NewEmpty("other")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic removing a non-child")
		}
	}()
	p.RemoveChild(other)
}

func TestRemoveFromParentNoParent(t *testing.T) {
	s := NewScene()
	n := s.NewEmpty("n")
	n.RemoveFromParent() // must not panic
}

// --- Layers ---

func TestSetLayerMovesDrawable(t *testing.T) {
	s := NewScene()
	n := s.NewRectangle("n", 2, 2, ColorRed, false)
	n.SetLayer(3)
	if n.Group().Parent() != s.Layer(3) {
		t.Fatal("drawable should be in layer 3")
	}
	n.SetLayer(5)
	if n.Layer() != 5 {
		t.Errorf("Layer = %d, want 5", n.Layer())
	}
	if s.Layer(3).Contains(n.Group()) {
		t.Error("drawable still in layer 3")
	}
	if !s.Layer(5).Contains(n.Group()) {
		t.Error("drawable not in layer 5")
	}
}

func TestSetLayerClamps(t *testing.T) {
	s := NewScene()
	n := s.NewRectangle("n", 2, 2, ColorRed, false)
	n.SetLayer(500)
	if n.Layer() != LayerCount-1 {
		t.Errorf("Layer = %d, want %d", n.Layer(), LayerCount-1)
	}
	n.SetLayer(-3)
	if n.Layer() != 0 {
		t.Errorf("Layer = %d, want 0", n.Layer())
	}
}

func TestSetLayerDetachesFromVisualParent(t *testing.T) {
	s := NewScene()
	parent := s.NewRectangle("parent", 4, 4, ColorBlue, false)
	child := s.NewRectangle("child", 2, 2, ColorRed, false)
	parent.AddChild(child)
	child.SetLayer(7)

	if child.Parent() != nil {
		t.Error("child should be detached from its visual parent")
	}
	if parent.NumChildren() != 0 {
		t.Error("parent should have no children")
	}
	if parent.Group().Contains(child.Group()) {
		t.Error("parent group still holds child drawable")
	}
	if child.Group().Parent() != s.Layer(7) {
		t.Error("child drawable should be in layer 7")
	}
}

func TestSetLayerOnEmptyRecordsOnly(t *testing.T) {
	s := NewScene()
	n := s.NewEmpty("n")
	n.SetLayer(9)
	if n.Layer() != 9 {
		t.Errorf("Layer = %d, want 9", n.Layer())
	}
	if s.HasLayer(9) {
		t.Error("empty node should not allocate a layer")
	}
}

// --- Ticking ---

func TestNodeOnTick(t *testing.T) {
	s := NewScene()
	n := s.NewEmpty("n")
	var total float64
	n.OnTick = func(dt float64) { total += dt }
	s.Tick(0.25)
	s.Tick(0.25)
	if total != 0.5 {
		t.Errorf("total dt = %v, want 0.5", total)
	}
}

func TestMustKindPanics(t *testing.T) {
	s := NewScene()
	n := s.NewEmpty("n")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic calling sprite method on empty node")
		}
	}()
	n.SetFrameX(1)
}
