package bramble

import "testing"

// --- Layer table ---

func TestLayerCreatedLazily(t *testing.T) {
	s := NewScene()
	if s.HasLayer(0) {
		t.Fatal("new scene should have no layers")
	}
	g := s.Layer(10)
	if !s.HasLayer(10) {
		t.Error("layer 10 should exist after Layer(10)")
	}
	if s.Layer(10) != g {
		t.Error("Layer should return the same group on every call")
	}
}

func TestLayersDrawAscending(t *testing.T) {
	s := NewScene()
	l5 := s.Layer(5)
	l1 := s.Layer(1)
	l9 := s.Layer(9)
	l3 := s.Layer(3)

	want := []*Group{l1, l3, l5, l9}
	got := s.Root().Groups()
	if len(got) != len(want) {
		t.Fatalf("root has %d layers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("root[%d] is not the expected layer", i)
		}
	}
}

func TestLayerIndexClamped(t *testing.T) {
	s := NewScene()
	if s.Layer(-1) != s.Layer(0) {
		t.Error("negative index should clamp to layer 0")
	}
	if s.Layer(1000) != s.Layer(LayerCount-1) {
		t.Error("large index should clamp to the top layer")
	}
}

// --- Destroy ---

func TestDestroyWithChildrenPanics(t *testing.T) {
	s := NewScene()
	p := s.NewEmpty("p")
	p.AddChild(s.NewEmpty("c"))
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic destroying node with children")
		}
	}()
	s.Destroy(p)
}

func TestDestroyDetachesEverything(t *testing.T) {
	s := NewScene()
	parent := s.NewRectangle("parent", 4, 4, ColorBlue, false)
	child := s.NewRectangle("child", 2, 2, ColorRed, false)
	parent.AddChild(child)
	tw := s.NewTween(child)
	before := s.TickerCount()

	s.Destroy(child)

	if !child.IsDestroyed() {
		t.Error("child should be destroyed")
	}
	if parent.NumChildren() != 0 {
		t.Error("parent should have no children")
	}
	if child.Group().Parent() != nil {
		t.Error("child drawable should be detached")
	}
	if !tw.destroyed {
		t.Error("owned tween should be destroyed")
	}
	if got := s.TickerCount(); got != before-2 {
		t.Errorf("TickerCount = %d, want %d", got, before-2)
	}
}

func TestDestroyIdempotent(t *testing.T) {
	s := NewScene()
	n := s.NewEmpty("n")
	s.Destroy(n)
	s.Destroy(n) // no panic
	if s.TickerCount() != 0 {
		t.Errorf("TickerCount = %d, want 0", s.TickerCount())
	}
}

func TestDestroyAllSubtree(t *testing.T) {
	s := NewScene()
	root := s.NewEmpty("root")
	a := s.NewRectangle("a", 2, 2, ColorRed, false)
	b := s.NewEmpty("b")
	a1 := s.NewRectangle("a1", 1, 1, ColorRed, false)
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	s.DestroyAll(root)
	for _, n := range []*Node{root, a, b, a1} {
		if !n.IsDestroyed() {
			t.Errorf("%s not destroyed", n.Name)
		}
	}
	if s.TickerCount() != 0 {
		t.Errorf("TickerCount = %d, want 0", s.TickerCount())
	}
	if s.Layer(0).Len() != 0 {
		t.Errorf("layer 0 still holds %d drawables", s.Layer(0).Len())
	}
}

func TestDestroyChildrenKeepsSelf(t *testing.T) {
	s := NewScene()
	p := s.NewEmpty("p")
	p.AddChild(s.NewEmpty("c1"))
	p.AddChild(s.NewEmpty("c2"))
	p.DestroyChildren()
	if p.IsDestroyed() {
		t.Error("parent should survive DestroyChildren")
	}
	if p.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", p.NumChildren())
	}
}

// --- Registry ---

type countTicker struct {
	name   string
	log    *[]string
	ticks  int
	onTick func()
}

func (c *countTicker) Tick(float64) {
	c.ticks++
	if c.log != nil {
		*c.log = append(*c.log, c.name)
	}
	if c.onTick != nil {
		c.onTick()
	}
}

func TestTickRegistrationOrder(t *testing.T) {
	s := NewScene()
	var log []string
	s.Register(&countTicker{name: "a", log: &log})
	s.Register(&countTicker{name: "b", log: &log})
	s.Register(&countTicker{name: "c", log: &log})
	s.Tick(0.1)
	if len(log) != 3 || log[0] != "a" || log[1] != "b" || log[2] != "c" {
		t.Errorf("tick order = %v, want [a b c]", log)
	}
}

func TestRegisterDuringTickStartsNextFrame(t *testing.T) {
	s := NewScene()
	late := &countTicker{name: "late"}
	first := &countTicker{name: "first"}
	first.onTick = func() {
		if first.ticks == 1 {
			s.Register(late)
		}
	}
	s.Register(first)

	s.Tick(0.1)
	if late.ticks != 0 {
		t.Errorf("late ticked %d times in the frame it was registered", late.ticks)
	}
	s.Tick(0.1)
	if late.ticks != 1 {
		t.Errorf("late ticks = %d, want 1", late.ticks)
	}
}

func TestUnregisterDuringTickSkips(t *testing.T) {
	s := NewScene()
	victim := &countTicker{name: "victim"}
	killer := &countTicker{name: "killer"}
	killer.onTick = func() { s.Unregister(victim) }
	s.Register(killer)
	s.Register(victim)

	s.Tick(0.1)
	if victim.ticks != 0 {
		t.Errorf("victim ticked %d times after being unregistered", victim.ticks)
	}
	if s.TickerCount() != 1 {
		t.Errorf("TickerCount = %d, want 1", s.TickerCount())
	}
	if len(s.tickers) != 1 {
		t.Errorf("registry not compacted: len = %d", len(s.tickers))
	}
}

func TestDestroyNodeDuringTick(t *testing.T) {
	s := NewScene()
	a := s.NewEmpty("a")
	b := s.NewEmpty("b")
	bTicks := 0
	b.OnTick = func(float64) { bTicks++ }
	a.OnTick = func(float64) { s.Destroy(b) }

	s.Tick(0.1)
	if bTicks != 0 {
		t.Errorf("destroyed node ticked %d times", bTicks)
	}
}

// --- Camera ---

func TestCameraCentersRoot(t *testing.T) {
	s := NewScene()
	cam := s.NewCamera("cam")
	if s.Camera() != cam {
		t.Fatal("NewCamera should activate the camera")
	}
	cam.SetXY(10, 20)
	if s.Root().X != DisplaySize/2-10 || s.Root().Y != DisplaySize/2-20 {
		t.Errorf("root = (%d, %d), want (%d, %d)", s.Root().X, s.Root().Y, DisplaySize/2-10, DisplaySize/2-20)
	}
	cam.SetZoom(2)
	if s.Root().X != DisplaySize/2-20 {
		t.Errorf("zoomed root X = %d, want %d", s.Root().X, DisplaySize/2-20)
	}
}

func TestCameraFollow(t *testing.T) {
	s := NewScene()
	target := s.NewEmpty("target")
	cam := s.NewCamera("cam")
	cam.Follow(target, Vec2{}, 1)
	target.SetXY(30, 40)
	s.Tick(0.016)
	if cam.Position().XY() != (Vec2{30, 40}) {
		t.Errorf("camera = %v, want (30, 40)", cam.Position().XY())
	}
}

func TestDestroyCameraResetsRoot(t *testing.T) {
	s := NewScene()
	cam := s.NewCamera("cam")
	cam.SetXY(10, 10)
	cam.Destroy()
	if s.Camera() != nil {
		t.Error("destroyed camera should be cleared")
	}
	if s.Root().X != 0 || s.Root().Y != 0 {
		t.Errorf("root = (%d, %d), want (0, 0)", s.Root().X, s.Root().Y)
	}
}
