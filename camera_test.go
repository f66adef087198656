package bramble

import (
	"strings"
	"testing"
)

func TestCameraFollowLerp(t *testing.T) {
	s := NewScene()
	target := s.NewEmpty("target")
	cam := s.NewCamera("cam")
	cam.Follow(target, Vec2{X: 4, Y: 0}, 0.5)
	target.SetXY(36, 20)

	s.Tick(0.033)
	if got := cam.Position().XY(); got != (Vec2{20, 10}) {
		t.Errorf("after one tick camera = %v, want (20, 10)", got)
	}
	s.Tick(0.033)
	if got := cam.Position().XY(); got != (Vec2{30, 15}) {
		t.Errorf("after two ticks camera = %v, want (30, 15)", got)
	}
}

func TestCameraFollowLerpClamped(t *testing.T) {
	s := NewScene()
	target := s.NewEmpty("target")
	cam := s.NewCamera("cam")
	cam.Follow(target, Vec2{}, 3)
	target.SetXY(8, 8)
	s.Tick(0.033)
	if got := cam.Position().XY(); got != (Vec2{8, 8}) {
		t.Errorf("camera = %v, want (8, 8)", got)
	}
}

func TestCameraUnfollow(t *testing.T) {
	s := NewScene()
	target := s.NewEmpty("target")
	cam := s.NewCamera("cam")
	cam.Follow(target, Vec2{}, 1)
	cam.Unfollow()
	target.SetXY(50, 50)
	s.Tick(0.033)
	if got := cam.Position().XY(); got != (Vec2{}) {
		t.Errorf("camera moved to %v after Unfollow", got)
	}
}

func TestCameraDropsDestroyedTarget(t *testing.T) {
	s := NewScene()
	target := s.NewEmpty("target")
	cam := s.NewCamera("cam")
	cam.Follow(target, Vec2{}, 1)
	target.SetXY(12, 12)
	s.Destroy(target)
	s.Tick(0.033)
	if got := cam.Position().XY(); got != (Vec2{}) {
		t.Errorf("camera followed a destroyed node to %v", got)
	}
	if cam.cam.follow != nil {
		t.Error("destroyed follow target should be cleared")
	}
}

func TestCameraScrollTo(t *testing.T) {
	s := NewScene()
	cam := s.NewCamera("cam")
	first := cam.ScrollTo(Vec2{100, 0}, 1000, EaseLinear)
	tw := cam.ScrollTo(Vec2{40, 20}, 100, EaseLinear)
	if first == tw {
		t.Fatal("ScrollTo should start a new tween")
	}
	for range 5 {
		s.Tick(0.025)
	}
	if got := cam.Position().XY(); got != (Vec2{40, 20}) {
		t.Errorf("camera = %v, want (40, 20)", got)
	}
	if s.Root().X != DisplaySize/2-40 || s.Root().Y != DisplaySize/2-20 {
		t.Errorf("root = (%d, %d), want (%d, %d)", s.Root().X, s.Root().Y, DisplaySize/2-40, DisplaySize/2-20)
	}
}

func TestCameraZoomMinimum(t *testing.T) {
	s := NewScene()
	cam := s.NewCamera("cam")
	cam.SetZoom(3)
	if cam.Zoom() != 3 {
		t.Errorf("Zoom = %d, want 3", cam.Zoom())
	}
	cam.SetZoom(0)
	if cam.Zoom() != 1 {
		t.Errorf("Zoom = %d, want 1", cam.Zoom())
	}
}

func TestCameraActivateSwitches(t *testing.T) {
	s := NewScene()
	a := s.NewCamera("a")
	a.SetXY(10, 10)
	b := s.NewCamera("b")
	if s.Camera() != b {
		t.Fatal("newest camera should be active")
	}
	a.Activate()
	if s.Camera() != a {
		t.Fatal("Activate should switch the active camera")
	}
	if s.Root().X != DisplaySize/2-10 {
		t.Errorf("root X = %d, want %d", s.Root().X, DisplaySize/2-10)
	}
}

func TestCameraOpsOnOtherKindsPanic(t *testing.T) {
	s := NewScene()
	n := s.NewEmpty("plain")
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "bramble: SetZoom") {
			t.Errorf("recover = %v, want bramble: SetZoom panic", r)
		}
	}()
	n.SetZoom(2)
}
