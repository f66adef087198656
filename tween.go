package bramble

import "github.com/tanema/gween"

// Target receives interpolated tween values. Scalar tweens use only X.
type Target interface {
	Apply(v Vec2)
}

// TargetFunc adapts a plain function to Target.
type TargetFunc func(v Vec2)

// Apply calls f(v).
func (f TargetFunc) Apply(v Vec2) { f(v) }

// LoopMode controls what a tween does when it reaches the end of its
// duration.
type LoopMode uint8

const (
	// LoopOnce finishes the tween at the end value.
	LoopOnce LoopMode = iota
	// LoopRepeat jumps back to the start value and plays again.
	LoopRepeat
	// LoopPingPong swaps start and end and plays back.
	LoopPingPong
)

// Tween interpolates a one- or two-component value from a start to an end
// over a duration, applying it to a Target each tick. Tweens are created with
// Scene.NewTween and ticked by the scene's registry; a tween owned by a node
// is destroyed with it.
type Tween struct {
	scene *Scene
	owner *Node

	target     Target
	start, end Vec2
	from, to   Vec2 // current leg; differs from start/end while ping-ponging
	pair       bool
	duration   float64 // seconds
	ease       Ease
	loop       LoopMode

	position float64
	clocks   [2]*gween.Tween // per component of the current leg; Y is nil for scalars
	armed    bool
	playing  bool
	finished bool

	after *Tween

	// OnFinish, when set, runs after each natural completion.
	OnFinish func()

	destroyed bool
}

// NewTween creates a registered, idle tween. If owner is non-nil the tween
// is destroyed together with it.
func (s *Scene) NewTween(owner *Node) *Tween {
	t := &Tween{scene: s, owner: owner}
	if owner != nil {
		checkLive(owner, "NewTween")
		owner.tweens = append(owner.tweens, t)
	}
	s.register(t)
	return t
}

// Start begins interpolating a two-component value. The start value is
// applied immediately. A duration of zero or less leaves the tween paused at
// the start value until SetDuration gives it a positive duration.
func (t *Tween) Start(target Target, start, end Vec2, durationMs float64, e Ease) {
	t.arm(target, start, end, durationMs, e, true)
}

// StartScalar begins interpolating a single value carried in X.
func (t *Tween) StartScalar(target Target, start, end, durationMs float64, e Ease) {
	t.arm(target, Vec2{X: start}, Vec2{X: end}, durationMs, e, false)
}

func (t *Tween) arm(target Target, start, end Vec2, durationMs float64, e Ease, pair bool) {
	if t.destroyed {
		panic("bramble: Start on destroyed tween")
	}
	t.target = target
	t.start, t.end = start, end
	t.pair = pair
	t.ease = e
	t.duration = durationMs / 1000
	t.Restart()
}

// Restart re-arms the tween from its original start and end values.
func (t *Tween) Restart() {
	if t.target == nil || t.destroyed {
		return
	}
	t.from, t.to = t.start, t.end
	t.position = 0
	t.newLeg()
	t.armed = true
	t.finished = false
	t.playing = t.duration > 0
	t.apply(t.from)
}

// End jumps to the end value and finishes the tween. The chained tween and
// OnFinish are not triggered.
func (t *Tween) End() {
	if t.target == nil || t.destroyed {
		return
	}
	t.finish()
}

func (t *Tween) finish() {
	t.position = 1
	t.playing = false
	t.finished = true
	t.apply(t.to)
}

// Pause stops advancing. No-op once finished.
func (t *Tween) Pause() {
	if t.finished {
		return
	}
	t.playing = false
}

// Unpause resumes advancing. No-op once finished, before Start, or while the
// duration is not positive.
func (t *Tween) Unpause() {
	if t.finished || !t.armed || t.duration <= 0 {
		return
	}
	t.playing = true
}

// SetDuration changes the duration in milliseconds. Setting a positive
// duration on an armed tween that was held by a zero duration resumes it.
func (t *Tween) SetDuration(ms float64) {
	wasHeld := t.duration <= 0
	t.duration = ms / 1000
	if t.armed {
		t.newLeg()
	}
	if wasHeld && t.duration > 0 && t.armed && !t.finished {
		t.playing = true
	}
	if t.duration <= 0 {
		t.playing = false
	}
}

// Duration returns the duration in milliseconds.
func (t *Tween) Duration() float64 { return t.duration * 1000 }

// SetLoop sets the loop mode.
func (t *Tween) SetLoop(m LoopMode) { t.loop = m }

// Loop returns the loop mode.
func (t *Tween) Loop() LoopMode { return t.loop }

// After chains next to restart every time this tween completes naturally.
// Pass nil to clear.
func (t *Tween) After(next *Tween) { t.after = next }

// Position returns the progress in [0, 1] along the current leg.
func (t *Tween) Position() float64 { return t.position }

// Playing reports whether the tween advances on tick.
func (t *Tween) Playing() bool { return t.playing }

// Finished reports whether the tween has reached its end.
func (t *Tween) Finished() bool { return t.finished }

// Owner returns the owning node, or nil for a free-standing tween.
func (t *Tween) Owner() *Node { return t.owner }

// Tick advances the tween by dt seconds.
func (t *Tween) Tick(dt float64) {
	if !t.playing || t.duration <= 0 || t.destroyed {
		return
	}
	t.position += dt / t.duration
	if t.position < 1 {
		v := Vec2{X: t.step(0, dt)}
		if t.pair {
			v.Y = t.step(1, dt)
		}
		t.apply(v)
		return
	}

	// the last leg value is pinned to the exact end, not the float32 clock
	switch t.loop {
	case LoopRepeat:
		t.apply(t.to)
		t.position = wrapProgress(t.position)
		t.newLeg()
	case LoopPingPong:
		t.apply(t.to)
		t.from, t.to = t.to, t.from
		t.position = wrapProgress(t.position)
		t.newLeg()
	default:
		t.finish()
	}
	if t.after != nil {
		t.after.Restart()
	}
	if t.OnFinish != nil {
		t.OnFinish()
	}
}

func wrapProgress(p float64) float64 {
	p--
	if p >= 1 || p < 0 {
		return 0
	}
	return p
}

// newLeg builds the component clocks for from -> to and seeks them to the
// current position.
func (t *Tween) newLeg() {
	fn := t.ease.tweenFunc()
	d := float32(max(t.duration, 0))
	t.clocks[0] = gween.New(float32(t.from.X), float32(t.to.X), d, fn)
	t.clocks[1] = nil
	if t.pair {
		t.clocks[1] = gween.New(float32(t.from.Y), float32(t.to.Y), d, fn)
	}
	at := float32(t.position * t.duration)
	for _, c := range t.clocks {
		if c != nil {
			c.Set(at)
		}
	}
}

func (t *Tween) step(i int, dt float64) float64 {
	v, _ := t.clocks[i].Update(float32(dt))
	return float64(v)
}

func (t *Tween) apply(v Vec2) {
	if t.target != nil {
		t.target.Apply(v)
	}
}

// Destroy stops the tween and removes it from the scene registry and from
// its owner.
func (t *Tween) Destroy() {
	if t.destroyed {
		return
	}
	if t.owner != nil {
		t.owner.tweens = removeTween(t.owner.tweens, t)
	}
	t.destroy()
}

// destroy releases the tween without touching the owner's list.
func (t *Tween) destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.playing = false
	t.after = nil
	t.OnFinish = nil
	t.scene.unregister(t)
}

func removeTween(list []*Tween, t *Tween) []*Tween {
	for i, c := range list {
		if c == t {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

// --- Convenience constructors ---

// TweenPosition starts a tween owned by n moving it from its current X/Y to
// the given point.
func (s *Scene) TweenPosition(n *Node, to Vec2, ms float64, e Ease) *Tween {
	t := s.NewTween(n)
	t.Start(TargetFunc(func(v Vec2) { n.SetXY(v.X, v.Y) }), n.position.XY(), to, ms, e)
	return t
}

// TweenOpacity starts a tween owned by n fading it to the given opacity.
func (s *Scene) TweenOpacity(n *Node, to float64, ms float64, e Ease) *Tween {
	t := s.NewTween(n)
	t.StartScalar(TargetFunc(func(v Vec2) { n.SetOpacity(v.X) }), n.opacity, to, ms, e)
	return t
}

// TweenScale starts a tween owned by n scaling it to the given factors.
func (s *Scene) TweenScale(n *Node, to Vec2, ms float64, e Ease) *Tween {
	t := s.NewTween(n)
	t.Start(TargetFunc(func(v Vec2) { n.SetScale(v) }), n.scale, to, ms, e)
	return t
}
