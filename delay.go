package bramble

// Delay runs a callback once after a wait. Like tweens, delays are ticked by
// the scene registry and destroyed together with their owning node.
type Delay struct {
	scene   *Scene
	owner   *Node
	wait    float64 // seconds
	elapsed float64
	pending bool
	fn      func()

	// oneShot delays created by Scene.After destroy themselves after firing.
	oneShot   bool
	destroyed bool
}

// NewDelay creates a registered, idle delay. If owner is non-nil the delay
// is destroyed together with it.
func (s *Scene) NewDelay(owner *Node) *Delay {
	d := &Delay{scene: s, owner: owner}
	if owner != nil {
		checkLive(owner, "NewDelay")
		owner.delays = append(owner.delays, d)
	}
	s.register(d)
	return d
}

// After runs fn once, ms milliseconds from now.
func (s *Scene) After(ms float64, fn func()) *Delay {
	d := s.NewDelay(nil)
	d.oneShot = true
	d.Start(ms, fn)
	return d
}

// Start (re)arms the delay. A wait of zero fires on the next tick.
func (d *Delay) Start(ms float64, fn func()) {
	if d.destroyed {
		panic("bramble: Start on destroyed delay")
	}
	d.wait = ms / 1000
	d.elapsed = 0
	d.fn = fn
	d.pending = true
}

// Cancel disarms the delay without firing it.
func (d *Delay) Cancel() {
	d.pending = false
}

// Pending reports whether the delay is armed and has not fired yet.
func (d *Delay) Pending() bool { return d.pending }

// Tick advances the delay by dt seconds.
func (d *Delay) Tick(dt float64) {
	if !d.pending || d.destroyed {
		return
	}
	d.elapsed += dt
	if d.elapsed < d.wait {
		return
	}
	d.pending = false
	fn := d.fn
	if d.oneShot {
		d.Destroy()
	}
	if fn != nil {
		fn()
	}
}

// Destroy removes the delay from the scene registry and from its owner.
func (d *Delay) Destroy() {
	if d.destroyed {
		return
	}
	if d.owner != nil {
		for i, c := range d.owner.delays {
			if c == d {
				d.owner.delays = append(d.owner.delays[:i], d.owner.delays[i+1:]...)
				break
			}
		}
	}
	d.destroy()
}

func (d *Delay) destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	d.pending = false
	d.fn = nil
	d.scene.unregister(d)
}
