package bramble

import (
	"errors"
	"fmt"
	"time"
)

// ErrReset is returned by Runtime.Tick when the Home button is pressed or
// Reset was called. It asks the launcher to leave the game; callers
// propagate it unchanged.
var ErrReset = errors.New("bramble: reset requested")

// DefaultFPS is the frame rate limit used by the entry points.
const DefaultFPS = 30

// Display presents the scene root. Refresh is the frame loop's only
// blocking point: it waits as needed to honor the fps limit (0 disables
// pacing) and then shows the current root.
type Display interface {
	SetRoot(root *Group)
	Refresh(fpsLimit int) error
}

// NullDisplay is a Display that shows nothing and never blocks.
type NullDisplay struct {
	Root      *Group
	Refreshes int
}

// SetRoot records root.
func (d *NullDisplay) SetRoot(root *Group) { d.Root = root }

// Refresh counts the call.
func (d *NullDisplay) Refresh(int) error {
	d.Refreshes++
	return nil
}

// PacedDisplay is a headless Display that sleeps until the next frame
// boundary, the way a hardware display waits for its refresh.
type PacedDisplay struct {
	Clock Clock
	Sleep func(time.Duration)

	root    *Group
	last    time.Duration
	started bool
}

// NewPacedDisplay creates a PacedDisplay on the system clock.
func NewPacedDisplay() *PacedDisplay {
	return &PacedDisplay{Clock: SystemClock(), Sleep: time.Sleep}
}

// SetRoot records root.
func (d *PacedDisplay) SetRoot(root *Group) { d.root = root }

// Refresh sleeps until 1/fpsLimit seconds after the previous refresh.
func (d *PacedDisplay) Refresh(fpsLimit int) error {
	now := d.Clock.Now()
	if fpsLimit > 0 && d.started {
		next := d.last + time.Second/time.Duration(fpsLimit)
		if wait := next - now; wait > 0 {
			d.Sleep(wait)
			now = d.Clock.Now()
		}
	}
	d.last = now
	d.started = true
	return nil
}

// RuntimeConfig wires a Runtime. Nil fields get headless defaults: a
// NullDisplay, an Input with no sources and the system clock.
type RuntimeConfig struct {
	Scene    *Scene
	Display  Display
	Input    *Input
	Clock    Clock
	FPSLimit int // 0 disables pacing
}

// Runtime drives the frame loop. Each Tick performs, in order: display
// refresh, input poll (with the Home check), clock sample, then ticking of
// the scene registry followed by the logic tickers.
type Runtime struct {
	scene    *Scene
	display  Display
	input    *Input
	clock    Clock
	fpsLimit int

	running bool
	reset   bool

	last     time.Duration
	haveLast bool
	dt       float64
	frame    uint64

	logic  []Ticker
	fps    fpsCounter
	runner *TestRunner
}

// NewRuntime creates a running Runtime.
func NewRuntime(cfg RuntimeConfig) *Runtime {
	r := &Runtime{
		scene:    cfg.Scene,
		display:  cfg.Display,
		input:    cfg.Input,
		clock:    cfg.Clock,
		fpsLimit: max(cfg.FPSLimit, 0),
		running:  true,
	}
	if r.scene == nil {
		r.scene = NewScene()
	}
	if r.display == nil {
		r.display = &NullDisplay{}
	}
	if r.input == nil {
		r.input = NewInput(nil)
	}
	if r.clock == nil {
		r.clock = SystemClock()
	}
	r.display.SetRoot(r.scene.Root())
	return r
}

// Scene returns the scene the runtime ticks.
func (r *Runtime) Scene() *Scene { return r.scene }

// Input returns the runtime's input state.
func (r *Runtime) Input() *Input { return r.input }

// AddLogic appends a ticker that runs after the scene registry every frame.
func (r *Runtime) AddLogic(t Ticker) {
	r.logic = append(r.logic, t)
}

// RemoveLogic removes a ticker added with AddLogic.
func (r *Runtime) RemoveLogic(t Ticker) {
	for i, c := range r.logic {
		if c == t {
			r.logic = append(r.logic[:i], r.logic[i+1:]...)
			return
		}
	}
}

// SetTestRunner attaches a scripted input runner. Its step runs at the start
// of every Tick, before input is polled.
func (r *Runtime) SetTestRunner(tr *TestRunner) {
	r.runner = tr
}

// Start resumes node ticking.
func (r *Runtime) Start() { r.running = true }

// End stops node ticking. Tick keeps refreshing and polling and returns
// false while stopped.
func (r *Runtime) End() { r.running = false }

// Running reports whether nodes are ticked.
func (r *Runtime) Running() bool { return r.running }

// Reset makes the next Tick return ErrReset.
func (r *Runtime) Reset() { r.reset = true }

// SetFPSLimit sets the refresh rate cap. Zero or less disables pacing.
func (r *Runtime) SetFPSLimit(fps int) { r.fpsLimit = max(fps, 0) }

// FPSLimit returns the refresh rate cap, 0 when disabled.
func (r *Runtime) FPSLimit() int { return r.fpsLimit }

// Tick runs one frame. It returns whether the runtime is running, or
// ErrReset when the game should exit to the launcher. The first tick only
// records the time; nodes are first ticked on the second call.
func (r *Runtime) Tick() (bool, error) {
	if r.runner != nil {
		r.runner.step(r.input)
	}

	if err := r.display.Refresh(r.fpsLimit); err != nil {
		return r.running, fmt.Errorf("bramble: refresh: %w", err)
	}

	r.input.Poll()
	if r.reset || r.input.JustPressed(ButtonHome) {
		r.reset = false
		return false, ErrReset
	}

	now := r.clock.Now()
	if r.running && r.haveLast {
		r.dt = (now - r.last).Seconds()
		r.scene.Tick(r.dt)
		for _, t := range r.logic {
			t.Tick(r.dt)
		}
	}
	r.last = now
	r.haveLast = true

	r.fps.frame(now)
	r.frame++
	return r.running, nil
}

// Run ticks until the runtime stops or an error (including ErrReset)
// occurs.
func (r *Runtime) Run() error {
	for {
		running, err := r.Tick()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
}

// DT returns the seconds between the last two ticks.
func (r *Runtime) DT() float64 { return r.dt }

// Frame returns the number of completed ticks.
func (r *Runtime) Frame() uint64 { return r.frame }

// FPS returns the measured frames per second.
func (r *Runtime) FPS() float64 { return r.fps.fps }

// TimeToNextTick returns how long until the next frame boundary, or 0 when
// pacing is disabled or the boundary has passed.
func (r *Runtime) TimeToNextTick() time.Duration {
	if r.fpsLimit <= 0 || !r.haveLast {
		return 0
	}
	left := time.Second/time.Duration(r.fpsLimit) - (r.clock.Now() - r.last)
	return max(left, 0)
}
