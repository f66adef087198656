package bramble

import (
	"fmt"
	"time"
)

// fpsCounter measures frames per second over windows of at least one second.
type fpsCounter struct {
	frames      int
	windowStart time.Duration
	started     bool
	fps         float64
}

func (c *fpsCounter) frame(now time.Duration) {
	if !c.started {
		c.windowStart = now
		c.started = true
		return
	}
	c.frames++
	if elapsed := now - c.windowStart; elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.windowStart = now
	}
}

// NewFPSWidget creates a text node on the top layer that shows the
// runtime's measured FPS. The widget refreshes every half second.
func (s *Scene) NewFPSWidget(font *Font, rt *Runtime) *Node {
	n := s.NewText("fps_widget", font, 8, 1)
	n.SetLayer(LayerCount - 1)
	n.SetColor(ColorGreenYellow)

	var lastUpdate float64
	n.OnTick = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0
		n.SetText(fmt.Sprintf("%4.1f", rt.FPS()))
	}
	return n
}
