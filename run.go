package bramble

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures a windowed run.
type RunConfig struct {
	Title   string
	Scale   int     // window pixels per display pixel, default 4
	FPS     int     // ticks per second, default DefaultFPS
	Volume  float64 // master volume applied to Mixer
	Mixer   *Mixer  // optional; started for the duration of the run
	ShowFPS bool    // overlay ebiten's measured FPS
}

// ebitenDisplay lets ebiten pace frames; the root is drawn in Draw.
type ebitenDisplay struct {
	root *Group
}

func (d *ebitenDisplay) SetRoot(root *Group) { d.root = root }
func (d *ebitenDisplay) Refresh(int) error { return nil }

type game struct {
	rt      *Runtime
	showFPS bool
	err     error
}

func (g *game) Update() error {
	running, err := g.rt.Tick()
	if err != nil {
		g.err = err
		return ebiten.Termination
	}
	if !running {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.rt.scene.Draw(screen)
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%.0f", ebiten.ActualFPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return DisplaySize, DisplaySize
}

// Run opens a window and drives rt until the runtime stops or fails. The
// runtime's display is replaced by ebiten's, which paces frames itself.
// ErrReset from the runtime is returned unchanged.
func Run(rt *Runtime, cfg RunConfig) error {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 4
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	rt.display = &ebitenDisplay{}
	rt.display.SetRoot(rt.scene.Root())
	rt.fpsLimit = 0

	if cfg.Mixer != nil {
		cfg.Mixer.SetVolume(cfg.Volume)
		if err := cfg.Mixer.Start(); err != nil {
			return err
		}
		defer cfg.Mixer.Close()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(DisplaySize*scale, DisplaySize*scale)
	ebiten.SetTPS(fps)

	g := &game{rt: rt, showFPS: cfg.ShowFPS}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return g.err
}
