package bramble

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// primitive is a leaf drawable held by a Group: a sprite tile, a rectangle
// bitmap or a text grid. Primitives draw centered on the group origin.
type primitive interface {
	draw(dst *ebiten.Image, geo ebiten.GeoM)
}

// Draw renders the group and its descendants onto dst. Each group translates
// by its integer offset and scales by its integer factor relative to its
// container. Hidden groups skip their whole subtree.
func (g *Group) Draw(dst *ebiten.Image, parent ebiten.GeoM) {
	if g.Hidden {
		return
	}
	var geo ebiten.GeoM
	s := float64(g.scale())
	geo.Scale(s, s)
	geo.Translate(float64(g.X), float64(g.Y))
	geo.Concat(parent)
	for _, p := range g.prims {
		p.draw(dst, geo)
	}
	for _, c := range g.groups {
		c.Draw(dst, geo)
	}
}

// Draw clears dst to the background color and renders every layer in
// ascending order.
func (s *Scene) Draw(dst *ebiten.Image) {
	var start time.Time
	if s.debug {
		start = time.Now()
	}
	dst.Fill(s.Background.RGBA())
	s.root.Draw(dst, ebiten.GeoM{})
	s.flushScreenshots(dst)
	if s.debug {
		groups, prims := countDrawables(s.root)
		s.debugLog(debugStats{
			tickTime:   s.lastTick,
			drawTime:   time.Since(start),
			tickers:    s.TickerCount(),
			groups:     groups,
			primitives: prims,
		})
	}
}
