package bramble

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// rectState is the indexed bitmap behind a KindRectangle node. A filled
// rectangle has one palette entry used by every pixel. An outlined rectangle
// has two: index 0 is transparent and index 1, the color, covers only the
// one-pixel border.
type rectState struct {
	w, h    int
	outline bool
	color   Color
	bitmap  []uint8

	img *ebiten.Image // rebuilt after a palette change
}

// NewRectangle creates a w by h rectangle node, filled or outlined. Sizes
// below 1 are raised to 1.
func (s *Scene) NewRectangle(name string, w, h int, c Color, outline bool) *Node {
	n := s.newNode(name, KindRectangle)
	w, h = max(w, 1), max(h, 1)
	rs := &rectState{w: w, h: h, outline: outline, color: c, bitmap: make([]uint8, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !outline || x == 0 || y == 0 || x == w-1 || y == h-1 {
				rs.bitmap[y*w+x] = 1
			}
		}
	}
	n.rect = rs
	n.group.addPrimitive(rs)
	return n
}

// Size returns the rectangle's width and height in pixels.
func (n *Node) Size() (w, h int) {
	n.mustKind(KindRectangle, "Size")
	return n.rect.w, n.rect.h
}

// Outlined reports whether only the border is drawn.
func (n *Node) Outlined() bool {
	n.mustKind(KindRectangle, "Outlined")
	return n.rect.outline
}

// PixelIndex returns the palette index of the pixel at (x, y): 0 for a
// transparent pixel and 1 for a colored one.
func (n *Node) PixelIndex(x, y int) int {
	n.mustKind(KindRectangle, "PixelIndex")
	rs := n.rect
	if x < 0 || y < 0 || x >= rs.w || y >= rs.h {
		return 0
	}
	return int(rs.bitmap[y*rs.w+x])
}

// Color returns the color of a rectangle or text node.
func (n *Node) Color() Color {
	switch n.Kind {
	case KindRectangle:
		return n.rect.color
	case KindText:
		return n.text.color
	}
	panic("bramble: Color on " + n.Kind.String() + " node " + n.Name)
}

// SetColor repaints a rectangle or text node. Only the palette changes.
func (n *Node) SetColor(c Color) {
	switch n.Kind {
	case KindRectangle:
		n.rect.color = c
		n.rect.img = nil
	case KindText:
		n.text.color = c
	default:
		panic("bramble: SetColor on " + n.Kind.String() + " node " + n.Name)
	}
}

func (rs *rectState) image() *ebiten.Image {
	if rs.img != nil {
		return rs.img
	}
	pix := image.NewNRGBA(image.Rect(0, 0, rs.w, rs.h))
	fill := color.NRGBAModel.Convert(rs.color.RGBA()).(color.NRGBA)
	for i, idx := range rs.bitmap {
		if idx == 1 {
			pix.SetNRGBA(i%rs.w, i/rs.w, fill)
		}
	}
	rs.img = ebiten.NewImageFromImage(pix)
	return rs.img
}

func (rs *rectState) draw(dst *ebiten.Image, geo ebiten.GeoM) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(-rs.w/2), float64(-rs.h/2))
	op.GeoM.Concat(geo)
	dst.DrawImage(rs.image(), &op)
}
