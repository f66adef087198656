package bramble

import (
	"image/color"
	"math"
)

// DisplaySize is the edge length, in pixels, of the square logical canvas.
const DisplaySize = 128

// LayerCount is the number of depth layers. Layers draw in ascending index
// order regardless of the order in which they were first used.
const LayerCount = 128

// hiddenOpacity is the opacity at or below which a visual node is hidden.
const hiddenOpacity = 0.01

// Vec2 is a 2D vector used for positions, scales, and two-component tween
// values throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Vec3 returns v extended with a zero Z component.
func (v Vec2) Vec3() Vec3 { return Vec3{v.X, v.Y, 0} }

// Vec3 is a 3D vector. Node positions and rotations are stored as Vec3;
// visual nodes only use X and Y.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns v scaled by s.
func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalized returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Color is an opaque RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB returns a Color with each component clamped to [0, 1].
func RGB(r, g, b float64) Color {
	return Color{clamp01(r), clamp01(g), clamp01(b)}
}

// RGB565 decodes a packed 16-bit 5:6:5 color.
func RGB565(v uint16) Color {
	r5 := (v >> 11) & 0x1f
	g6 := (v >> 5) & 0x3f
	b5 := v & 0x1f
	return Color{float64(r5) / 0x1f, float64(g6) / 0x3f, float64(b5) / 0x1f}
}

// RGB888 decodes a packed 24-bit color.
func RGB888(v uint32) Color {
	return Color{
		float64((v>>16)&0xff) / 0xff,
		float64((v>>8)&0xff) / 0xff,
		float64(v&0xff) / 0xff,
	}
}

// RGB565 packs c into 16-bit 5:6:5 form.
func (c Color) RGB565() uint16 {
	r5 := uint16(math.Round(clamp01(c.R) * 0x1f))
	g6 := uint16(math.Round(clamp01(c.G) * 0x3f))
	b5 := uint16(math.Round(clamp01(c.B) * 0x1f))
	return r5<<11 | g6<<5 | b5
}

// RGB888 packs c into 24-bit form.
func (c Color) RGB888() uint32 {
	r8 := uint32(math.Round(clamp01(c.R) * 0xff))
	g8 := uint32(math.Round(clamp01(c.G) * 0xff))
	b8 := uint32(math.Round(clamp01(c.B) * 0xff))
	return r8<<16 | g8<<8 | b8
}

// RGBA converts c to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	v := c.RGB888()
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Named colors, in RGB565 as the device palette defines them.
var (
	ColorBlack       = RGB565(0x0000)
	ColorNavy        = RGB565(0x000F)
	ColorDarkGreen   = RGB565(0x03E0)
	ColorDarkCyan    = RGB565(0x03EF)
	ColorMaroon      = RGB565(0x7800)
	ColorPurple      = RGB565(0x780F)
	ColorOlive       = RGB565(0x7BE0)
	ColorLightGrey   = RGB565(0xD69A)
	ColorDarkGrey    = RGB565(0x7BEF)
	ColorBlue        = RGB565(0x001F)
	ColorGreen       = RGB565(0x07E0)
	ColorCyan        = RGB565(0x07FF)
	ColorRed         = RGB565(0xF800)
	ColorMagenta     = RGB565(0xF81F)
	ColorYellow      = RGB565(0xFFE0)
	ColorWhite       = RGB565(0xFFFF)
	ColorOrange      = RGB565(0xFDA0)
	ColorGreenYellow = RGB565(0xB7E0)
	ColorPink        = RGB565(0xFE19)
	ColorBrown       = RGB565(0x9A60)
	ColorGold        = RGB565(0xFEA0)
	ColorSilver      = RGB565(0xC618)
	ColorSkyBlue     = RGB565(0x867D)
	ColorViolet      = RGB565(0x915C)
)

// NodeKind distinguishes the behavior of a Node. The set is closed.
type NodeKind uint8

const (
	KindEmpty     NodeKind = iota // logical node with no drawable
	KindCamera                    // positions the scene root on the display
	KindSprite                    // animated tile picker over a texture
	KindRectangle                 // filled or outlined box
	KindText                      // fixed character grid
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindCamera:
		return "camera"
	case KindSprite:
		return "sprite"
	case KindRectangle:
		return "rectangle"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Visual reports whether nodes of this kind own a drawable group.
func (k NodeKind) Visual() bool {
	return k == KindSprite || k == KindRectangle || k == KindText
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
