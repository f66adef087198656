package bramble

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png" // register PNG decoder
	"io"
	"io/fs"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp" // register BMP decoder
)

// --- Texture ---

// Texture is a decoded bitmap. Textures are immutable once loaded and are
// lent to any number of sprite and text nodes.
type Texture struct {
	pix *image.NRGBA

	// GPU copies keyed by transparent color (noTransparent for none),
	// created on first draw.
	images map[uint32]*ebiten.Image
}

const noTransparent = 1 << 24

// LoadTexture decodes a BMP or PNG file from fsys.
func LoadTexture(fsys fs.FS, name string) (*Texture, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("bramble: load texture: %w", err)
	}
	defer f.Close()
	t, err := DecodeTexture(f)
	if err != nil {
		return nil, fmt.Errorf("bramble: load texture %s: %w", name, err)
	}
	return t, nil
}

// DecodeTexture decodes a BMP or PNG image from r.
func DecodeTexture(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return NewTexture(img), nil
}

// NewTexture copies img into a new Texture.
func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	pix := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(pix, pix.Bounds(), img, b.Min, draw.Src)
	return &Texture{pix: pix}
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.pix.Rect.Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.pix.Rect.Dy() }

// At returns the color of the pixel at (x, y).
func (t *Texture) At(x, y int) Color {
	c := t.pix.NRGBAAt(x, y)
	return RGB888(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

func (t *Texture) rgb888At(x, y int) uint32 {
	c := t.pix.NRGBAAt(x, y)
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// image returns the GPU image with every pixel matching the transparent
// color cleared. Pass noTransparent for an unmodified copy.
func (t *Texture) image(transparent uint32) *ebiten.Image {
	if img, ok := t.images[transparent]; ok {
		return img
	}
	src := t.pix
	if transparent != noTransparent {
		src = image.NewNRGBA(t.pix.Rect)
		copy(src.Pix, t.pix.Pix)
		for y := 0; y < src.Rect.Dy(); y++ {
			for x := 0; x < src.Rect.Dx(); x++ {
				if t.rgb888At(x, y) == transparent {
					src.SetNRGBA(x, y, color.NRGBA{})
				}
			}
		}
	}
	img := ebiten.NewImageFromImage(src)
	if t.images == nil {
		t.images = make(map[uint32]*ebiten.Image)
	}
	t.images[transparent] = img
	return img
}

// placeholder texture singleton (no sync.Once, scenes are single-threaded)
var placeholderTexture *Texture

// missingTexture returns an 8x8 magenta texture drawn for sprites created
// without one.
func missingTexture() *Texture {
	if placeholderTexture == nil {
		img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: color.NRGBA{R: 255, B: 255, A: 255}}, image.Point{}, draw.Src)
		placeholderTexture = &Texture{pix: img}
	}
	return placeholderTexture
}

// --- Font ---

const (
	firstGlyph = ' '
	lastGlyph  = '~'
	glyphCount = lastGlyph - firstGlyph + 1
)

// Font is a bitmap font laid out as a single strip of glyphs for ' '..'~'.
// The last pixel row is not drawn: it encodes glyph widths as runs of
// alternating colors.
type Font struct {
	tex     *Texture
	widths  [glyphCount]int
	offsets [glyphCount]int
	maxW    int
}

// LoadFont decodes a font strip from fsys.
func LoadFont(fsys fs.FS, name string) (*Font, error) {
	tex, err := LoadTexture(fsys, name)
	if err != nil {
		return nil, err
	}
	return NewFont(tex)
}

// NewFont measures glyphs from the key row of tex.
func NewFont(tex *Texture) (*Font, error) {
	if tex.Height() < 2 {
		return nil, fmt.Errorf("bramble: font texture must be at least 2 pixels high, got %d", tex.Height())
	}
	f := &Font{tex: tex}
	y := tex.Height() - 1
	run := tex.rgb888At(0, y)
	width, index := 0, 0
	for x := 0; x < tex.Width(); x++ {
		if v := tex.rgb888At(x, y); v != run {
			run = v
			f.setGlyph(index, x-width, width)
			index++
			width = 1
		} else {
			width++
		}
	}
	f.setGlyph(index, tex.Width()-width, width)
	return f, nil
}

func (f *Font) setGlyph(index, offset, width int) {
	if index >= glyphCount {
		return
	}
	f.offsets[index] = offset
	f.widths[index] = width
	f.maxW = max(f.maxW, width)
}

// Texture returns the glyph strip.
func (f *Font) Texture() *Texture { return f.tex }

// Height returns the glyph height, excluding the key row.
func (f *Font) Height() int { return f.tex.Height() - 1 }

// CellWidth returns the widest glyph width.
func (f *Font) CellWidth() int { return f.maxW }

// Glyph returns the strip offset and width of r. Characters outside
// ' '..'~' map to the blank glyph.
func (f *Font) Glyph(r rune) (offset, width int) {
	if r < firstGlyph || r > lastGlyph {
		r = firstGlyph
	}
	i := r - firstGlyph
	return f.offsets[i], f.widths[i]
}

// --- Sound ---

// Sound is a decoded sample buffer played through a Mixer voice.
type Sound struct {
	buf *beep.Buffer
}

// LoadSound decodes a WAV file from fsys into memory.
func LoadSound(fsys fs.FS, name string) (*Sound, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("bramble: load sound: %w", err)
	}
	defer f.Close()
	s, err := DecodeSound(f)
	if err != nil {
		return nil, fmt.Errorf("bramble: load sound %s: %w", name, err)
	}
	return s, nil
}

// DecodeSound decodes WAV data from r into memory.
func DecodeSound(r io.Reader) (*Sound, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()
	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, err
	}
	return &Sound{buf: buf}, nil
}

// NewSound wraps an existing sample buffer.
func NewSound(buf *beep.Buffer) *Sound {
	return &Sound{buf: buf}
}

// Format returns the sample format of the sound.
func (s *Sound) Format() beep.Format { return s.buf.Format() }

// Len returns the number of samples.
func (s *Sound) Len() int { return s.buf.Len() }

// Duration returns the playback length.
func (s *Sound) Duration() time.Duration {
	return s.buf.Format().SampleRate.D(s.buf.Len())
}

// stream returns a fresh streamer over the sound resampled to rate.
func (s *Sound) stream(rate beep.SampleRate, loop bool) beep.Streamer {
	var st beep.Streamer = s.buf.Streamer(0, s.buf.Len())
	if loop {
		st = beep.Loop(-1, s.buf.Streamer(0, s.buf.Len()))
	}
	if src := s.buf.Format().SampleRate; src != rate {
		st = beep.Resample(4, src, rate, st)
	}
	return st
}
