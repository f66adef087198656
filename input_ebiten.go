package bramble

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenKeys is a KeySource that turns the ebiten keyboard into the same
// byte stream a serial terminal produces. Every key held during a frame is
// reported in that frame, so held keys stay pressed.
type EbitenKeys struct {
	keys []ebiten.Key
	buf  []byte
}

// NewEbitenKeys creates a keyboard key source.
func NewEbitenKeys() *EbitenKeys {
	return &EbitenKeys{}
}

var ebitenKeyBytes = map[ebiten.Key]string{
	ebiten.KeyEnter:       "\n",
	ebiten.KeyNumpadEnter: "\n",
	ebiten.KeyArrowUp:     "\x1b[A",
	ebiten.KeyArrowDown:   "\x1b[B",
	ebiten.KeyArrowRight:  "\x1b[C",
	ebiten.KeyArrowLeft:   "\x1b[D",
}

// ReadAvailable returns the held keys encoded as terminal bytes. Escape is
// emitted last so it never prefixes another key's sequence.
func (k *EbitenKeys) ReadAvailable() []byte {
	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
	k.buf = k.buf[:0]
	escape := false
	for _, key := range k.keys {
		if key == ebiten.KeyEscape {
			escape = true
			continue
		}
		if s, ok := ebitenKeyBytes[key]; ok {
			k.buf = append(k.buf, s...)
			continue
		}
		if key >= ebiten.KeyA && key <= ebiten.KeyZ {
			k.buf = append(k.buf, byte('A'+(key-ebiten.KeyA)))
		}
	}
	if escape {
		k.buf = append(k.buf, esc)
	}
	return k.buf
}

// gamepadThreshold is the stick deflection treated as a direction press.
const gamepadThreshold = 0.5

var standardButtons = [...]struct {
	std ebiten.StandardGamepadButton
	btn Button
}{
	{ebiten.StandardGamepadButtonLeftTop, ButtonUp},
	{ebiten.StandardGamepadButtonLeftBottom, ButtonDown},
	{ebiten.StandardGamepadButtonLeftLeft, ButtonLeft},
	{ebiten.StandardGamepadButtonLeftRight, ButtonRight},
	{ebiten.StandardGamepadButtonRightBottom, ButtonA},
	{ebiten.StandardGamepadButtonRightRight, ButtonB},
	{ebiten.StandardGamepadButtonFrontTopLeft, ButtonLB},
	{ebiten.StandardGamepadButtonFrontTopRight, ButtonRB},
	{ebiten.StandardGamepadButtonCenterRight, ButtonMenu},
	{ebiten.StandardGamepadButtonCenterCenter, ButtonHome},
}

// EbitenGamepad is a Gamepad over the first connected ebiten controller with
// a standard layout. The left stick doubles as the d-pad.
type EbitenGamepad struct {
	id        ebiten.GamepadID
	connected bool
	held      ButtonSet
	events    []ButtonEvent
	ids       []ebiten.GamepadID
}

// NewEbitenGamepad creates a gamepad that binds on its first Update.
func NewEbitenGamepad() *EbitenGamepad {
	return &EbitenGamepad{}
}

// Update samples the controller and records edges since the last Update.
func (g *EbitenGamepad) Update() {
	g.events = g.events[:0]
	g.ids = ebiten.AppendGamepadIDs(g.ids[:0])
	if !g.connected || !slices.Contains(g.ids, g.id) {
		g.connected = false
		for _, id := range g.ids {
			if ebiten.IsStandardGamepadLayoutAvailable(id) {
				g.id, g.connected = id, true
				break
			}
		}
	}

	var now ButtonSet
	if g.connected {
		for _, m := range standardButtons {
			if ebiten.IsStandardGamepadButtonPressed(g.id, m.std) {
				now = now.With(m.btn)
			}
		}
		h := ebiten.StandardGamepadAxisValue(g.id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(g.id, ebiten.StandardGamepadAxisLeftStickVertical)
		switch {
		case h <= -gamepadThreshold:
			now = now.With(ButtonLeft)
		case h >= gamepadThreshold:
			now = now.With(ButtonRight)
		}
		switch {
		case v <= -gamepadThreshold:
			now = now.With(ButtonUp)
		case v >= gamepadThreshold:
			now = now.With(ButtonDown)
		}
	}

	for b := Button(0); b < buttonCount; b++ {
		was, is := g.held.Has(b), now.Has(b)
		if was != is {
			g.events = append(g.events, ButtonEvent{Button: b, Pressed: is})
		}
	}
	g.held = now
}

// Connected reports whether a controller is bound.
func (g *EbitenGamepad) Connected() bool { return g.connected }

// Held reports whether b is down.
func (g *EbitenGamepad) Held(b Button) bool { return g.held.Has(b) }

// Events returns the edges observed by the last Update.
func (g *EbitenGamepad) Events() []ButtonEvent { return g.events }

// SetRumble vibrates the controller for a short pulse at the given strength.
func (g *EbitenGamepad) SetRumble(strength float64) {
	if !g.connected || strength <= 0 {
		return
	}
	ebiten.VibrateGamepad(g.id, &ebiten.VibrateGamepadOptions{
		Duration:        100 * time.Millisecond,
		StrongMagnitude: strength,
		WeakMagnitude:   strength,
	})
}
