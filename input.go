package bramble

import "strings"

// Button is a logical input button.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonLB
	ButtonRB
	ButtonMenu
	ButtonHome

	buttonCount
)

var buttonNames = [buttonCount]string{"up", "down", "left", "right", "a", "b", "lb", "rb", "menu", "home"}

// String returns the lower-case button name.
func (b Button) String() string {
	if b >= buttonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// ParseButton returns the button with the given name, case-insensitively.
func ParseButton(name string) (Button, bool) {
	name = strings.ToLower(name)
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// ButtonSet is a bit set of buttons.
type ButtonSet uint16

// Has reports whether b is in the set.
func (s ButtonSet) Has(b Button) bool { return s&(1<<b) != 0 }

// With returns the set with b added.
func (s ButtonSet) With(b Button) ButtonSet { return s | 1<<b }

// ButtonEvent is a press or release edge reported by a gamepad.
type ButtonEvent struct {
	Button  Button
	Pressed bool
}

// Gamepad is a controller that reports held buttons and edge events.
// Update is called once per frame before any query.
type Gamepad interface {
	Update()
	Connected() bool
	Held(b Button) bool
	// Events returns the edges observed by the last Update.
	Events() []ButtonEvent
	SetRumble(strength float64)
}

// KeySource is a byte stream of typed keys, drained without blocking.
type KeySource interface {
	ReadAvailable() []byte
}

// KeyMap maps parsed key tokens to buttons. Tokens are upper-cased single
// characters or escape sequences such as "\x1b[A".
type KeyMap map[string]Button

// DefaultKeyMap returns the standard keyboard layout.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"J": ButtonA, "Z": ButtonA,
		"K": ButtonB, "X": ButtonB,
		"Q": ButtonLB, "C": ButtonLB,
		"E": ButtonRB, "V": ButtonRB,
		"\n": ButtonMenu, "\r": ButtonMenu,
		"W": ButtonUp, "S": ButtonDown, "A": ButtonLeft, "D": ButtonRight,
		"\x1b[A": ButtonUp, "\x1b[B": ButtonDown,
		"\x1b[D": ButtonLeft, "\x1b[C": ButtonRight,
		"\x1b": ButtonHome,
	}
}

// Input merges a key stream, any number of gamepads and injected presses into
// per-frame button state. Poll is called once per frame by the Runtime.
type Input struct {
	keys   KeySource
	parser KeyParser
	keyMap KeyMap
	pads   []Gamepad

	curr, prev []string

	padPressed  ButtonSet
	padReleased ButtonSet

	injectQueue  []ButtonSet
	injectedCurr ButtonSet
	injectedPrev ButtonSet
}

// NewInput creates an Input reading keys from keys (which may be nil) and
// the given gamepads, with DefaultKeyMap.
func NewInput(keys KeySource, pads ...Gamepad) *Input {
	return &Input{keys: keys, pads: pads, keyMap: DefaultKeyMap()}
}

// SetKeyMap replaces the key layout.
func (in *Input) SetKeyMap(m KeyMap) { in.keyMap = m }

// AddGamepad attaches another controller.
func (in *Input) AddGamepad(p Gamepad) { in.pads = append(in.pads, p) }

// Poll starts a new input frame: the key set of the last frame becomes the
// previous set, pads are updated and the key stream is drained.
func (in *Input) Poll() {
	in.padPressed, in.padReleased = 0, 0
	for _, p := range in.pads {
		p.Update()
		if !p.Connected() {
			continue
		}
		for _, ev := range p.Events() {
			if ev.Pressed {
				in.padPressed = in.padPressed.With(ev.Button)
			} else {
				in.padReleased = in.padReleased.With(ev.Button)
			}
		}
	}

	in.prev, in.curr = in.curr, in.prev[:0]
	if in.keys != nil {
		if data := in.keys.ReadAvailable(); len(data) > 0 {
			in.curr = in.parser.Feed(in.curr, data)
		}
	}

	in.processInjected()
}

// Pressed reports whether b is held on a gamepad or one of its keys arrived
// this frame.
func (in *Input) Pressed(b Button) bool {
	for _, p := range in.pads {
		if p.Connected() && p.Held(b) {
			return true
		}
	}
	return in.injectedCurr.Has(b) || in.keysHave(in.curr, b)
}

// JustPressed reports a gamepad press edge this frame, or a key for b that
// arrived this frame but not the previous one.
func (in *Input) JustPressed(b Button) bool {
	if in.padPressed.Has(b) {
		return true
	}
	if in.injectedCurr.Has(b) && !in.injectedPrev.Has(b) {
		return true
	}
	return in.keyEdge(in.curr, in.prev, b)
}

// JustReleased reports a gamepad release edge this frame, or a key for b
// that arrived the previous frame but not this one.
func (in *Input) JustReleased(b Button) bool {
	if in.padReleased.Has(b) {
		return true
	}
	if in.injectedPrev.Has(b) && !in.injectedCurr.Has(b) {
		return true
	}
	return in.keyEdge(in.prev, in.curr, b)
}

// Keys returns the key tokens parsed this frame. The returned slice MUST NOT
// be retained past the next Poll.
func (in *Input) Keys() []string {
	return in.curr
}

// Rumble sets the vibration strength on every connected gamepad.
func (in *Input) Rumble(strength float64) {
	strength = clamp01(strength)
	for _, p := range in.pads {
		if p.Connected() {
			p.SetRumble(strength)
		}
	}
}

func (in *Input) keysHave(keys []string, b Button) bool {
	for _, k := range keys {
		if m, ok := in.keyMap[k]; ok && m == b {
			return true
		}
	}
	return false
}

// keyEdge reports whether a key mapped to b is in a but not in other.
func (in *Input) keyEdge(a, other []string, b Button) bool {
	for _, k := range a {
		if m, ok := in.keyMap[k]; !ok || m != b {
			continue
		}
		if !containsKey(other, k) {
			return true
		}
	}
	return false
}

func containsKey(keys []string, k string) bool {
	for _, c := range keys {
		if c == k {
			return true
		}
	}
	return false
}
