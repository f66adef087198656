package bramble

import (
	"fmt"
	"log"
	"time"
)

// Ticker is anything the scene advances once per frame.
type Ticker interface {
	Tick(dt float64)
}

// Scene owns the node registry, the layer table, and the root drawable.
// Several independent scenes may coexist; nothing is process-global.
type Scene struct {
	root   *Group
	layers [LayerCount]*Group

	// Registry of tickers in registration order. Destroyed entries become nil
	// while a tick is in progress and are compacted afterwards.
	tickers []Ticker
	ticking bool

	camera   *Node
	debug    bool
	nextID   uint32
	lastTick time.Duration

	screenshotQueue []string

	// Background is the color the display is cleared to before drawing.
	Background Color

	// ScreenshotDir is where Screenshot writes captures, "screenshots" by
	// default. Empty means the working directory.
	ScreenshotDir string
}

// NewScene creates an empty scene with no layers allocated.
func NewScene() *Scene {
	return &Scene{root: NewGroup(), Background: ColorBlack, ScreenshotDir: "screenshots"}
}

// Root returns the root drawable, which contains the layer groups.
func (s *Scene) Root() *Group {
	return s.root
}

// Layer returns the drawable group for a layer index, clamped to
// [0, LayerCount). The group is created on first use and inserted into the
// root after every lower-indexed layer, so draw order is ascending by index.
func (s *Scene) Layer(index int) *Group {
	index = clampInt(index, 0, LayerCount-1)
	if g := s.layers[index]; g != nil {
		return g
	}
	g := NewGroup()
	pos := 0
	for i := 0; i < index; i++ {
		if s.layers[i] != nil {
			pos++
		}
	}
	s.root.Insert(pos, g)
	s.layers[index] = g
	return g
}

// HasLayer reports whether the layer group has been created.
func (s *Scene) HasLayer(index int) bool {
	return index >= 0 && index < LayerCount && s.layers[index] != nil
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// --- Node constructors ---

// NewEmpty creates a logical node with no visual representation.
func (s *Scene) NewEmpty(name string) *Node {
	return s.newNode(name, KindEmpty)
}

// NewCamera creates a camera node and makes it the active camera. The camera
// position is centered on the display.
func (s *Scene) NewCamera(name string) *Node {
	n := s.newNode(name, KindCamera)
	n.cam = &cameraState{}
	s.camera = n
	s.applyCamera()
	return n
}

func (s *Scene) newNode(name string, kind NodeKind) *Node {
	s.nextID++
	n := &Node{
		ID:      s.nextID,
		Name:    name,
		Kind:    kind,
		scale:   Vec2{1, 1},
		opacity: 1,
		scene:   s,
	}
	if kind.Visual() {
		n.group = NewGroup()
		n.scene.Layer(0).Append(n.group)
	}
	s.register(n)
	return n
}

// --- Registry ---

// Register adds a ticker to the end of the registry. Tickers registered
// while a tick is running are first ticked on the next frame.
func (s *Scene) Register(t Ticker) {
	s.register(t)
}

// Unregister removes a ticker from the registry. No-op if absent.
func (s *Scene) Unregister(t Ticker) {
	s.unregister(t)
}

func (s *Scene) register(t Ticker) {
	s.tickers = append(s.tickers, t)
}

func (s *Scene) unregister(t Ticker) {
	for i, c := range s.tickers {
		if c == t {
			if s.ticking {
				s.tickers[i] = nil
				return
			}
			copy(s.tickers[i:], s.tickers[i+1:])
			s.tickers[len(s.tickers)-1] = nil
			s.tickers = s.tickers[:len(s.tickers)-1]
			return
		}
	}
}

// TickerCount returns the number of live registered tickers.
func (s *Scene) TickerCount() int {
	count := 0
	for _, t := range s.tickers {
		if t != nil {
			count++
		}
	}
	return count
}

// Tick advances every registered ticker by dt seconds, in registration order.
func (s *Scene) Tick(dt float64) {
	var start time.Time
	if s.debug {
		start = time.Now()
	}
	s.ticking = true
	count := len(s.tickers)
	for i := 0; i < count; i++ {
		if t := s.tickers[i]; t != nil {
			t.Tick(dt)
		}
	}
	s.ticking = false
	s.compact()
	if s.debug {
		s.lastTick = time.Since(start)
	}
}

// compact drops nil tombstones left by unregister during a tick.
func (s *Scene) compact() {
	live := s.tickers[:0]
	for _, t := range s.tickers {
		if t != nil {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tickers); i++ {
		s.tickers[i] = nil
	}
	s.tickers = live
}

// --- Destruction ---

// Destroy releases a node: it is detached from its parent, its drawable is
// removed from its container, tweens and delays it owns are destroyed, and it
// leaves the registry. Destroying a node that still has children is a caller
// ordering bug and panics. Destroying an already destroyed node is a no-op.
func (s *Scene) Destroy(n *Node) {
	if n == nil || n.destroyed {
		return
	}
	if n.scene != s {
		panic("bramble: destroying a node owned by another scene")
	}
	if len(n.children) > 0 {
		panic(fmt.Sprintf("bramble: cannot destroy %q: %d children not destroyed", n.Name, len(n.children)))
	}
	if n.parent != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
	}
	if n.group != nil {
		n.group.Detach()
		n.group.Clear()
	}
	for _, tw := range n.tweens {
		tw.destroy()
	}
	n.tweens = nil
	for _, d := range n.delays {
		d.destroy()
	}
	n.delays = nil
	s.unregister(n)
	if s.camera == n {
		s.camera = nil
		s.applyCamera()
	}
	n.destroyed = true
	n.OnTick = nil
	n.UserData = nil
}

// DestroyAll destroys n's descendants bottom-up, last child first, and then n.
func (s *Scene) DestroyAll(n *Node) {
	if n == nil || n.destroyed {
		return
	}
	for len(n.children) > 0 {
		s.DestroyAll(n.children[len(n.children)-1])
	}
	s.Destroy(n)
}

// --- Camera ---

// Camera returns the active camera node, or nil.
func (s *Scene) Camera() *Node {
	return s.camera
}

// applyCamera offsets the root so the camera position lands at the display
// center.
func (s *Scene) applyCamera() {
	if s.camera == nil {
		s.root.X, s.root.Y = 0, 0
		return
	}
	sc := s.root.scale()
	p := s.camera.position
	s.root.X = DisplaySize/2 - int(p.X)*sc
	s.root.Y = DisplaySize/2 - int(p.Y)*sc
}

func (s *Scene) logf(format string, args ...any) {
	if s.debug {
		log.Printf("bramble: "+format, args...)
	}
}
