package puzzle

import "fmt"

// State is a screen or phase of the game.
type State uint8

const (
	StateIntro State = iota
	StatePressStart
	StateModeSelect
	StateStageSelect
	StateLevelLoading
	StateCursorSelect
	StateSwapAnim
	StateFallAnim
	StateMatchAnim
	StateMoveOver
	StateLevelWin
	StateLevelLost
	StateLevelUnloading

	stateCount
)

var stateNames = [stateCount]string{
	"intro", "press-start", "mode-select", "stage-select", "level-loading",
	"cursor-select", "swap-anim", "fall-anim", "match-anim", "move-over",
	"level-win", "level-lost", "level-unloading",
}

func (s State) String() string {
	if s >= stateCount {
		return fmt.Sprintf("State(%d)", uint8(s))
	}
	return stateNames[s]
}

// Machine is a frame-counting state machine. Transition only records the
// target; the switch happens on the next Update, which runs the old state's
// handler once more with Leaving set and then the new state's handler with
// Entering set, in the same frame.
type Machine struct {
	state    State
	next     State
	pending  bool
	frame    int
	entering bool
	leaving  bool
}

// NewMachine creates a machine in state initial. The first Update runs
// initial with Entering set.
func NewMachine(initial State) *Machine {
	return &Machine{state: initial, entering: true}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Frame returns the number of completed updates in the current state.
func (m *Machine) Frame() int { return m.frame }

// Entering reports whether this is the first update of the current state.
func (m *Machine) Entering() bool { return m.entering }

// Leaving reports whether this is the final update of the current state.
func (m *Machine) Leaving() bool { return m.leaving }

// Pending reports whether a transition is waiting for the next Update.
func (m *Machine) Pending() bool { return m.pending }

// Transition requests a switch to s. A later request in the same frame
// replaces an earlier one. Transitioning to the current state re-enters it.
func (m *Machine) Transition(s State) {
	m.next = s
	m.pending = true
}

// Update runs one frame, calling handle for the old state (leaving) and the
// current state as described on Machine.
func (m *Machine) Update(handle func(State)) {
	if m.pending {
		m.pending = false
		m.leaving = true
		handle(m.state)
		m.leaving = false
		m.state = m.next
		m.frame = 0
		m.entering = true
	}
	handle(m.state)
	m.entering = false
	m.frame++
}
