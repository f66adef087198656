package puzzle

// EventKind identifies what happened in an Event.
type EventKind uint8

const (
	EventStateChanged EventKind = iota
	EventLevelLoaded
	EventSwap
	EventMatch
	EventPop
	EventLevelWin
	EventLevelLost
	EventStageCleared
	EventModeUnlocked
	EventError
)

var eventNames = [...]string{
	"state-changed", "level-loaded", "swap", "match", "pop",
	"level-win", "level-lost", "stage-cleared", "mode-unlocked", "error",
}

func (k EventKind) String() string {
	if int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is a notification published by the game to its EventSink.
type Event struct {
	Kind  EventKind
	State State  // new state for EventStateChanged
	Stage string // stage id, when a level is involved
	Level int    // level index, when a level is involved
	Count int    // matched blocks, pop level or moves left, by kind
	Msg   string // error text for EventError
}

// EventSink receives game events. Publish is called synchronously from the
// game tick.
type EventSink interface {
	Publish(ev Event)
}

// EventFunc adapts a function to EventSink.
type EventFunc func(ev Event)

// Publish calls f(ev).
func (f EventFunc) Publish(ev Event) { f(ev) }

// Effect names a sound cue.
type Effect uint8

const (
	EffectMove Effect = iota
	EffectSelect
	EffectCancel
	EffectSwap
	EffectPop
	EffectWin
	EffectLose
)

// PopLevels is the number of escalating pop cues.
const PopLevels = 6

// AudioPlayer plays sound cues. level selects the pitch step of EffectPop
// and is 0 for every other effect.
type AudioPlayer interface {
	PlayEffect(e Effect, level int)
}
