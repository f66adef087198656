package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/bramble/puzzle"
)

// PuzzleEventType is the Donburi event type carrying puzzle events.
// Subscribe to it in ECS systems to react to matches, clears and unlocks.
var PuzzleEventType = events.NewEventType[puzzle.Event]()

// DonburiSink publishes puzzle events into a Donburi world. Events are
// queued until ProcessEvents runs.
type DonburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by world.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world}
}

// World returns the backing world.
func (s *DonburiSink) World() donburi.World { return s.world }

// Publish queues ev on PuzzleEventType.
func (s *DonburiSink) Publish(ev puzzle.Event) {
	PuzzleEventType.Publish(s.world, ev)
}

// Subscribe registers fn for puzzle events of the given kinds, or all
// events when no kinds are given.
func (s *DonburiSink) Subscribe(fn func(puzzle.Event), kinds ...puzzle.EventKind) {
	PuzzleEventType.Subscribe(s.world, func(_ donburi.World, ev puzzle.Event) {
		if len(kinds) == 0 {
			fn(ev)
			return
		}
		for _, k := range kinds {
			if ev.Kind == k {
				fn(ev)
				return
			}
		}
	})
}

// ProcessEvents delivers queued events to subscribers. Call it once per
// frame after the game has ticked.
func (s *DonburiSink) ProcessEvents() {
	PuzzleEventType.ProcessEvents(s.world)
}

// Tick calls ProcessEvents, so the sink can be added to a runtime as a logic
// ticker after the game.
func (s *DonburiSink) Tick(float64) {
	s.ProcessEvents()
}
