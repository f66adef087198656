// Package ecs bridges bramble puzzle events into a [Donburi] world.
//
// [NewDonburiSink] implements puzzle.EventSink by publishing every event to
// [PuzzleEventType]. Events are queued and delivered when ProcessEvents runs,
// typically once per frame after the game tick:
//
//	sink := ecs.NewDonburiSink(donburi.NewWorld())
//	sink.Subscribe(func(ev puzzle.Event) { log.Println(ev.Kind) }, puzzle.EventLevelWin)
//	game := puzzle.NewGame(puzzle.Config{Scene: scene, Events: sink})
//	rt.AddLogic(game)
//	rt.AddLogic(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
