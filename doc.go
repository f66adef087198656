// Package bramble is a frame-driven runtime for 128x128 handheld games built
// on [Ebitengine].
//
// Bramble provides a retained-mode scene graph of sprites, rectangles and
// text grids drawn in 128 depth layers, a tween scheduler, button input from
// serial terminals, keyboards and gamepads, a four-voice audio mixer, and a
// JSON save store.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := bramble.NewScene()
//	rt := bramble.NewRuntime(bramble.RuntimeConfig{
//		Scene: scene,
//		Input: bramble.NewInput(bramble.NewEbitenKeys(), bramble.NewEbitenGamepad()),
//	})
//	// ... add nodes ...
//	bramble.Run(rt, bramble.RunConfig{Title: "My Game"})
//
// Headless loops call [Runtime.Tick] directly, typically with a
// [PacedDisplay] and [SerialKeys] on stdin:
//
//	for {
//		if _, err := rt.Tick(); err != nil {
//			return err // bramble.ErrReset on Home
//		}
//	}
//
// # Frame order
//
// Every [Runtime.Tick] refreshes the display, polls input, samples the clock
// and then ticks every registered node, tween and delay in registration
// order, followed by tickers added with [Runtime.AddLogic]. Pressing Home
// ends the loop with [ErrReset].
//
// # Scene graph
//
// Every element is a [Node] created through the [Scene]. Logical parents
// and drawable containment are kept in step: a visual child draws inside
// its visual parent's [Group], and any other visual node draws in its own
// layer.
//
//	box := scene.NewRectangle("box", 16, 16, bramble.ColorRed, false)
//	box.SetXY(64, 64)
//	box.SetLayer(3)
//
//	label := scene.NewText("label", font, 10, 1)
//	label.SetText("HELLO")
//	box.AddChild(label)
//
// Nodes are released with [Scene.Destroy], which refuses nodes that still
// have children, or [Scene.DestroyAll], which releases a whole subtree.
//
// # Tweens
//
// Tweens interpolate one or two values with easing curves from [gween]:
//
//	scene.TweenPosition(box, bramble.Vec2{X: 64, Y: 100}, 300, bramble.EaseBounceOut)
//
// Events from the puzzle package can be bridged into a [Donburi] world with
// bramble/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package bramble
