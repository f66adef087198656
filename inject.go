package bramble

// Inject queues one frame in which the given buttons are held. Injected
// frames are consumed one per Poll, in order, and behave like key presses:
// a button injected in consecutive frames stays pressed without a new edge.
// Inject with no buttons queues an idle frame.
func (in *Input) Inject(buttons ...Button) {
	var set ButtonSet
	for _, b := range buttons {
		set = set.With(b)
	}
	in.injectQueue = append(in.injectQueue, set)
}

// InjectHold queues frames frames with the given buttons held. Minimum
// frames is 1.
func (in *Input) InjectHold(frames int, buttons ...Button) {
	if frames < 1 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		in.Inject(buttons...)
	}
}

// InjectTap queues a press frame followed by an idle frame so the button
// sees both edges. Consumes two frames.
func (in *Input) InjectTap(b Button) {
	in.Inject(b)
	in.Inject()
}

// InjectPending returns the number of queued injected frames.
func (in *Input) InjectPending() int {
	return len(in.injectQueue)
}

// processInjected pops one frame from the inject queue.
func (in *Input) processInjected() {
	in.injectedPrev = in.injectedCurr
	in.injectedCurr = 0
	if len(in.injectQueue) == 0 {
		return
	}
	in.injectedCurr = in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
}
