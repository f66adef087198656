package bramble

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDestroyedNodePanicMessage(t *testing.T) {
	s := NewScene()
	parent := s.NewEmpty("parent")
	child := s.NewEmpty("child")
	child.Destroy()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with destroyed node, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "destroyed") {
			t.Errorf("panic message should mention 'destroyed', got: %s", msg)
		}
	}()
	parent.AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)

	output := captureStderr(t, func() {
		current := s.NewEmpty("root")
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := s.NewEmpty(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})
	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)

	output := captureStderr(t, func() {
		parent := s.NewEmpty("many_children")
		for i := 0; i < debugMaxChildCount+1; i++ {
			parent.AddChild(s.NewEmpty(fmt.Sprintf("c_%d", i)))
		}
	})
	if !strings.Contains(output, "warning: node") || !strings.Contains(output, "children") {
		t.Errorf("expected child count warning in stderr, got: %q", output)
	}
}

func TestDebugMode_OffIsQuiet(t *testing.T) {
	s := NewScene()
	output := captureStderr(t, func() {
		current := s.NewEmpty("root")
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := s.NewEmpty(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
		s.debugLog(debugStats{})
	})
	if output != "" {
		t.Errorf("debug off should print nothing, got: %q", output)
	}
}

func TestDebugLogFormat(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	output := captureStderr(t, func() {
		s.debugLog(debugStats{tickers: 3, groups: 2, primitives: 5})
	})
	for _, want := range []string{"[bramble]", "tickers: 3", "groups: 2", "primitives: 5"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}

func TestCountDrawables(t *testing.T) {
	s := NewScene()
	a := s.NewRectangle("a", 2, 2, ColorRed, false)
	b := s.NewRectangle("b", 2, 2, ColorRed, false)
	hidden := s.NewRectangle("hidden", 2, 2, ColorRed, false)
	a.AddChild(b)
	hidden.SetOpacity(0)

	groups, prims := countDrawables(s.Root())
	// root, layer 0, a, b
	if groups != 4 || prims != 2 {
		t.Errorf("countDrawables = (%d, %d), want (4, 2)", groups, prims)
	}
}
