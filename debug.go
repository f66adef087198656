package bramble

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	tickTime   time.Duration
	drawTime   time.Duration
	tickers    int
	groups     int
	primitives int
}

// debugLog prints timing and draw stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[bramble] tick: %v | draw: %v | tickers: %d | groups: %d | primitives: %d\n",
		stats.tickTime, stats.drawTime, stats.tickers, stats.groups, stats.primitives)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[bramble] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more children than the
// threshold.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[bramble] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countDrawables walks a group tree and counts visible groups and primitives.
func countDrawables(g *Group) (groups, prims int) {
	if g == nil || g.Hidden {
		return 0, 0
	}
	groups, prims = 1, len(g.prims)
	for _, c := range g.groups {
		cg, cp := countDrawables(c)
		groups += cg
		prims += cp
	}
	return groups, prims
}
