package transform

import "github.com/matzehuels/nestview/pkg/dag"

// BreakCycles removes the back edges of a depth-first search so the graph
// becomes acyclic, and returns how many edges it removed.
//
// The search starts from sources in insertion order and then from any node
// not yet reached, so the same graph always loses the same edges. A cyclic
// relationship such as a rework loop keeps its forward direction and loses
// the edge that closes it. Self-loops are always removed, as is every
// parallel copy of a removed edge. The walk uses an explicit stack, so deep
// chains do not grow the goroutine stack.
func BreakCycles(g *dag.DAG) int {
	const (
		unseen = iota
		active
		done
	)
	type frame struct {
		id   string
		next int // index of the next child to visit
	}

	state := make(map[string]int, g.NodeCount())
	var back [][2]string

	walk := func(root string) {
		if state[root] != unseen {
			return
		}
		state[root] = active
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.Children(top.id)
			if top.next == len(children) {
				state[top.id] = done
				stack = stack[:len(stack)-1]
				continue
			}
			child := children[top.next]
			top.next++
			switch state[child] {
			case unseen:
				state[child] = active
				stack = append(stack, frame{id: child})
			case active:
				back = append(back, [2]string{top.id, child})
			}
		}
	}

	for _, n := range g.Sources() {
		walk(n.ID)
	}
	for _, n := range g.Nodes() {
		walk(n.ID)
	}

	for _, e := range back {
		g.RemoveEdge(e[0], e[1])
	}
	return len(back)
}
