package route

import "strconv"

// Pair identifies a directed (source, target) pair.
type Pair struct {
	Source string
	Target string
}

// Lane is an edge's slot within its parallel group.
type Lane struct {
	Index int
	Count int
}

// AssignLanes numbers edges sharing a (source, target) pair in first-seen
// order. The result is parallel to pairs.
func AssignLanes(pairs []Pair) []Lane {
	counts := make(map[Pair]int, len(pairs))
	out := make([]Lane, len(pairs))
	for i, p := range pairs {
		out[i].Index = counts[p]
		counts[p]++
	}
	for i, p := range pairs {
		out[i].Count = counts[p]
	}
	return out
}

func appendFloat(buf []byte, v float64) []byte {
	return strconv.AppendFloat(buf, v, 'f', 2, 64)
}
