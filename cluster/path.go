package cluster

import (
	"slices"
	"strconv"
	"strings"
)

// Path is the structural address of a parse position: one sibling index per
// open ancestor, counted in the order elements were seen at that level.
type Path []int

// Blur drops the last n elements. Paths shorter than n blur to the root.
func (p Path) Blur(n int) Path {
	if n < 0 {
		n = 0
	}
	if n >= len(p) {
		return Path{}
	}
	return slices.Clone(p[:len(p)-n])
}

// Equal reports whether p and q address the same position.
func (p Path) Equal(q Path) bool {
	return slices.Equal(p, q)
}

// Compare orders paths lexicographically; a prefix sorts first.
func (p Path) Compare(q Path) int {
	return slices.Compare(p, q)
}

// String renders the path as dot-separated indices, "" for the root.
func (p Path) String() string {
	var b strings.Builder
	for i, n := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// PathTracker maintains the current Path as tags open and close.
// The zero value is ready to use and sits at the root.
type PathTracker struct {
	path    Path
	sibling int
}

// Enter descends into a new element and returns a snapshot of the path.
func (t *PathTracker) Enter() Path {
	t.path = append(t.path, t.sibling)
	t.sibling = 0
	return t.Path()
}

// Exit leaves the current element and returns a snapshot of the path.
// Exiting at the root is tolerated: the path stays empty and the next
// element opened is counted as the second sibling.
func (t *PathTracker) Exit() Path {
	n := len(t.path)
	last := 0
	if n > 0 {
		last = t.path[n-1]
		t.path = t.path[:n-1]
	}
	t.sibling = last + 1
	return t.Path()
}

// Path returns a copy of the current path.
func (t *PathTracker) Path() Path {
	return slices.Clone(t.path)
}

// Depth returns the number of open elements.
func (t *PathTracker) Depth() int {
	return len(t.path)
}

// at reports whether the current path equals p without copying.
func (t *PathTracker) at(p Path) bool {
	return slices.Equal(t.path, p)
}
