package svginspect

import "github.com/benoitkugler/svgaudit/svgtree"

// DefaultMaxDepth is the default nesting limit of the walk.
const DefaultMaxDepth = 100

// primitiveTags are the drawing elements taken into account
// by the element count.
var primitiveTags = [...]string{
	"rect", "path", "circle", "ellipse", "polygon",
	"polyline", "line", "text", "use", "image",
}

// tally accumulates the result of walking a sub-tree.
type tally struct {
	count       int
	items       []Rectangle
	depthCapped bool
	cycles      int
}

func (t *tally) merge(other tally) {
	t.count += other.count
	t.items = append(t.items, other.items...)
	t.depthCapped = t.depthCapped || other.depthCapped
	t.cycles += other.cycles
}

// walker holds the state shared by one walk.
type walker struct {
	canvas   Canvas
	maxDepth int
	observer Observer
	visited  map[*svgtree.Node]bool
}

func newWalker(canvas Canvas, maxDepth int, observer Observer) *walker {
	return &walker{
		canvas:   canvas,
		maxDepth: maxDepth,
		observer: observer,
		visited:  make(map[*svgtree.Node]bool),
	}
}

// walk visits `n` and its groups and nested documents,
// `depth` being the nesting level of `n` (0 for the root).
// A nested <svg> is only visited below the root, so that a
// builder repeating the root as its own child is harmless.
func (w *walker) walk(n *svgtree.Node, depth int) (t tally) {
	if depth > w.maxDepth {
		w.observer.Observe(Event{Kind: DepthCapped, Tag: n.Tag, Depth: depth})
		t.depthCapped = true
		return t
	}
	if w.visited[n] {
		w.observer.Observe(Event{Kind: CycleSkipped, Tag: n.Tag, Depth: depth})
		t.cycles++
		return t
	}
	w.visited[n] = true

	for _, tag := range primitiveTags {
		t.count += len(n.ChildrenOf(tag))
	}
	if t.count != 0 {
		w.observer.Observe(Event{Kind: ElementsFound, Tag: n.Tag, Depth: depth, Count: t.count})
	}

	if rects := n.ChildrenOf("rect"); len(rects) != 0 {
		t.items = make([]Rectangle, 0, len(rects))
		for _, rect := range rects {
			t.items = append(t.items, extractRect(rect, w.canvas))
		}
		w.observer.Observe(Event{Kind: RectanglesFound, Tag: n.Tag, Depth: depth, Count: len(rects)})
	}

	for _, g := range n.ChildrenOf("g") {
		t.merge(w.walk(g, depth+1))
	}
	if depth > 0 {
		for _, svg := range n.ChildrenOf("svg") {
			t.merge(w.walk(svg, depth+1))
		}
	}
	return t
}
