package svginspect

import (
	"context"
	"log/slog"
)

// EventKind identifies what happened during a walk.
type EventKind uint8

const (
	// ElementsFound is sent for each element having drawing children.
	ElementsFound EventKind = iota
	// RectanglesFound is sent for each element having <rect> children.
	RectanglesFound
	// DepthCapped is sent when an element is too deep to be visited.
	DepthCapped
	// CycleSkipped is sent when an element is reached a second time.
	CycleSkipped
)

func (k EventKind) String() string {
	switch k {
	case ElementsFound:
		return "elements found"
	case RectanglesFound:
		return "rectangles found"
	case DepthCapped:
		return "depth capped"
	case CycleSkipped:
		return "cycle skipped"
	default:
		return "<unknown EventKind>"
	}
}

// Event is reported to an Observer during a walk.
type Event struct {
	Kind  EventKind
	Tag   string // tag of the element being visited
	Depth int
	Count int // number of elements, for ElementsFound and RectanglesFound
}

// Observer is notified of the progress of a walk.
// It is called synchronously, from the goroutine running the inspection.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Observe(Event) {}

// LogObserver writes the events to a structured logger.
// Progress events are logged at Debug level, capped or
// skipped visits at Warn level.
type LogObserver struct {
	Logger *slog.Logger // if nil, slog.Default() is used
}

func (o LogObserver) Observe(e Event) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelDebug
	if e.Kind == DepthCapped || e.Kind == CycleSkipped {
		level = slog.LevelWarn
	}
	logger.LogAttrs(context.Background(), level, "svginspect: "+e.Kind.String(),
		slog.String("tag", e.Tag),
		slog.Int("depth", e.Depth),
		slog.Int("count", e.Count),
	)
}
