// Inspects the structure of SVG documents: the canvas size,
// the rectangles drawn, the number of drawing elements and
// how much of the canvas is covered.
// Empty documents and rectangles outside of the canvas are reported
// as issues.
//
// Only the tree structure is analyzed: styles and transforms
// are not applied.
package svginspect

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/benoitkugler/svgaudit/svgtree"
)

// Result is the outcome of a successful inspection.
type Result struct {
	Canvas Canvas `json:"canvas" yaml:"canvas"`
	// Items lists the rectangles, in walk order.
	Items             []Rectangle `json:"items" yaml:"items"`
	TotalElementCount int         `json:"totalElementCount" yaml:"totalElementCount"`
	// CoverageRatio is a fraction, which may exceed 1
	// for overlapping or out of bounds rectangles.
	CoverageRatio float64     `json:"coverageRatio" yaml:"coverageRatio"`
	Issues        []IssueKind `json:"issues" yaml:"issues"`

	// DepthCapped is true if some elements were too deep to be visited.
	DepthCapped bool `json:"depthCapped,omitempty" yaml:"depthCapped,omitempty"`
}

// HasIssue returns true if `kind` has been detected.
func (r *Result) HasIssue(kind IssueKind) bool {
	for _, k := range r.Issues {
		if k == kind {
			return true
		}
	}
	return false
}

// detectIssues returns the issues, EMPTY first.
// Since an empty document has no rectangle, both
// issues never happen together.
func detectIssues(t tally) []IssueKind {
	issues := []IssueKind{}
	if t.count == 0 {
		issues = append(issues, Empty)
	}
	for _, item := range t.items {
		if item.Issue == OutOfBounds {
			issues = append(issues, OutOfBounds)
			break
		}
	}
	return issues
}

// coverage returns the total area of the rectangles divided by the canvas area,
// or 0 for a null (or negative) canvas.
func coverage(items []Rectangle, canvas Canvas) float64 {
	area := canvas.Area()
	if !(area > 0) {
		return 0
	}
	var total float64
	for _, item := range items {
		total += item.Area()
	}
	return finite(finite(total) / area)
}

// Options parametrize an Inspector.
// The zero value is valid.
type Options struct {
	// Builder is used to parse the markup; it defaults to svgtree.XML.
	Builder svgtree.Builder
	// MaxDepth is the maximum nesting level visited; it defaults to DefaultMaxDepth.
	MaxDepth int
	// Observer is notified during the walk; it defaults to NopObserver.
	Observer Observer
}

// Inspector runs inspections. It holds no state between calls
// and may be used concurrently.
type Inspector struct {
	builder  svgtree.Builder
	maxDepth int
	observer Observer
}

// New returns an inspector, filling unset options with their defaults.
func New(opts Options) *Inspector {
	in := &Inspector{builder: opts.Builder, maxDepth: opts.MaxDepth, observer: opts.Observer}
	if in.builder == nil {
		in.builder = svgtree.XML{}
	}
	if in.maxDepth <= 0 {
		in.maxDepth = DefaultMaxDepth
	}
	if in.observer == nil {
		in.observer = NopObserver{}
	}
	return in
}

var defaultInspector = New(Options{})

// Inspect analyzes an already built tree with the default options.
func Inspect(root *svgtree.Node) (*Result, error) { return defaultInspector.Inspect(root) }

// ReadFile loads and analyzes the named file with the default options.
func ReadFile(ctx context.Context, name string) (*Result, error) {
	return defaultInspector.InspectFile(ctx, name)
}

// Inspect analyzes the tree whose root is `root`, which must be an <svg> element.
func (in *Inspector) Inspect(root *svgtree.Node) (*Result, error) {
	return in.inspect(root, "")
}

func (in *Inspector) inspect(root *svgtree.Node, source string) (res *Result, err error) {
	if root == nil {
		return nil, newError(MalformedDocument, source, errors.New("missing root element"))
	}
	if root.Tag != "svg" {
		return nil, newError(MalformedDocument, source, errors.New("root element is <"+root.Tag+">, not <svg>"))
	}
	defer func() {
		if v := recover(); v != nil {
			res, err = nil, newError(ExtractionFailure, source, panicError(v))
		}
	}()

	canvas := ResolveCanvas(root.Attrs)
	t := newWalker(canvas, in.maxDepth, in.observer).walk(root, 0)
	items := t.items
	if items == nil {
		items = []Rectangle{}
	}
	return &Result{
		Canvas:            canvas,
		Items:             items,
		TotalElementCount: t.count,
		CoverageRatio:     coverage(items, canvas),
		Issues:            detectIssues(t),
		DepthCapped:       t.depthCapped,
	}, nil
}

// InspectReader reads the whole `stream`, builds the tree and analyzes it.
// `source` is only used in error messages.
// `ctx` is checked before the analysis starts, not during it.
func (in *Inspector) InspectReader(ctx context.Context, stream io.Reader, source string) (*Result, error) {
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, newError(SourceUnavailable, source, err)
	}
	return in.inspectBytes(ctx, data, source)
}

// InspectBytes builds the tree from `data` and analyzes it.
func (in *Inspector) InspectBytes(ctx context.Context, data []byte) (*Result, error) {
	return in.inspectBytes(ctx, data, "")
}

// InspectFile loads the named file, builds the tree and analyzes it.
func (in *Inspector) InspectFile(ctx context.Context, name string) (*Result, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, newError(SourceUnavailable, name, err)
	}
	return in.inspectBytes(ctx, data, name)
}

// InspectFS is the same as InspectFile, for a file of `fsys`.
func (in *Inspector) InspectFS(ctx context.Context, fsys fs.FS, name string) (*Result, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, newError(SourceUnavailable, name, err)
	}
	return in.inspectBytes(ctx, data, name)
}

func (in *Inspector) inspectBytes(ctx context.Context, data []byte, source string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := in.builder.Build(bytes.NewReader(data))
	if err != nil {
		return nil, newError(MalformedDocument, source, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return in.inspect(root, source)
}
