package selection

// Point is a position in the renderer's coordinate space.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsZero reports whether the rectangle has no area information.
func (r Rect) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Inset shrinks the rectangle by the insets. Negative sizes clamp to zero.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Left - in.Right,
		Height: r.Height - in.Top - in.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Insets are distances from each edge of a rectangle.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// IsZero reports whether all insets are zero.
func (in Insets) IsZero() bool {
	return in == Insets{}
}

// Surface is one rendered region under the pointer, as reported by the
// renderer. Surfaces are supplied topmost first.
type Surface struct {
	// NodeID is the document node that owns the surface.
	NodeID string

	// Kind is the owning node's content kind; it selects the strategy.
	Kind string

	// Bounds is the surface's border box. Optional.
	Bounds Rect

	// Padding is the padding band inside Bounds. Optional.
	Padding Insets

	// Overlay marks transparent chrome (hover outlines, drag handles)
	// that does not block a direct click on what lies beneath it.
	Overlay bool
}

// InPadding reports whether p lies in the surface's padding band: inside
// Bounds but outside the content box.
func (s Surface) InPadding(p Point) bool {
	if s.Bounds.IsZero() || s.Padding.IsZero() {
		return false
	}
	return s.Bounds.Contains(p) && !s.Bounds.Inset(s.Padding).Contains(p)
}

// Hierarchy answers containment questions about document nodes.
type Hierarchy interface {
	// IsAncestor reports whether ancestorID strictly contains id.
	IsAncestor(ancestorID, id string) bool
}

// HierarchyFunc adapts a function to the Hierarchy interface.
type HierarchyFunc func(ancestorID, id string) bool

// IsAncestor calls f.
func (f HierarchyFunc) IsAncestor(ancestorID, id string) bool {
	return f(ancestorID, id)
}
