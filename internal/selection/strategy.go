package selection

// Context is what a strategy sees while evaluating one surface.
type Context struct {
	Point     Point
	Surfaces  []Surface
	Index     int
	Selection State
	Editing   bool
	Hierarchy Hierarchy
}

// Surface returns the surface being evaluated.
func (c Context) Surface() Surface {
	return c.Surfaces[c.Index]
}

// IsDirect reports whether the evaluated surface is the topmost hit, or
// only overlay surfaces lie above it.
func (c Context) IsDirect() bool {
	for _, s := range c.Surfaces[:c.Index] {
		if !s.Overlay {
			return false
		}
	}
	return true
}

// ContainsSelection reports whether the evaluated node strictly contains
// the currently selected node. It is false without a Hierarchy.
func (c Context) ContainsSelection() bool {
	if c.Hierarchy == nil || c.Selection.IsNone() {
		return false
	}
	return c.Hierarchy.IsAncestor(c.Surface().NodeID, c.Selection.NodeID)
}

// HasDescendantAbove reports whether any non-overlay surface above the
// evaluated one belongs to a descendant of its node. Without a Hierarchy
// every non-overlay surface above is assumed to be a descendant, which
// matches how renderers usually stack nested content.
func (c Context) HasDescendantAbove() bool {
	self := c.Surface().NodeID
	for _, s := range c.Surfaces[:c.Index] {
		if s.Overlay || s.NodeID == self {
			continue
		}
		if c.Hierarchy == nil || c.Hierarchy.IsAncestor(self, s.NodeID) {
			return true
		}
	}
	return false
}

// InPadding reports whether the point is in the evaluated surface's
// padding band.
func (c Context) InPadding() bool {
	return c.Surface().InPadding(c.Point)
}

// Candidate is a scored hit-test result.
type Candidate struct {
	Surface  Surface
	NodeID   string
	Kind     string
	Priority int
	Mode     Mode

	// Index is the surface's position in the input stack.
	Index int
}

// State returns the selection the candidate resolves to.
func (c Candidate) State() State {
	return State{Mode: c.Mode, NodeID: c.NodeID}
}

// Strategy scores surfaces of one content kind.
type Strategy interface {
	// Kind returns the content kind the strategy handles.
	Kind() string

	// Evaluate scores the surface at ctx.Index. Returning false declines.
	Evaluate(s Surface, ctx Context) (Candidate, bool)

	// Compare breaks priority ties between a and b. Negative puts a
	// first, positive puts b first, zero has no preference.
	Compare(a, b Candidate, ctx Context) int
}

// ModeFunc decides the edit mode of a candidate.
type ModeFunc func(ctx Context) Mode

// AlwaysText resolves to text mode.
func AlwaysText(Context) Mode { return ModeText }

// AlwaysBlock resolves to block mode.
func AlwaysBlock(Context) Mode { return ModeBlock }

// TextWhileEditing resolves to text mode during an edit session and to
// block mode otherwise.
func TextWhileEditing(ctx Context) Mode {
	if ctx.Editing {
		return ModeText
	}
	return ModeBlock
}

// Rule is a declarative Strategy: a base priority plus modifiers.
type Rule struct {
	Name string

	// Base is the kind's base priority.
	Base int

	// DirectBonus is added when the surface is the direct hit.
	DirectBonus int

	// ContainsSelection is added when the node strictly contains the
	// current selection. Containers use a negative value so a click does
	// not re-select an ancestor of the selection.
	ContainsSelection int

	// Disabled makes the strategy decline every surface.
	Disabled bool

	// Score adds a kind-specific amount. Optional.
	Score func(s Surface, ctx Context) int

	// Tie breaks equal priorities. Optional.
	Tie func(a, b Candidate, ctx Context) int

	// Mode decides the edit mode. Nil means block.
	Mode ModeFunc
}

// Kind returns the rule's kind.
func (r *Rule) Kind() string {
	return r.Name
}

// Evaluate computes the candidate priority.
func (r *Rule) Evaluate(s Surface, ctx Context) (Candidate, bool) {
	if r.Disabled || s.NodeID == "" {
		return Candidate{}, false
	}
	p := r.Base
	if ctx.IsDirect() {
		p += r.DirectBonus
	}
	if r.ContainsSelection != 0 && ctx.ContainsSelection() {
		p += r.ContainsSelection
	}
	if r.Score != nil {
		p += r.Score(s, ctx)
	}
	mode := ModeBlock
	if r.Mode != nil {
		mode = r.Mode(ctx)
	}
	return Candidate{
		Surface:  s,
		NodeID:   s.NodeID,
		Kind:     r.Name,
		Priority: p,
		Mode:     mode,
		Index:    ctx.Index,
	}, true
}

// Compare applies the rule's tie breaker.
func (r *Rule) Compare(a, b Candidate, ctx Context) int {
	if r.Tie == nil {
		return 0
	}
	return r.Tie(a, b, ctx)
}

// EmptySpace returns a Score that adds bonus when the click lands on the
// container itself rather than on any descendant: no descendant surface
// lies above it, or the point is in its padding band.
func EmptySpace(bonus int) func(Surface, Context) int {
	return func(_ Surface, ctx Context) int {
		if !ctx.HasDescendantAbove() || ctx.InPadding() {
			return bonus
		}
		return 0
	}
}

// Innermost is a tie breaker that prefers the candidate whose node does
// not contain the other.
func Innermost(a, b Candidate, ctx Context) int {
	if ctx.Hierarchy == nil {
		return 0
	}
	switch {
	case ctx.Hierarchy.IsAncestor(a.NodeID, b.NodeID):
		return 1
	case ctx.Hierarchy.IsAncestor(b.NodeID, a.NodeID):
		return -1
	}
	return 0
}
