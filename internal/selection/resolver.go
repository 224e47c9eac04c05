package selection

import "sort"

// Input is one hit-test request.
type Input struct {
	Point Point

	// Surfaces are the rendered regions under Point, topmost first.
	Surfaces []Surface

	// Selection is the selection before the click.
	Selection State

	// Editing is true while a typing session is active.
	Editing bool
}

// Resolver picks the node a click is meant to select.
//
// Resolution is deterministic: the same input, strategies and hierarchy
// always produce the same candidate order.
type Resolver struct {
	strategies *Registry
	hierarchy  Hierarchy
}

// NewResolver creates a resolver. A nil registry uses DefaultRegistry.
// The hierarchy may be nil, in which case containment is inferred from
// stacking order.
func NewResolver(strategies *Registry, hierarchy Hierarchy) *Resolver {
	if strategies == nil {
		strategies = DefaultRegistry()
	}
	return &Resolver{strategies: strategies, hierarchy: hierarchy}
}

// Strategies returns the resolver's strategy registry.
func (r *Resolver) Strategies() *Registry {
	return r.strategies
}

// SetHierarchy replaces the containment oracle.
func (r *Resolver) SetHierarchy(h Hierarchy) {
	r.hierarchy = h
}

// Candidates evaluates every surface and returns the candidates sorted
// best first.
func (r *Resolver) Candidates(in Input) []Candidate {
	ctx := Context{
		Point:     in.Point,
		Surfaces:  in.Surfaces,
		Selection: in.Selection,
		Editing:   in.Editing,
		Hierarchy: r.hierarchy,
	}

	var out []Candidate
	for i, s := range in.Surfaces {
		strat, ok := r.strategies.Get(s.Kind)
		if !ok {
			continue
		}
		ctx.Index = i
		if c, ok := strat.Evaluate(s, ctx); ok {
			c.Index = i
			out = append(out, c)
		}
	}

	ctx.Index = 0
	sort.SliceStable(out, func(i, j int) bool {
		return r.less(out[i], out[j], ctx)
	})
	return out
}

func (r *Resolver) less(a, b Candidate, ctx Context) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if c := r.tie(a, b, ctx); c != 0 {
		return c < 0
	}
	return a.Index < b.Index
}

func (r *Resolver) tie(a, b Candidate, ctx Context) int {
	if sa, ok := r.strategies.Get(a.Kind); ok {
		if c := sa.Compare(a, b, ctx); c != 0 {
			return c
		}
	}
	if sb, ok := r.strategies.Get(b.Kind); ok {
		return -sb.Compare(b, a, ctx)
	}
	return 0
}

// Resolve returns the winning candidate. The second result is false when
// no surface produced a candidate, meaning the selection should be cleared.
func (r *Resolver) Resolve(in Input) (Candidate, bool) {
	cands := r.Candidates(in)
	if len(cands) == 0 {
		return Candidate{}, false
	}
	return cands[0], true
}

// Apply resolves the click and returns the new selection state.
func (r *Resolver) Apply(in Input) State {
	if c, ok := r.Resolve(in); ok {
		return c.State()
	}
	return None()
}
