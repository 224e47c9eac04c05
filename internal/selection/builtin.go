package selection

// Built-in content kinds. They match tree.Node.ContentKind.
const (
	KindText            = "text"
	KindMedia           = "media"
	KindFormControl     = "form-control"
	KindElement         = "element"
	KindSection         = "section"
	KindRepeatItem      = "repeat-item"
	KindRepeatContainer = "repeat-container"
	KindDataBound       = "data-bound"
)

// Priorities tunes the built-in strategies.
type Priorities struct {
	// Base holds the base priority per kind.
	Base map[string]int

	// DirectBonus is added to the direct hit.
	DirectBonus int

	// ContainerSelectionPenalty is added to containers that hold the
	// current selection. It should be zero or negative.
	ContainerSelectionPenalty int

	// EmptySpaceBonus is added to containers clicked on their own area.
	EmptySpaceBonus int

	// Disabled lists kinds that are never selectable.
	Disabled []string
}

// DefaultPriorities returns the stock tuning.
func DefaultPriorities() Priorities {
	return Priorities{
		Base: map[string]int{
			KindText:            100,
			KindFormControl:     80,
			KindMedia:           60,
			KindDataBound:       40,
			KindRepeatItem:      30,
			KindRepeatContainer: 20,
			KindSection:         15,
			KindElement:         10,
		},
		DirectBonus:               50,
		ContainerSelectionPenalty: -25,
		EmptySpaceBonus:           200,
	}
}

// DefaultStrategies builds the built-in strategies from p. Kinds missing
// from p.Base get a base priority of zero.
func DefaultStrategies(p Priorities) []Strategy {
	disabled := make(map[string]bool, len(p.Disabled))
	for _, k := range p.Disabled {
		disabled[k] = true
	}

	leaf := func(kind string, mode ModeFunc) *Rule {
		return &Rule{
			Name:        kind,
			Base:        p.Base[kind],
			DirectBonus: p.DirectBonus,
			Disabled:    disabled[kind],
			Mode:        mode,
		}
	}
	container := func(kind string) *Rule {
		return &Rule{
			Name:              kind,
			Base:              p.Base[kind],
			DirectBonus:       p.DirectBonus,
			ContainsSelection: p.ContainerSelectionPenalty,
			Disabled:          disabled[kind],
			Score:             EmptySpace(p.EmptySpaceBonus),
			Tie:               Innermost,
			Mode:              AlwaysBlock,
		}
	}

	return []Strategy{
		leaf(KindText, AlwaysText),
		leaf(KindMedia, AlwaysBlock),
		leaf(KindFormControl, TextWhileEditing),
		leaf(KindDataBound, AlwaysBlock),
		container(KindRepeatItem),
		container(KindRepeatContainer),
		container(KindSection),
		container(KindElement),
	}
}

// DefaultRegistry returns a registry with the built-in strategies and
// default priorities.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultStrategies(DefaultPriorities())...)
}
