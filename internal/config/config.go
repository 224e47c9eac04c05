// Package config loads editor settings.
//
// Settings are layered: built-in defaults, then an optional TOML file, then
// PAGECRAFT_ environment variables. The result is validated before use.
//
// Example file:
//
//	[history]
//	capacity = 100
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[selection]
//	direct_bonus = 50
//	disabled = ["data-bound"]
//
//	[selection.priorities]
//	text = 120
package config

import (
	"maps"

	"github.com/dshills/pagecraft/internal/engine/history"
	"github.com/dshills/pagecraft/internal/logging"
	"github.com/dshills/pagecraft/internal/selection"
	"github.com/dshills/pagecraft/internal/tree"
)

// ID generator names.
const (
	GeneratorUUID     = "uuid"
	GeneratorSequence = "sequence"
)

// Config is the complete editor configuration.
type Config struct {
	History   HistoryConfig   `toml:"history"`
	Log       logging.Config  `toml:"log"`
	Selection SelectionConfig `toml:"selection"`
	IDs       IDConfig        `toml:"ids"`
}

// HistoryConfig configures the undo stack.
type HistoryConfig struct {
	// Capacity is the maximum number of undo entries. Zero means the
	// default.
	Capacity int `toml:"capacity" validate:"gte=0"`
}

// SelectionConfig tunes the click resolver.
type SelectionConfig struct {
	// Priorities overrides base priorities per content kind.
	Priorities map[string]int `toml:"priorities" validate:"dive,keys,selection_kind,endkeys"`

	DirectBonus               int `toml:"direct_bonus" validate:"gte=0"`
	ContainerSelectionPenalty int `toml:"container_selection_penalty" validate:"lte=0"`
	EmptySpaceBonus           int `toml:"empty_space_bonus" validate:"gte=0"`

	// Disabled lists kinds that are never selectable.
	Disabled []string `toml:"disabled" validate:"dive,selection_kind"`
}

// IDConfig selects how new node ids are generated.
type IDConfig struct {
	Generator string `toml:"generator" validate:"omitempty,oneof=uuid sequence"`

	// Prefix is used by the sequence generator.
	Prefix string `toml:"prefix" validate:"required_if=Generator sequence"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := selection.DefaultPriorities()
	return &Config{
		History: HistoryConfig{Capacity: history.DefaultCapacity},
		Log:     logging.DefaultConfig(),
		Selection: SelectionConfig{
			Priorities:                maps.Clone(p.Base),
			DirectBonus:               p.DirectBonus,
			ContainerSelectionPenalty: p.ContainerSelectionPenalty,
			EmptySpaceBonus:           p.EmptySpaceBonus,
		},
		IDs: IDConfig{Generator: GeneratorUUID},
	}
}

// Tuning converts the settings into resolver priorities. Kinds without an
// override keep their default base priority.
func (s SelectionConfig) Tuning() selection.Priorities {
	p := selection.DefaultPriorities()
	maps.Copy(p.Base, s.Priorities)
	p.DirectBonus = s.DirectBonus
	p.ContainerSelectionPenalty = s.ContainerSelectionPenalty
	p.EmptySpaceBonus = s.EmptySpaceBonus
	p.Disabled = append([]string(nil), s.Disabled...)
	return p
}

// Registry builds a strategy registry from the settings.
func (s SelectionConfig) Registry() *selection.Registry {
	return selection.NewRegistry(selection.DefaultStrategies(s.Tuning())...)
}

// IDGenerator returns the configured id generator.
func (c IDConfig) IDGenerator() tree.IDGenerator {
	if c.Generator == GeneratorSequence {
		return tree.SequenceGenerator(c.Prefix)
	}
	return tree.UUIDGenerator()
}
