package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/pagecraft/internal/clipboard"
	"github.com/dshills/pagecraft/internal/config"
	"github.com/dshills/pagecraft/internal/event"
	"github.com/dshills/pagecraft/internal/selection"
	"github.com/dshills/pagecraft/internal/tree"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithRoot sets the initial document tree. It is validated by New.
func WithRoot(root *tree.Node) Option {
	return func(e *Editor) {
		e.initRoot = root
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithHistoryCapacity sets the maximum number of undo entries.
func WithHistoryCapacity(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.capacity = n
		}
	}
}

// WithNotifier publishes change events to n. The editor does not close a
// notifier it was given.
func WithNotifier(n *event.Notifier) Option {
	return func(e *Editor) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithStrategies sets the selection strategy registry.
func WithStrategies(r *selection.Registry) Option {
	return func(e *Editor) {
		if r != nil {
			e.strategies = r
		}
	}
}

// WithClipboard shares a clipboard store, allowing copy and paste between
// editors.
func WithClipboard(s *clipboard.Store) Option {
	return func(e *Editor) {
		e.clipboard = s
	}
}

// WithHandlers sets the clipboard handler registry.
func WithHandlers(r *clipboard.Registry) Option {
	return func(e *Editor) {
		e.handlers = r
	}
}

// WithIDGenerator sets the generator for new node ids.
func WithIDGenerator(gen tree.IDGenerator) Option {
	return func(e *Editor) {
		e.ids = gen
	}
}

// WithConfig applies history, selection and id settings from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(e *Editor) {
		if cfg == nil {
			return
		}
		if cfg.History.Capacity > 0 {
			e.capacity = cfg.History.Capacity
		}
		e.strategies = cfg.Selection.Registry()
		e.ids = cfg.IDs.IDGenerator()
	}
}
