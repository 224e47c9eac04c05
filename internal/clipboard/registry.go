package clipboard

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/pagecraft/internal/tree"
)

// Registry holds clipboard handlers in an explicit precedence order.
//
// Handlers are consulted newest registration first: FindHandler and the
// CanPaste fallback of Paste both return the most recently registered
// matching handler. Registering a kind that is already present replaces the
// old handler and moves the kind to the front.
type Registry struct {
	mu       sync.RWMutex
	handlers []Handler // registration order, oldest first
}

// NewRegistry creates a registry with the given handlers registered in order.
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

// DefaultRegistry creates a registry with the built-in handlers.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultHandlers(nil)...)
}

// Register adds a handler, replacing any handler of the same kind.
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = slices.DeleteFunc(r.handlers, func(x Handler) bool {
		return x.Kind() == h.Kind()
	})
	r.handlers = append(r.handlers, h)
}

// Unregister removes the handler for a kind.
// Returns false if no handler was registered for it.
func (r *Registry) Unregister(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.handlers)
	r.handlers = slices.DeleteFunc(r.handlers, func(x Handler) bool {
		return x.Kind() == kind
	})
	return len(r.handlers) != n
}

// Handlers returns the handlers in precedence order, newest first.
func (r *Registry) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.handlers)
	slices.Reverse(out)
	return out
}

// Kinds returns the registered kinds in precedence order.
func (r *Registry) Kinds() []string {
	hs := r.Handlers()
	kinds := make([]string, len(hs))
	for i, h := range hs {
		kinds[i] = h.Kind()
	}
	return kinds
}

// ForKind returns the handler registered for an exact kind.
func (r *Registry) ForKind(kind string) (Handler, bool) {
	for _, h := range r.Handlers() {
		if h.Kind() == kind {
			return h, true
		}
	}
	return nil, false
}

// FindHandler returns the first handler, in precedence order, whose
// CanHandle accepts the node.
func (r *Registry) FindHandler(node *tree.Node) (Handler, bool) {
	if node == nil {
		return nil, false
	}
	for _, h := range r.Handlers() {
		if h.CanHandle(node) {
			return h, true
		}
	}
	return nil, false
}

// HandlerForPaste selects the handler for the data: the handler whose kind
// equals data.Kind, else the first whose CanPaste accepts target and data.
func (r *Registry) HandlerForPaste(target *tree.Node, data Data) (Handler, bool) {
	if h, ok := r.ForKind(data.Kind); ok {
		return h, true
	}
	for _, h := range r.Handlers() {
		if h.CanPaste(target, data) {
			return h, true
		}
	}
	return nil, false
}

// Paste dispatches data to the selected handler. A failed Result is
// returned when the clipboard is empty, no handler matches, or the target
// is not part of the tree.
func (r *Registry) Paste(target *tree.Node, data Data, ctx PasteContext) Result {
	if data.IsZero() {
		return failed(ErrEmpty)
	}
	if ctx.Root == nil {
		return failed(ErrInvalidTarget)
	}
	if target != nil && tree.Find(ctx.Root, target.ID) == nil {
		return failed(fmt.Errorf("paste target %q: %w", target.ID, tree.ErrNotFound))
	}
	h, ok := r.HandlerForPaste(target, data)
	if !ok {
		return failed(fmt.Errorf("%w: %q", ErrNoHandler, data.Kind))
	}
	res := h.Paste(target, data, ctx)
	if res.Success && res.Tree == nil {
		return failed(ErrInvalidTarget)
	}
	return res
}
