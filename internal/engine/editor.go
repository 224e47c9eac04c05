package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/pagecraft/internal/clipboard"
	"github.com/dshills/pagecraft/internal/document"
	"github.com/dshills/pagecraft/internal/engine/commands"
	"github.com/dshills/pagecraft/internal/engine/history"
	"github.com/dshills/pagecraft/internal/event"
	"github.com/dshills/pagecraft/internal/selection"
	"github.com/dshills/pagecraft/internal/tree"
)

// Re-export commonly used types for convenience.
type (
	// Command is an undoable document command.
	Command = history.Command

	// Point is a pointer position in surface coordinates.
	Point = selection.Point

	// Surface is one rendered region under the pointer.
	Surface = selection.Surface
)

// Editor is the main facade of the page editor. It combines the document,
// the undo history, the click resolver and change notification into one
// API.
//
// An Editor is not safe for concurrent use. Calls are expected to arrive
// one input event at a time; a command that calls back into the editor
// while it runs gets history.ErrReentrant.
type Editor struct {
	doc      *document.Document
	history  *history.Manager
	resolver *selection.Resolver
	notifier *event.Notifier
	log      *zap.Logger

	ownsNotifier bool

	// Construction settings
	initRoot   *tree.Node
	capacity   int
	strategies *selection.Registry
	clipboard  *clipboard.Store
	handlers   *clipboard.Registry
	ids        tree.IDGenerator
}

// New creates an Editor. Without WithRoot the document is an empty body
// element with id "root".
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		log:      zap.NewNop(),
		capacity: history.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}

	root := e.initRoot
	if root == nil {
		root = tree.NewElement("root", "body")
	} else if err := tree.Validate(root); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	e.doc = document.New(root,
		document.WithClipboard(e.clipboard),
		document.WithHandlers(e.handlers),
		document.WithIDGenerator(e.ids),
	)
	e.history = history.NewManager(e.capacity)
	e.resolver = selection.NewResolver(e.strategies, e.doc)
	if e.notifier == nil {
		e.notifier = event.New()
		e.ownsNotifier = true
	}
	return e, nil
}

// Close releases the editor's notifier if the editor created it.
func (e *Editor) Close() {
	if e.ownsNotifier {
		e.notifier.Close()
	}
	_ = e.log.Sync()
}

// ============================================================================
// Document
// ============================================================================

// Load replaces the document with root. The selection and the undo history
// are cleared.
func (e *Editor) Load(root *tree.Node) error {
	if root == nil {
		return ErrNoDocument
	}
	if err := tree.Validate(root); err != nil {
		e.log.Warn("document rejected", zap.Error(err))
		return fmt.Errorf("invalid document: %w", err)
	}

	before := e.observe()
	before.root = nil // always report the new document

	e.doc.SetRoot(root)
	e.doc.ClearSelection()
	e.history.Clear()

	e.log.Info("document loaded", zap.String("root", root.ID), zap.Int("nodes", tree.Count(root)))
	e.publish(event.ActionLoad, "", before)
	return nil
}

// Root returns the current tree. It must not be modified.
func (e *Editor) Root() *tree.Node {
	return e.doc.Root()
}

// Find returns the node with the given id, or nil.
func (e *Editor) Find(id string) *tree.Node {
	return e.doc.Find(id)
}

// Document returns the underlying editing session.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Selection returns the current selection.
func (e *Editor) Selection() selection.State {
	return e.doc.Selection()
}

// Clipboard returns the clipboard contents.
func (e *Editor) Clipboard() (clipboard.Data, bool) {
	return e.doc.Clipboard().Get()
}

// Strategies returns the selection strategy registry.
func (e *Editor) Strategies() *selection.Registry {
	return e.resolver.Strategies()
}

// Subscribe registers an observer for change events on topic.
func (e *Editor) Subscribe(topic event.Topic, obs event.Observer) *event.Subscription {
	return e.notifier.Subscribe(topic, obs)
}

// ============================================================================
// Command Execution
// ============================================================================

// Execute runs a command and records it in the undo history.
func (e *Editor) Execute(cmd Command) error {
	before := e.observe()
	if err := e.history.Execute(e.doc, cmd); err != nil {
		e.log.Warn("command failed",
			zap.String("command", cmd.Name()),
			zap.String("description", cmd.Description()),
			zap.Error(err))
		return err
	}
	e.log.Debug("command executed",
		zap.String("command", cmd.Name()),
		zap.String("description", cmd.Description()))
	e.publish(event.ActionExecute, cmd.Name(), before)
	return nil
}

// Transaction runs fn as one undo step. Commands fn executes through the
// editor are grouped; if fn fails they are rolled back.
func (e *Editor) Transaction(name string, fn func() error) error {
	before := e.observe()
	if err := e.history.Transaction(e.doc, name, fn); err != nil {
		e.log.Warn("transaction rolled back", zap.String("transaction", name), zap.Error(err))
		e.publish(event.ActionUndo, name, before)
		return err
	}
	e.log.Debug("transaction committed", zap.String("transaction", name))
	e.publish(event.ActionExecute, name, before)
	return nil
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last recorded command.
func (e *Editor) Undo() error {
	info, _ := e.history.PeekUndo()
	before := e.observe()
	if err := e.history.Undo(e.doc); err != nil {
		e.logHistoryError("undo", info.Name, err, history.ErrNothingToUndo)
		return err
	}
	e.log.Debug("command undone", zap.String("command", info.Name))
	e.publish(event.ActionUndo, info.Name, before)
	return nil
}

// Redo re-applies the last undone command.
func (e *Editor) Redo() error {
	info, _ := e.history.PeekRedo()
	before := e.observe()
	if err := e.history.Redo(e.doc); err != nil {
		e.logHistoryError("redo", info.Name, err, history.ErrNothingToRedo)
		return err
	}
	e.log.Debug("command redone", zap.String("command", info.Name))
	e.publish(event.ActionRedo, info.Name, before)
	return nil
}

func (e *Editor) logHistoryError(op, name string, err, empty error) {
	if errors.Is(err, empty) {
		e.log.Debug(op+" skipped", zap.Error(err))
		return
	}
	e.log.Warn(op+" failed", zap.String("command", name), zap.Error(err))
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of available undo operations.
func (e *Editor) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of available redo operations.
func (e *Editor) RedoCount() int {
	return e.history.RedoCount()
}

// UndoInfo describes the undo stack, oldest first. The next undo is last.
func (e *Editor) UndoInfo() []history.Info {
	return e.history.UndoInfo()
}

// RedoInfo describes the redo stack in stack order. The next redo is last.
func (e *Editor) RedoInfo() []history.Info {
	return e.history.RedoInfo()
}

// BeginUndoGroup starts a new undo group.
// All commands until EndUndoGroup will be undone as a single unit.
func (e *Editor) BeginUndoGroup(name string) {
	e.history.BeginGroup(name)
}

// EndUndoGroup ends the current undo group.
func (e *Editor) EndUndoGroup() {
	before := e.observe()
	e.history.EndGroup()
	e.publish(event.ActionExecute, "", before)
}

// Checkpoint marks the current history position for UndoToCheckpoint.
func (e *Editor) Checkpoint() history.Checkpoint {
	return e.history.CreateCheckpoint()
}

// UndoToCheckpoint undoes every command recorded since cp. On failure the
// commands undone so far stay undone.
func (e *Editor) UndoToCheckpoint(cp history.Checkpoint) error {
	before := e.observe()
	err := e.history.UndoToCheckpoint(e.doc, cp)
	if err != nil {
		e.logHistoryError("undo to checkpoint", "", err, history.ErrNothingToUndo)
	} else {
		e.log.Debug("undone to checkpoint", zap.Int("undo_count", e.history.UndoCount()))
	}
	e.publish(event.ActionUndo, "", before)
	return err
}

// ClearHistory removes all undo/redo history.
func (e *Editor) ClearHistory() {
	before := e.observe()
	e.history.Clear()
	e.publish(event.ActionExecute, "", before)
}

// ============================================================================
// Selection
// ============================================================================

// Click resolves a click on the given surfaces, topmost first, and makes
// the winner the selection. It returns nil when the click cleared the
// selection. Editing reports whether a typing session is active.
func (e *Editor) Click(p Point, surfaces []Surface, editing bool) (*selection.State, error) {
	state := e.resolver.Apply(e.input(p, surfaces, editing))

	before := e.observe()
	cmd := commands.NewSelectNode(state)
	if err := e.history.Execute(e.doc, cmd); err != nil {
		e.log.Warn("click failed", zap.String("node", state.NodeID), zap.Error(err))
		return nil, err
	}
	e.log.Debug("click resolved",
		zap.String("node", state.NodeID),
		zap.Stringer("mode", state.Mode),
		zap.Int("surfaces", len(surfaces)))
	e.publish(event.ActionClick, cmd.Name(), before)

	if state.IsNone() {
		return nil, nil
	}
	return &state, nil
}

// Candidates returns every candidate for a click, best first, without
// changing the selection.
func (e *Editor) Candidates(p Point, surfaces []Surface, editing bool) []selection.Candidate {
	return e.resolver.Candidates(e.input(p, surfaces, editing))
}

func (e *Editor) input(p Point, surfaces []Surface, editing bool) selection.Input {
	return selection.Input{
		Point:     p,
		Surfaces:  surfaces,
		Selection: e.doc.Selection(),
		Editing:   editing,
	}
}

// Select sets the selection directly.
func (e *Editor) Select(s selection.State) error {
	return e.Execute(commands.NewSelectNode(s))
}

// ClearSelection deselects everything.
func (e *Editor) ClearSelection() error {
	return e.Execute(commands.NewClearSelection())
}

func (e *Editor) selected() (string, error) {
	s := e.doc.Selection()
	if s.IsNone() {
		return "", ErrNoSelection
	}
	return s.NodeID, nil
}

// DeleteSelected deletes or clears the selected node.
func (e *Editor) DeleteSelected() error {
	id, err := e.selected()
	if err != nil {
		return err
	}
	return e.Execute(commands.NewDeleteNode(id))
}

// CopySelected copies the selected node.
func (e *Editor) CopySelected(v commands.Variant) error {
	id, err := e.selected()
	if err != nil {
		return err
	}
	return e.Execute(commands.NewCopy(id, v))
}

// CutSelected cuts the selected node.
func (e *Editor) CutSelected(v commands.Variant) error {
	id, err := e.selected()
	if err != nil {
		return err
	}
	return e.Execute(commands.NewCut(id, v))
}

// PasteAtSelection pastes the clipboard relative to the selected node and
// returns the id of the pasted node. With nothing selected the handler's
// default position is used.
func (e *Editor) PasteAtSelection(v commands.Variant) (string, error) {
	cmd := commands.NewPaste(e.doc.Selection().NodeID, v)
	if err := e.Execute(cmd); err != nil {
		return "", err
	}
	return cmd.PastedID, nil
}

// EditSelectedText replaces the text of the selected text node.
func (e *Editor) EditSelectedText(text string) error {
	id, err := e.selected()
	if err != nil {
		return err
	}
	return e.Execute(commands.NewTextEdit(id, text))
}

// ============================================================================
// Data
// ============================================================================

// ApplyRecords stores fetched records on a data-bound node. The data
// fetch collaborator calls it once a fetch resolves.
func (e *Editor) ApplyRecords(nodeID string, records []tree.Record, columns []tree.Column) error {
	return e.Execute(commands.NewApplyRecords(nodeID, records, columns))
}

// ============================================================================
// Change Notification
// ============================================================================

type observation struct {
	root      *tree.Node
	selection selection.State
	undo      int
	redo      int
}

func (e *Editor) observe() observation {
	return observation{
		root:      e.doc.Root(),
		selection: e.doc.Selection(),
		undo:      e.history.UndoCount(),
		redo:      e.history.RedoCount(),
	}
}

// publish emits one event per aspect that differs from before, in the
// order document, selection, history.
func (e *Editor) publish(action event.Action, name string, before observation) {
	after := e.observe()
	ev := event.Event{
		Action:    action,
		Command:   name,
		Selection: after.selection,
		UndoCount: after.undo,
		RedoCount: after.redo,
	}

	batch := e.notifier.NewBatch()
	if after.root != before.root {
		ev.Topic = event.DocumentChanged
		batch.Add(ev)
	}
	if after.selection != before.selection {
		ev.Topic = event.SelectionChanged
		batch.Add(ev)
	}
	if after.undo != before.undo || after.redo != before.redo {
		ev.Topic = event.HistoryChanged
		batch.Add(ev)
	}
	_ = batch.Commit()
}
