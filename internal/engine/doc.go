// Package engine provides the page editor facade.
//
// The Editor combines the document tree, the undo history, the click
// resolver and change notification into a single API suitable for driving
// a visual editor from a renderer.
//
// # Architecture
//
// The engine is built on several packages:
//
//   - tree: persistent document nodes and traversal
//   - document: the session state commands act on
//   - history: the Command contract and the undo/redo Manager
//   - commands: the concrete editing commands
//   - selection: priority-based click resolution
//   - event: change notification for renderers
//
// # Basic Usage
//
//	e, err := engine.New(engine.WithRoot(root), engine.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	// Resolve a click into a selection
//	state, err := e.Click(p, surfaces, false)
//
//	// Edit, then undo
//	e.Execute(commands.NewTextEdit("title", "Hello"))
//	e.Undo()
//
// # Change Events
//
// After every operation that changes something the editor publishes one
// event per changed aspect, in the order document, selection, history:
//
//	e.Subscribe(event.DocumentChanged, func(ev event.Event) {
//	    renderer.Repaint(e.Root())
//	})
//
// # Grouping
//
// Several commands can be undone as one step:
//
//	err := e.Transaction("Rebuild hero", func() error {
//	    if err := e.Execute(commands.NewReplaceMedia("hero", src, "")); err != nil {
//	        return err
//	    }
//	    return e.Execute(commands.NewTextEdit("caption", text))
//	})
package engine
