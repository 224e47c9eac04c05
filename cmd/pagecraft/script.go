package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dshills/pagecraft/internal/engine"
	"github.com/dshills/pagecraft/internal/engine/commands"
	"github.com/dshills/pagecraft/internal/engine/history"
	"github.com/dshills/pagecraft/internal/selection"
)

// Step is one scripted editor action. Fields not used by an op are
// ignored. Ops that act on a node use the current selection when Node is
// empty.
type Step struct {
	Op string `yaml:"op"`

	Node      string `yaml:"node"`
	Container string `yaml:"container"`
	Mode      string `yaml:"mode"`
	Text      string `yaml:"text"`
	Key       string `yaml:"key"`
	Value     string `yaml:"value"`
	Src       string `yaml:"src"`
	Markup    string `yaml:"markup"`
	Variant   string `yaml:"variant"`
	From      int    `yaml:"from"`
	To        int    `yaml:"to"`

	// Name labels a group or a checkpoint. Steps are the steps of a group.
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`

	// Click input
	X        float64       `yaml:"x"`
	Y        float64       `yaml:"y"`
	Editing  bool          `yaml:"editing"`
	Surfaces []surfaceStep `yaml:"surfaces"`
}

type surfaceStep struct {
	Node    string     `yaml:"node"`
	Kind    string     `yaml:"kind"`
	Overlay bool       `yaml:"overlay"`
	Bounds  *rectStep  `yaml:"bounds"`
	Padding *insetStep `yaml:"padding"`
}

type rectStep struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type insetStep struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

func (s surfaceStep) surface() selection.Surface {
	out := selection.Surface{NodeID: s.Node, Kind: s.Kind, Overlay: s.Overlay}
	if s.Bounds != nil {
		out.Bounds = selection.Rect(*s.Bounds)
	}
	if s.Padding != nil {
		out.Padding = selection.Insets(*s.Padding)
	}
	return out
}

// loadScript reads a YAML list of steps.
func loadScript(r io.Reader) ([]Step, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var steps []Step
	if err := dec.Decode(&steps); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return steps, nil
}

// runner applies steps to one editor and remembers named checkpoints.
type runner struct {
	e           *engine.Editor
	log         *zap.Logger
	checkpoints map[string]history.Checkpoint
}

// runScript applies steps in order and stops at the first failure.
func runScript(e *engine.Editor, steps []Step, log *zap.Logger) error {
	r := &runner{e: e, log: log, checkpoints: make(map[string]history.Checkpoint)}
	return r.run(steps, "")
}

func (r *runner) run(steps []Step, prefix string) error {
	for i, s := range steps {
		pos := fmt.Sprintf("%s%d", prefix, i+1)
		if err := r.apply(s, pos); err != nil {
			return err
		}
		r.log.Debug("step applied", zap.String("step", pos), zap.String("op", s.Op))
	}
	return nil
}

func (r *runner) apply(s Step, pos string) error {
	switch s.Op {
	case "group":
		// Nested failures are already labeled with their position.
		return r.e.Transaction(s.Name, func() error {
			return r.run(s.Steps, pos+".")
		})

	case "checkpoint":
		if s.Name == "" {
			return fmt.Errorf("step %s (checkpoint): name is required", pos)
		}
		r.checkpoints[s.Name] = r.e.Checkpoint()
		return nil

	case "rollback":
		cp, ok := r.checkpoints[s.Name]
		if !ok {
			return fmt.Errorf("step %s (rollback): unknown checkpoint %q", pos, s.Name)
		}
		if err := r.e.UndoToCheckpoint(cp); err != nil {
			return fmt.Errorf("step %s (rollback): %w", pos, err)
		}
		return nil
	}

	if err := s.apply(r.e); err != nil {
		return fmt.Errorf("step %s (%s): %w", pos, s.Op, err)
	}
	return nil
}

func (s Step) apply(e *engine.Editor) error {
	switch s.Op {
	case "click":
		surfaces := make([]selection.Surface, len(s.Surfaces))
		for i, sf := range s.Surfaces {
			surfaces[i] = sf.surface()
		}
		_, err := e.Click(selection.Point{X: s.X, Y: s.Y}, surfaces, s.Editing)
		return err

	case "select":
		mode := selection.ParseMode(s.Mode)
		if mode == selection.ModeNone {
			mode = selection.ModeBlock
		}
		return e.Select(selection.State{Mode: mode, NodeID: s.Node})

	case "clear-selection":
		return e.ClearSelection()

	case "add-item":
		return e.Execute(commands.NewAddItem(s.Container))

	case "delete":
		return e.Execute(commands.NewDeleteNode(s.node(e)))

	case "text":
		return e.Execute(commands.NewTextEdit(s.node(e), s.Text))

	case "move-section":
		return e.Execute(commands.NewMoveSection(s.From, s.To))

	case "duplicate":
		return e.Execute(commands.NewDuplicateNode(s.node(e)))

	case "set-attr":
		return e.Execute(commands.NewSetAttribute(s.node(e), s.Key, s.Value))

	case "replace-media":
		return e.Execute(commands.NewReplaceMedia(s.node(e), s.Src, s.Markup))

	case "view-mode":
		return e.Execute(commands.NewSetViewMode(s.node(e), s.Mode))

	case "copy", "cut", "paste":
		v, err := commands.ParseVariant(s.Variant)
		if err != nil {
			return err
		}
		switch s.Op {
		case "copy":
			return e.Execute(commands.NewCopy(s.node(e), v))
		case "cut":
			return e.Execute(commands.NewCut(s.node(e), v))
		}
		return e.Execute(commands.NewPaste(s.node(e), v))

	case "undo":
		return e.Undo()

	case "redo":
		return e.Redo()
	}
	return fmt.Errorf("unknown op %q", s.Op)
}
