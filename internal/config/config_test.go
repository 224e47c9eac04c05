package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/pagecraft/internal/selection"
)

const sampleTOML = `
[history]
capacity = 100

[log]
level = "debug"
format = "json"

[selection]
direct_bonus = 40
disabled = ["data-bound"]

[selection.priorities]
text = 120
`

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.History.Capacity)
	assert.Equal(t, selection.DefaultPriorities(), cfg.Selection.Tuning())
}

func TestDecodeTOML(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.DecodeTOML(strings.NewReader(sampleTOML), "sample.toml"))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 100, cfg.History.Capacity)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset keys keep defaults")

	p := cfg.Selection.Tuning()
	assert.Equal(t, 120, p.Base[selection.KindText])
	assert.Equal(t, 60, p.Base[selection.KindMedia])
	assert.Equal(t, 40, p.DirectBonus)
	assert.Equal(t, -25, p.ContainerSelectionPenalty)
	assert.Equal(t, []string{selection.KindDataBound}, p.Disabled)
}

func TestDecodeTOMLErrors(t *testing.T) {
	cfg := Default()
	err := cfg.DecodeTOML(strings.NewReader("[history]\ncap = 1\n"), "bad.toml")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.toml", perr.Path)
	assert.Contains(t, perr.Message, "cap")

	err = cfg.DecodeTOML(strings.NewReader("[history\n"), "broken.toml")
	require.ErrorAs(t, err, &perr)
	assert.Positive(t, perr.Line)
	assert.Contains(t, err.Error(), "broken.toml")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.History.Capacity = -1
	cfg.Log.Level = "loud"
	cfg.Selection.Disabled = []string{"bogus"}
	cfg.Selection.Priorities["widget"] = 5
	cfg.Selection.ContainerSelectionPenalty = 10
	cfg.IDs.Generator = GeneratorSequence

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	var paths []string
	for _, f := range verr.Fields {
		paths = append(paths, f.Path)
	}
	assert.ElementsMatch(t, []string{
		"history.capacity",
		"log.level",
		"selection.priorities[widget]",
		"selection.container_selection_penalty",
		"selection.disabled[0]",
		"ids.prefix",
	}, paths)
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)
	l.environ = func() []string {
		return []string{
			"PAGECRAFT_HISTORY_CAPACITY=7",
			"PAGECRAFT_SELECTION_PRIORITY_REPEAT_ITEM=90",
			"PAGECRAFT_SELECTION_DISABLED=media, text",
			"PAGECRAFT_LOG_COMPRESS=off",
			"PAGECRAFT_IDS_GENERATOR=sequence",
			"PAGECRAFT_IDS_PREFIX=n",
			"PAGECRAFT_UNKNOWN=1",
			"HISTORY_CAPACITY=3",
		}
	}

	cfg := Default()
	require.NoError(t, l.Apply(cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 7, cfg.History.Capacity)
	assert.Equal(t, 90, cfg.Selection.Priorities[selection.KindRepeatItem])
	assert.Equal(t, []string{"media", "text"}, cfg.Selection.Disabled)
	assert.False(t, cfg.Log.Compress)
	assert.Equal(t, "n-1", cfg.IDs.IDGenerator()())
}

func TestEnvLoaderRejectsBadValue(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)
	l.environ = func() []string { return []string{"PAGECRAFT_HISTORY_CAPACITY=lots"} }

	err := l.Apply(Default())
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "PAGECRAFT_HISTORY_CAPACITY", perr.Path)

	l.environ = func() []string { return []string{"PAGECRAFT_LOG_COMPRESS=maybe"} }
	assert.Error(t, l.Apply(Default()))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagecraft.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))
	t.Setenv("PAGECRAFT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.History.Capacity)
	assert.Equal(t, "warn", cfg.Log.Level, "environment overrides the file")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	t.Setenv("PAGECRAFT_HISTORY_CAPACITY", "-3")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestSelectionRegistry(t *testing.T) {
	cfg := Default()
	cfg.Selection.Disabled = []string{selection.KindText}
	r := cfg.Selection.Registry()

	s, ok := r.Get(selection.KindText)
	require.True(t, ok)
	_, ok = s.Evaluate(selection.Surface{NodeID: "t", Kind: selection.KindText}, selection.Context{})
	assert.False(t, ok, "disabled kind declines")
}
