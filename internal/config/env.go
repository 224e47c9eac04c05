package config

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PAGECRAFT_"

// priorityPrefix selects per-kind priorities, e.g.
// PAGECRAFT_SELECTION_PRIORITY_REPEAT_ITEM.
const priorityPrefix = "SELECTION_PRIORITY_"

type setter func(c *Config, value string) error

// EnvLoader applies environment variables to a Config.
type EnvLoader struct {
	prefix  string
	environ func() []string
	setters map[string]setter
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		environ: os.Environ,
		setters: defaultSetters(),
	}
}

func defaultSetters() map[string]setter {
	return map[string]setter{
		"HISTORY_CAPACITY":                      intSetter(func(c *Config) *int { return &c.History.Capacity }),
		"LOG_LEVEL":                             stringSetter(func(c *Config) *string { return &c.Log.Level }),
		"LOG_FORMAT":                            stringSetter(func(c *Config) *string { return &c.Log.Format }),
		"LOG_FILE":                              stringSetter(func(c *Config) *string { return &c.Log.File }),
		"LOG_MAX_SIZE_MB":                       intSetter(func(c *Config) *int { return &c.Log.MaxSizeMB }),
		"LOG_MAX_BACKUPS":                       intSetter(func(c *Config) *int { return &c.Log.MaxBackups }),
		"LOG_MAX_AGE_DAYS":                      intSetter(func(c *Config) *int { return &c.Log.MaxAgeDays }),
		"LOG_COMPRESS":                          boolSetter(func(c *Config) *bool { return &c.Log.Compress }),
		"SELECTION_DIRECT_BONUS":                intSetter(func(c *Config) *int { return &c.Selection.DirectBonus }),
		"SELECTION_CONTAINER_SELECTION_PENALTY": intSetter(func(c *Config) *int { return &c.Selection.ContainerSelectionPenalty }),
		"SELECTION_EMPTY_SPACE_BONUS":           intSetter(func(c *Config) *int { return &c.Selection.EmptySpaceBonus }),
		"SELECTION_DISABLED": func(c *Config, v string) error {
			c.Selection.Disabled = splitList(v)
			return nil
		},
		"IDS_GENERATOR": stringSetter(func(c *Config) *string { return &c.IDs.Generator }),
		"IDS_PREFIX":    stringSetter(func(c *Config) *string { return &c.IDs.Prefix }),
	}
}

// Apply sets every recognized variable on c. Unrecognized variables with
// the prefix are ignored. Variables are applied in name order.
func (l *EnvLoader) Apply(c *Config) error {
	vars := make(map[string]string)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		vars[strings.TrimPrefix(name, l.prefix)] = value
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := vars[name]
		if kind, ok := strings.CutPrefix(name, priorityPrefix); ok && kind != "" {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return l.parseError(name, err)
			}
			if c.Selection.Priorities == nil {
				c.Selection.Priorities = make(map[string]int)
			}
			c.Selection.Priorities[envToKind(kind)] = n
			continue
		}

		set, ok := l.setters[name]
		if !ok {
			continue
		}
		if err := set(c, value); err != nil {
			return l.parseError(name, err)
		}
	}
	return nil
}

func (l *EnvLoader) parseError(name string, err error) error {
	return &ParseError{Path: l.prefix + name, Message: err.Error(), Err: err}
}

// envToKind converts REPEAT_ITEM to repeat-item.
func envToKind(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func stringSetter(field func(*Config) *string) setter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func intSetter(field func(*Config) *int) setter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) setter {
	return func(c *Config, v string) error {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			*field(c) = true
		case "0", "false", "no", "off":
			*field(c) = false
		default:
			return &strconv.NumError{Func: "ParseBool", Num: v, Err: strconv.ErrSyntax}
		}
		return nil
	}
}
