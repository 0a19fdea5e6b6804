package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/flowsketch/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Editor holds the interactive editing tunables.
type Editor struct {
	// SnapRadius is how close, in scene units, a dragged endpoint must come
	// to a connection point before it snaps.
	SnapRadius float64
	// DoubleClickMS is the longest gap between two presses that still
	// counts as a double click.
	DoubleClickMS int
	FontSize      float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	Editor  Editor
	Themes  map[string]*theme.Theme
}

// DefaultEditor returns the built-in editor tunables.
func DefaultEditor() Editor {
	return Editor{
		SnapRadius:    12,
		DoubleClickMS: 400,
		FontSize:      12,
	}
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // empty falls back to env, then the built-in palette
		Editor: DefaultEditor(),
		Themes: make(map[string]*theme.Theme),
	}
}

// ThemeLoader returns a theme loader that also resolves the themes defined
// in this config.
func (c *Config) ThemeLoader() *theme.Loader {
	l := theme.NewLoader()
	l.Extra = c.Themes
	return l
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "snap_radius = %g\n", c.Editor.SnapRadius)
	fmt.Fprintf(&sb, "double_click_ms = %d\n", c.Editor.DoubleClickMS)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Editor.FontSize)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
