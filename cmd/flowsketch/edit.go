package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/example/flowsketch/internal/appstate"
)

type editCmd struct {
	*root
	fs     *flag.FlagSet
	width  int
	height int
	output string
	script string
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", 1024, "window width")
	fs.IntVar(&c.height, "height", 720, "window height")
	fs.StringVar(&c.output, "output", "diagram.png", "file written by Ctrl+S")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: c}
	}
	c.script = fs.Arg(0)
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("window size %dx%d must be positive", c.width, c.height)
	}
	return c, nil
}

func (c *editCmd) Program() string { return c.root.Program() + " edit" }

func (c *editCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *editCmd) Run() error {
	d := c.newDiagram()
	if c.script != "" {
		f, err := os.Open(c.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		err = newSession(c.root, d, io.Discard).runScript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("script %s: %w", c.script, err)
		}
	}
	cfg := c.editorConfig()
	st := appstate.New(
		appstate.WithDiagram(d),
		appstate.WithOutput(c.output),
		appstate.WithSize(c.width, c.height),
		appstate.WithFontSize(cfg.FontSize),
		appstate.WithDoubleClick(time.Duration(cfg.DoubleClickMS)*time.Millisecond),
		appstate.WithNotifier(c.notifier),
	)
	st.Run()
	return nil
}
