package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/example/flowsketch/internal/clipboard"
	"github.com/example/flowsketch/internal/render"
	"github.com/example/flowsketch/internal/surface"
)

const defaultMargin = 16

var writeImageFn = clipboard.WriteImage

type renderCmd struct {
	*root
	fs          *flag.FlagSet
	output      string
	margin      float64
	shadow      bool
	crop        bool
	toClipboard bool
	trace       bool
	script      string
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "PNG file to write")
	fs.Float64Var(&c.margin, "margin", defaultMargin, "blank border around the shapes")
	fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow")
	fs.BoolVar(&c.crop, "crop", false, "trim the background border down to the drawn pixels")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the image to the clipboard")
	fs.BoolVar(&c.trace, "trace", false, "print the draw calls instead of rasterising")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	c.script = fs.Arg(0)
	if c.output == "" && !c.toClipboard && !c.trace {
		return nil, fmt.Errorf("render needs -output, -to-clipboard or -trace")
	}
	return c, nil
}

func (c *renderCmd) Program() string { return c.root.Program() + " render" }

func (c *renderCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *renderCmd) openScript() (io.ReadCloser, error) {
	if c.script == "-" {
		return io.NopCloser(c.stdin), nil
	}
	return os.Open(c.script)
}

func (c *renderCmd) Run() error {
	in, err := c.openScript()
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer in.Close()

	d := c.newDiagram()
	s := newSession(c.root, d, io.Discard)
	s.writeText = nil
	if err := s.runScript(in); err != nil {
		return fmt.Errorf("script %s: %w", c.script, err)
	}
	// Scripts may leave shapes selected; exports show the plain diagram.
	d.Selection().Clear()

	if c.trace {
		rec := surface.NewRecorder(0, 0)
		d.Render(rec)
		if _, err := rec.WriteTo(c.out()); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}

	if c.output == "" && !c.toClipboard {
		return nil
	}

	fontSize := c.editorConfig().FontSize
	img, err := d.Export(c.margin, fontSize)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if c.crop {
		img = render.Trim(img, d.Theme().Background, 2)
	}
	if c.shadow {
		img = render.ApplyShadow(img, render.DefaultShadowOptions()).Image
	}

	if c.output != "" {
		if err := writePNG(c.output, img); err != nil {
			return fmt.Errorf("write %s: %w", c.output, err)
		}
		fmt.Fprintf(c.stderr, "saved %s\n", c.output)
		c.notifyExport(c.output, img)
	}
	if c.toClipboard {
		if err := writeImageFn(img); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifyCopy("diagram image")
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
