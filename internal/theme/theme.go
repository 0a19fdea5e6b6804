package theme

import (
	"image/color"
	"reflect"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme defines the colour palette for the diagram and the editor chrome.
type Theme struct {
	Name string

	// Canvas
	Background color.RGBA // Diagram background, also used by ClearRect
	Grid       color.RGBA

	// Shapes
	ShapeFill   color.RGBA // Interior of block shapes
	ShapeStroke color.RGBA // Outline of block shapes
	Connector   color.RGBA // Lines, arrows and arrow heads
	Label       color.RGBA

	// Selection chrome
	Selection        color.RGBA // Dashed ring around a selected shape
	ResizeHandle     color.RGBA
	ConnectionHandle color.RGBA
	EndpointHandle   color.RGBA
	SnapTarget       color.RGBA
	Marquee          color.RGBA
	MarqueeFill      color.RGBA

	// Editor window
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
	StatusText            color.RGBA
	EditorBackground      color.RGBA // Inline text editor box
	EditorText            color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{255, 255, 255, 255},
		Grid:                  color.RGBA{236, 236, 236, 255},
		ShapeFill:             color.RGBA{255, 255, 255, 255},
		ShapeStroke:           color.RGBA{0, 0, 0, 255},
		Connector:             color.RGBA{0, 0, 0, 255},
		Label:                 color.RGBA{0, 0, 0, 255},
		Selection:             color.RGBA{30, 144, 255, 255},
		ResizeHandle:          color.RGBA{30, 144, 255, 255},
		ConnectionHandle:      color.RGBA{46, 139, 87, 255},
		EndpointHandle:        color.RGBA{255, 140, 0, 255},
		SnapTarget:            color.RGBA{220, 20, 60, 255},
		Marquee:               color.RGBA{30, 144, 255, 255},
		MarqueeFill:           color.RGBA{30, 144, 255, 48},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		StatusText:            color.RGBA{40, 40, 40, 255},
		EditorBackground:      color.RGBA{255, 255, 224, 255},
		EditorText:            color.RGBA{0, 0, 0, 255},
	}
}

// Field is one named colour slot of a Theme.
type Field struct {
	Name  string
	Color color.RGBA
}

// Fields lists every colour slot in declaration order.
func (t *Theme) Fields() []Field {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	rgba := reflect.TypeOf(color.RGBA{})
	var out []Field
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgba {
			continue
		}
		out = append(out, Field{Name: typ.Field(i).Name, Color: val.Field(i).Interface().(color.RGBA)})
	}
	return out
}

// Blend mixes a towards b by t in [0,1] in Lab space. Alpha is taken from a.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: a.A}
}

// Tint returns the fill used for a selected shape: the shape fill pulled a
// little towards the selection colour.
func (t *Theme) Tint() color.RGBA {
	return Blend(t.ShapeFill, t.Selection, 0.12)
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}
