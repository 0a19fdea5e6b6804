package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/example/flowsketch/internal/clipboard"
	"github.com/example/flowsketch/internal/diagram"
	"github.com/example/flowsketch/internal/geom"
	"github.com/example/flowsketch/internal/handles"
	"github.com/example/flowsketch/internal/shape"
)

// errExit ends a script or prompt.
var errExit = errors.New("exit")

// session executes text commands against a diagram. Shapes are numbered
// from 1 in creation order and keep their number until deleted.
type session struct {
	r   *root
	d   *diagram.Diagram
	out io.Writer

	numbers map[uuid.UUID]int
	next    int

	// writeText mirrors copied labels to the system clipboard.
	writeText func(string) error
}

func newSession(r *root, d *diagram.Diagram, out io.Writer) *session {
	return &session{
		r:         r,
		d:         d,
		out:       out,
		numbers:   make(map[uuid.UUID]int),
		next:      1,
		writeText: clipboard.WriteText,
	}
}

type sessionCommand struct {
	usage string
	help  string
	run   func(s *session, args []string) error
}

var sessionCommands map[string]sessionCommand

func init() {
	sessionCommands = map[string]sessionCommand{
		"oval":      {"oval X Y W H [label]", "add an oval in the given box", runBlock(shape.KindOval)},
		"rect":      {"rect X Y W H [label]", "add a rectangle in the given box", runBlock(shape.KindRectangle)},
		"rectangle": {"rectangle X Y W H [label]", "alias of rect", runBlock(shape.KindRectangle)},
		"diamond":   {"diamond X Y W H [label]", "add a diamond in the given box", runBlock(shape.KindDiamond)},
		"line":      {"line X1 Y1 X2 Y2 [label]", "add a line between two points", runConnector(shape.KindLine)},
		"arrow":     {"arrow X1 Y1 X2 Y2 [label]", "add an arrow between two points", runConnector(shape.KindArrow)},
		"add":       {"add KIND CX CY [W H]", "add a palette shape centred on a point", (*session).cmdAdd},
		"connect":   {"connect I DIR J DIR", "join two blocks with an arrow", (*session).cmdConnect},
		"list":      {"list", "show every shape", (*session).cmdList},
		"select":    {"select I [J...]", "replace the selection", (*session).cmdSelect},
		"toggle":    {"toggle I", "add or remove a shape from the selection", (*session).cmdToggle},
		"selectall": {"selectall", "select every shape", (*session).cmdSelectAll},
		"clear":     {"clear", "empty the selection", (*session).cmdClear},
		"marquee":   {"marquee X Y W H", "select shapes touching a rectangle", (*session).cmdMarquee},
		"click":     {"click X Y [shift] [double]", "click at a scene point", (*session).cmdClick},
		"drag":      {"drag X1 Y1 X2 Y2 [shift]", "press, drag and release the pointer", (*session).cmdDrag},
		"move":      {"move DX DY", "move the selection", (*session).cmdMove},
		"resize":    {"resize I W H", "set a shape's box size", (*session).cmdResize},
		"label":     {"label I TEXT", "set a shape's label", (*session).cmdLabel},
		"copy":      {"copy", "copy the selection", (*session).cmdCopy},
		"paste":     {"paste [X Y]", "paste at a point or next to the copy", (*session).cmdPaste},
		"delete":    {"delete", "remove the selection", (*session).cmdDelete},
		"export":    {"export FILE", "write the diagram as PNG", (*session).cmdExport},
		"help":      {"help", "list commands", (*session).cmdHelp},
		"exit":      {"exit", "leave", func(*session, []string) error { return errExit }},
		"quit":      {"quit", "alias of exit", func(*session, []string) error { return errExit }},
	}
}

// execLine runs one command line. Blank lines and # comments are ignored.
func (s *session) execLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args := strings.Fields(line)
	c, ok := sessionCommands[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown command %q (try 'help')", args[0])
	}
	return c.run(s, args[1:])
}

// runScript executes every line of r, stopping at the first error or at
// an exit command.
func (s *session) runScript(r io.Reader) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		if err := s.execLine(sc.Text()); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

func (s *session) register(sh shape.Shape) int {
	if n, ok := s.numbers[sh.ID()]; ok {
		return n
	}
	n := s.next
	s.numbers[sh.ID()] = n
	s.next++
	return n
}

func (s *session) number(sh shape.Shape) int {
	if n, ok := s.numbers[sh.ID()]; ok {
		return n
	}
	return s.register(sh)
}

func (s *session) lookup(arg string) (shape.Shape, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("shape number %q: %w", arg, err)
	}
	for _, sh := range s.d.Shapes() {
		if s.number(sh) == n {
			return sh, nil
		}
	}
	return nil, fmt.Errorf("no shape %d", n)
}

func (s *session) lookupAll(args []string) ([]shape.Shape, error) {
	out := make([]shape.Shape, 0, len(args))
	for _, a := range args {
		sh, err := s.lookup(a)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("need %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", args[i])
		}
		out[i] = v
	}
	return out, nil
}

func runBlock(k shape.Kind) func(*session, []string) error {
	return func(s *session, args []string) error {
		v, err := parseFloats(args, 4)
		if err != nil {
			return err
		}
		if v[2] <= 0 || v[3] <= 0 {
			return fmt.Errorf("size %gx%g must be positive", v[2], v[3])
		}
		sh := shape.New(s.d.Env(), k, geom.R(v[0], v[1], v[2], v[3]))
		sh.SetText(joinArgs(args[4:]))
		s.d.Add(sh)
		fmt.Fprintf(s.out, "#%d %s\n", s.register(sh), k)
		return nil
	}
}

func runConnector(k shape.Kind) func(*session, []string) error {
	return func(s *session, args []string) error {
		v, err := parseFloats(args, 4)
		if err != nil {
			return err
		}
		p1, p2 := geom.Pt(v[0], v[1]), geom.Pt(v[2], v[3])
		var sh shape.Shape
		if k == shape.KindArrow {
			sh = shape.NewArrow(s.d.Env(), p1, p2)
		} else {
			sh = shape.NewLine(s.d.Env(), p1, p2)
		}
		sh.SetText(joinArgs(args[4:]))
		s.d.Add(sh)
		fmt.Fprintf(s.out, "#%d %s\n", s.register(sh), k)
		return nil
	}
}

func (s *session) cmdAdd(args []string) error {
	if len(args) < 3 {
		return errors.New("usage: add KIND CX CY [W H]")
	}
	k, err := shape.ParseKind(args[0])
	if err != nil {
		return err
	}
	at, err := parseFloats(args[1:], 2)
	if err != nil {
		return err
	}
	var w, h float64
	if len(args) >= 5 {
		size, err := parseFloats(args[3:], 2)
		if err != nil {
			return err
		}
		w, h = size[0], size[1]
		if w < 0 || h < 0 {
			return fmt.Errorf("size %gx%g must not be negative", w, h)
		}
	}
	sh := s.d.Create(k, geom.Pt(at[0], at[1]), w, h)
	fmt.Fprintf(s.out, "#%d %s\n", s.register(sh), k)
	return nil
}

func (s *session) cmdConnect(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: connect I DIR J DIR")
	}
	from, err := s.snapper(args[0])
	if err != nil {
		return err
	}
	to, err := s.snapper(args[2])
	if err != nil {
		return err
	}
	fromDir, ok := handles.ParseDirection(strings.ToLower(args[1]))
	if !ok {
		return fmt.Errorf("unknown direction %q", args[1])
	}
	toDir, ok := handles.ParseDirection(strings.ToLower(args[3]))
	if !ok {
		return fmt.Errorf("unknown direction %q", args[3])
	}
	a := s.d.Connect(from, fromDir, to, toDir)
	fmt.Fprintf(s.out, "#%d arrow\n", s.register(a))
	return nil
}

func (s *session) snapper(arg string) (shape.Snapper, error) {
	sh, err := s.lookup(arg)
	if err != nil {
		return nil, err
	}
	sn, ok := sh.(shape.Snapper)
	if !ok {
		return nil, fmt.Errorf("shape %s is a %s and has no connection points", arg, sh.Kind())
	}
	return sn, nil
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var listColumns = []struct {
	title string
	width int
}{
	{"#", 4}, {"kind", 10}, {"x", 8}, {"y", 8}, {"w", 8}, {"h", 8}, {"sel", 4}, {"label", 20},
}

func listRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = style.Copy().Width(listColumns[i].width).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s *session) cmdList([]string) error {
	shapes := append([]shape.Shape(nil), s.d.Shapes()...)
	sort.SliceStable(shapes, func(i, j int) bool { return s.number(shapes[i]) < s.number(shapes[j]) })

	header := make([]string, len(listColumns))
	for i, c := range listColumns {
		header[i] = c.title
	}
	rows := []string{listRow(header, headerStyle)}
	for _, sh := range shapes {
		b := sh.Box()
		sel := ""
		style := lipgloss.NewStyle()
		if sh.Selected() {
			sel = "*"
			style = selectedStyle
		}
		rows = append(rows, listRow([]string{
			strconv.Itoa(s.number(sh)),
			sh.Kind().String(),
			strconv.FormatFloat(b.X, 'f', -1, 64),
			strconv.FormatFloat(b.Y, 'f', -1, 64),
			strconv.FormatFloat(b.W, 'f', -1, 64),
			strconv.FormatFloat(b.H, 'f', -1, 64),
			sel,
			sh.Label(),
		}, style))
	}
	fmt.Fprintln(s.out, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	return nil
}

func (s *session) cmdSelect(args []string) error {
	want, err := s.lookupAll(args)
	if err != nil {
		return err
	}
	s.d.Selection().Replace(s.d.Shapes(), want)
	return nil
}

func (s *session) cmdToggle(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: toggle I")
	}
	sh, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	s.d.Selection().Toggle(sh)
	return nil
}

func (s *session) cmdSelectAll([]string) error {
	s.d.SelectAll()
	return nil
}

func (s *session) cmdClear([]string) error {
	s.d.Selection().Clear()
	return nil
}

func (s *session) cmdMarquee(args []string) error {
	v, err := parseFloats(args, 4)
	if err != nil {
		return err
	}
	got := s.d.Marquee(geom.R(v[0], v[1], v[2], v[3]))
	fmt.Fprintf(s.out, "%d selected\n", len(got))
	return nil
}

func modifiers(args []string) (shift, double bool) {
	for _, a := range args {
		switch strings.ToLower(a) {
		case "shift", "ctrl":
			shift = true
		case "double":
			double = true
		}
	}
	return shift, double
}

func (s *session) cmdClick(args []string) error {
	v, err := parseFloats(args, 2)
	if err != nil {
		return err
	}
	shift, double := modifiers(args[2:])
	ev := shape.PointerEvent{Scene: geom.Pt(v[0], v[1]), Shift: shift}
	clicks := 1
	if double {
		clicks = 2
	}
	for i := 1; i <= clicks; i++ {
		ev.ClickCount = i
		s.d.Press(ev)
		s.d.Release(ev)
		s.d.Click(ev)
	}
	return nil
}

func (s *session) cmdDrag(args []string) error {
	v, err := parseFloats(args, 4)
	if err != nil {
		return err
	}
	shift, _ := modifiers(args[4:])
	from := shape.PointerEvent{Scene: geom.Pt(v[0], v[1]), Shift: shift}
	to := shape.PointerEvent{Scene: geom.Pt(v[2], v[3]), Shift: shift, ClickCount: 1}
	s.d.Press(from)
	s.d.Drag(to)
	s.d.Release(to)
	s.d.Click(to)
	return nil
}

func (s *session) cmdMove(args []string) error {
	v, err := parseFloats(args, 2)
	if err != nil {
		return err
	}
	sel := s.d.Selected()
	if len(sel) == 0 {
		return errors.New("nothing selected")
	}
	for _, sh := range sel {
		sh.Translate(v[0], v[1])
	}
	return nil
}

func (s *session) cmdResize(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: resize I W H")
	}
	sh, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	v, err := parseFloats(args[1:], 2)
	if err != nil {
		return err
	}
	sh.SetBoxWidth(v[0])
	sh.SetBoxHeight(v[1])
	return nil
}

func (s *session) cmdLabel(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: label I TEXT")
	}
	sh, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	sh.SetText(joinArgs(args[1:]))
	return nil
}

func (s *session) cmdCopy([]string) error {
	n := s.d.Copy()
	if n == 0 {
		return errors.New("nothing selected")
	}
	if s.writeText != nil {
		if err := s.writeText(s.d.Board().Text()); err != nil {
			fmt.Fprintf(s.out, "system clipboard: %v\n", err)
		}
	}
	detail := fmt.Sprintf("%d shapes", n)
	fmt.Fprintf(s.out, "copied %s\n", detail)
	s.r.notifyCopy(detail)
	return nil
}

func (s *session) cmdPaste(args []string) error {
	var pasted []shape.Shape
	if len(args) >= 2 {
		v, err := parseFloats(args, 2)
		if err != nil {
			return err
		}
		pasted = s.d.Paste(geom.Pt(v[0], v[1]))
	} else {
		c, ok := s.d.Board().Centroid()
		if !ok {
			return errors.New("clipboard is empty")
		}
		pasted = s.d.Paste(c.Add(geom.Pt(20, 20)))
	}
	if len(pasted) == 0 {
		return errors.New("clipboard is empty")
	}
	nums := make([]string, len(pasted))
	for i, sh := range pasted {
		nums[i] = "#" + strconv.Itoa(s.register(sh))
	}
	fmt.Fprintf(s.out, "pasted %s\n", strings.Join(nums, " "))
	return nil
}

func (s *session) cmdDelete([]string) error {
	n := s.d.DeleteSelected()
	fmt.Fprintf(s.out, "deleted %d\n", n)
	return nil
}

func (s *session) cmdExport(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: export FILE")
	}
	img, err := s.d.Export(defaultMargin, s.r.editorConfig().FontSize)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writePNG(args[0], img); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(s.out, "saved %s\n", args[0])
	s.r.notifyExport(args[0], img)
	return nil
}

func (s *session) cmdHelp([]string) error {
	names := make([]string, 0, len(sessionCommands))
	for name := range sessionCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := sessionCommands[name]
		fmt.Fprintf(s.out, "  %-28s %s\n", c.usage, c.help)
	}
	return nil
}
