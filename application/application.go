package application

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/teichholz/go-rope/buffer"
	"github.com/teichholz/go-rope/commands"
	"github.com/teichholz/go-rope/config"
	"github.com/teichholz/go-rope/layout"
	"github.com/teichholz/go-rope/rope"
	"github.com/teichholz/go-rope/stats"
)

// Cursor is a position in the document, not on the screen.
type Cursor struct {
	row, col int
}

type Window struct {
	Width, Height int
}

func (win *Window) update(width, height int) {
	win.Width, win.Height = width, height
}

type CursorArea struct {
	minX, maxX, minY, maxY int
}

type Mode int

const (
	NormalMode Mode = iota
	CommandMode
)

func (m Mode) String() string {
	if m == CommandMode {
		return "Command"
	}
	return "Normal"
}

type Application struct {
	doc      *buffer.Document
	buffers  *buffer.Buffer
	saved    *rope.Node
	cursor   Cursor
	scroll   int
	config   *config.Config
	commands *commands.Commands

	BufferArea CursorArea
	window     Window
	screen     tcell.Screen
	layout     *layout.Flex

	mode     Mode
	cmdline  []rune
	message  string
	quitting bool

	log zerolog.Logger
}

func New(screen tcell.Screen, cfg *config.Config, buffers *buffer.Buffer, doc *buffer.Document, log zerolog.Logger) *Application {
	app := &Application{
		doc:      doc,
		buffers:  buffers,
		saved:    doc.Rope(),
		config:   cfg,
		commands: commands.NewCommands(log),
		screen:   screen,
		log:      log,
	}
	app.registerCommands()

	app.layout = layout.Column(
		layout.FlexItemBox(layout.EmptyBox, layout.Max(layout.Rel(1)), layout.Row(
			layout.FlexItemBox(app.lineNumberBox, layout.Exact(layout.Abs(5)), nil),
			layout.FlexItemBox(app.bufferBox, layout.Max(layout.Rel(1)), nil),
		)),
		layout.FlexItemBox(app.statusLineBox, layout.Exact(layout.Abs(3)), nil),
	)
	return app
}

func (app *Application) registerCommands() {
	app.commands.Register("write", func([]string) error {
		return app.save()
	})
	app.commands.Register("quit", func([]string) error {
		if app.modified() {
			if err := app.save(); err != nil {
				return err
			}
		}
		app.quitting = true
		return nil
	})
	app.commands.Register("undo", func([]string) error {
		_, err := app.doc.Undo()
		return err
	})
	app.commands.Register("redo", func([]string) error {
		_, err := app.doc.Redo()
		return err
	})
	app.commands.Register("reduce", func([]string) error {
		clean := !app.modified()
		compacted := app.buffers.Compact()
		if clean {
			app.saved = app.doc.Rope()
		}
		app.message = fmt.Sprintf("reduced to %d distinct fragments", compacted[app.doc.Path()])
		return nil
	})
	app.commands.Register("stats", func([]string) error {
		app.message = stats.Collect(app.doc.Rope()).String()
		return nil
	})
	app.commands.Register("debug", func([]string) error {
		app.log.Debug().Str("tree", app.doc.Rope().Debug()).Msg("rope")
		app.message = "tree written to log"
		return nil
	})
}

func (app *Application) modified() bool {
	return app.doc.Rope() != app.saved
}

func (app *Application) save() error {
	if err := app.doc.Save(); err != nil {
		return err
	}
	app.saved = app.doc.Rope()
	app.message = "written " + app.doc.Path()
	return nil
}

// Run draws and handles events until the user quits.
func (app *Application) Run() error {
	s := app.screen
	// You have to catch panics in a defer, clean up, and
	// re-raise them - otherwise your application can
	// die without leaving any diagnostic trace.
	defer func() {
		if maybePanic := recover(); maybePanic != nil {
			s.Fini()
			panic(maybePanic)
		}
	}()

	for !app.quitting {
		app.draw()
		ev := s.PollEvent()
		if ev == nil {
			break
		}
		app.handleInput(ev)
	}
	s.Fini()
	return nil
}

func (app *Application) draw() {
	s := app.screen
	app.window.update(s.Size())
	s.Clear()
	app.layout.StartLayouting(app.window.Width, app.window.Height)

	if app.mode == CommandMode {
		s.ShowCursor(len(app.cmdline)+2, app.window.Height-2)
	} else {
		s.ShowCursor(app.BufferArea.minX+app.cursor.col, app.BufferArea.minY+app.cursor.row-app.scroll)
	}
	s.Show()
}

func (app *Application) handleInput(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.window.update(ev.Size())
		app.screen.Sync()
	case *tcell.EventKey:
		app.message = ""
		if app.mode == CommandMode {
			app.handleCommandKey(ev)
		} else {
			app.handleKey(ev)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		area := app.BufferArea
		if ev.Buttons() == tcell.Button1 && x >= area.minX && x <= area.maxX && y >= area.minY && y <= area.maxY {
			app.cursor = Cursor{row: y - area.minY + app.scroll, col: x - area.minX}
			app.clampCursor()
		}
	}
}

func (app *Application) handleKey(ev *tcell.EventKey) {
	cursor := &app.cursor
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		app.exec("quit")
	case tcell.KeyUp:
		cursor.row--
	case tcell.KeyDown:
		cursor.row++
	case tcell.KeyLeft:
		cursor.col--
	case tcell.KeyRight:
		cursor.col++
	case tcell.KeyCtrlL:
		app.screen.Sync()
	case tcell.KeyCtrlS:
		app.exec("write")
	case tcell.KeyCtrlZ:
		app.exec("undo")
	case tcell.KeyCtrlY:
		app.exec("redo")
	case tcell.KeyCtrlE:
		app.mode = CommandMode
		app.cmdline = app.cmdline[:0]
	case tcell.KeyRune:
		app.edit(app.doc.InsertAt(cursor.row, cursor.col, ev.Rune()))
		cursor.col++
	case tcell.KeyEnter:
		app.edit(app.doc.InsertAt(cursor.row, cursor.col, '\n'))
		cursor.row++
		cursor.col = 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		switch {
		case cursor.col > 0:
			app.edit(app.doc.DeleteAt(cursor.row, cursor.col))
			cursor.col--
		case cursor.row > 0:
			// move cursor to end of previous line
			col := app.doc.LastCharInRow(cursor.row-1) + 1
			app.edit(app.doc.DeleteAt(cursor.row, 0))
			cursor.row--
			cursor.col = col
		}
	}
	app.clampCursor()
}

func (app *Application) handleCommandKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		app.mode = NormalMode
	case tcell.KeyEnter:
		app.mode = NormalMode
		app.exec(string(app.cmdline))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(app.cmdline) > 0 {
			app.cmdline = app.cmdline[:len(app.cmdline)-1]
		}
	case tcell.KeyRune:
		app.cmdline = append(app.cmdline, ev.Rune())
	}
	app.clampCursor()
}

func (app *Application) exec(line string) {
	if err := app.commands.Exec(line); err != nil {
		app.message = err.Error()
	}
}

func (app *Application) edit(r *rope.Node, err error) {
	if err != nil {
		app.log.Error().Err(err).Int("row", app.cursor.row).Int("col", app.cursor.col).Msg("edit failed")
		app.message = err.Error()
		return
	}
	app.log.Debug().Int("runes", r.Len()).Int("depth", r.Depth()).Msg("edit")
}

func (app *Application) clampCursor() {
	cursor := &app.cursor
	lines := app.doc.LineCount()

	cursor.row = min(max(cursor.row, 0), lines-1)
	cursor.col = min(max(cursor.col, 0), app.doc.LastCharInRow(cursor.row)+1)
}

// ensureVisible scrolls so the cursor row is inside a view of height rows.
func (app *Application) ensureVisible(height int) {
	if height <= 0 {
		return
	}
	view := rope.IV(app.scroll, app.scroll+height)
	switch {
	case view.Contains(app.cursor.row):
	case app.cursor.row < view.Lo:
		app.scroll = app.cursor.row
	default:
		app.scroll = app.cursor.row - height + 1
	}
}

func (app *Application) lineNumberBox(dims layout.Dimensions) {
	s := app.screen
	xmin, ymin, xmax, ymax := dims.Origin.X, dims.Origin.Y, dims.Origin.X+dims.Width, dims.Origin.Y+dims.Height
	app.ensureVisible(dims.Height)

	pad := xmax - xmin - 1
	lineCount := app.doc.LineCount()
	relative := app.config != nil && app.config.Editor().RelativeLineNumbers()
	for y := ymin; y < ymax; y++ {
		line := app.scroll + y - ymin
		if line >= lineCount {
			break
		}
		switch {
		case !relative:
			drawLine(s, xmin, xmax-1, y, LightStyle, []rune(fmt.Sprintf("%*d", pad, line+1)))
		case line == app.cursor.row:
			drawLine(s, xmin, xmax-1, y, DefaultStyle, []rune(fmt.Sprintf("%-*d", pad, line+1)))
		default:
			drawLine(s, xmin, xmax-1, y, LightStyle, []rune(fmt.Sprintf("%*d", pad, abs(line-app.cursor.row))))
		}
	}
}

func (app *Application) bufferBox(dims layout.Dimensions) {
	s := app.screen
	xmin, ymin, xmax, ymax := dims.Origin.X, dims.Origin.Y, dims.Origin.X+dims.Width, dims.Origin.Y+dims.Height
	app.BufferArea = CursorArea{xmin, xmax - 1, ymin, ymax - 1}
	app.ensureVisible(dims.Height)

	for i, line := range visibleLines(app.doc.Rope(), app.scroll, dims.Height) {
		drawLine(s, xmin, xmax-1, ymin+i, DefaultStyle, line)
	}
}

func (app *Application) statusLineBox(dims layout.Dimensions) {
	s := app.screen
	xmin, ymin, xmax, ymax := dims.Origin.X, dims.Origin.Y, dims.Origin.X+dims.Width, dims.Origin.Y+dims.Height

	var text string
	switch {
	case app.mode == CommandMode:
		text = ":" + string(app.cmdline)
	case app.message != "":
		text = app.message
	default:
		r := app.doc.Rope()
		dirty := ""
		if app.modified() {
			dirty = " [+]"
		}
		text = fmt.Sprintf("%s Mode  %s%s  %s runes  %d:%d  depth %d",
			app.mode, filepath.Base(app.doc.Path()), dirty, humanize.Comma(int64(r.Len())), app.cursor.row+1, app.cursor.col+1, r.Depth())
	}
	drawBox(s, xmin, ymin, xmax-1, ymax-1, DefaultStyle, text)
}

// visibleLines returns up to count lines starting at row from, without
// flattening the rope.
func visibleLines(r *rope.Node, from, count int) [][]rune {
	if count <= 0 {
		return nil
	}
	rows := rope.IV(from, from+count).Intersection(rope.IV(0, r.LineCount()))
	if rows.IsEmpty() {
		return nil
	}
	lines := [][]rune{{}}
	r.Scan(r.OffsetOfLine(rows.Lo), func(_ int, c rune) bool {
		if c == '\n' {
			if len(lines) == rows.Len() {
				return false
			}
			lines = append(lines, []rune{})
			return true
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], c)
		return true
	})
	return lines
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
