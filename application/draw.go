package application

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	DefaultStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	LightStyle   = DefaultStyle.Foreground(tcell.ColorGray)
	BoxStyle     = DefaultStyle.Foreground(tcell.ColorTeal)
)

// drawText writes text into the rectangle (x1, y1)-(x2, y2), wrapping at x2.
func drawText(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style, text string) {
	drawRunes(s, x1, y1, x2, y2, style, []rune(text))
}

// drawRunes is drawText for runes that are already decoded. Wide runes take
// two cells; '\n' moves to the next row.
func drawRunes(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style, text []rune) {
	row, col := y1, x1
	for _, r := range text {
		if row > y2 {
			return
		}
		if r == '\n' {
			row++
			col = x1
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if col+w-1 > x2 {
			row++
			col = x1
			if row > y2 {
				return
			}
		}
		s.SetContent(col, row, r, nil, style)
		col += w
	}
}

// drawLine writes text on row y from x1, cutting it at x2.
func drawLine(s tcell.Screen, x1, x2, y int, style tcell.Style, text []rune) {
	col := x1
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if col+w-1 > x2 {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col += w
	}
}

func drawBox(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style, text string) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	if x2 < x1 {
		x1, x2 = x2, x1
	}

	for row := y1; row <= y2; row++ {
		for col := x1; col <= x2; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
	for col := x1; col <= x2; col++ {
		s.SetContent(col, y1, tcell.RuneHLine, nil, BoxStyle)
		s.SetContent(col, y2, tcell.RuneHLine, nil, BoxStyle)
	}
	for row := y1 + 1; row < y2; row++ {
		s.SetContent(x1, row, tcell.RuneVLine, nil, BoxStyle)
		s.SetContent(x2, row, tcell.RuneVLine, nil, BoxStyle)
	}
	if y1 != y2 && x1 != x2 {
		s.SetContent(x1, y1, tcell.RuneULCorner, nil, BoxStyle)
		s.SetContent(x2, y1, tcell.RuneURCorner, nil, BoxStyle)
		s.SetContent(x1, y2, tcell.RuneLLCorner, nil, BoxStyle)
		s.SetContent(x2, y2, tcell.RuneLRCorner, nil, BoxStyle)
	}

	drawText(s, x1+1, y1+1, x2-1, y2-1, style, text)
}
