// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package render draws a preview of a panel in the terminal. Buttons are
// placed on a character canvas using their relative position and size.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/z5labs/panelcfg/screen"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Button is anything drawn on the canvas.
type Button struct {
	ID       string
	Label    string
	Position screen.Point
	Size     screen.Size
}

// PhoneButtons converts the buttons of a phone panel, labelling each
// with its text, or its id if it has none.
func PhoneButtons(p screen.PhonePanel) []Button {
	buttons := make([]Button, len(p.Buttons))
	for i, b := range p.Buttons {
		label := b.Text
		if label == "" {
			label = b.ID
		}
		buttons[i] = Button{ID: b.ID, Label: label, Position: b.Position, Size: b.Size}
	}
	return buttons
}

// RadioButtons converts the buttons of a radio panel. Buttons without text
// are labelled with their slot.
func RadioButtons(p screen.RadioPanel) []Button {
	buttons := make([]Button, len(p.Buttons))
	for i, b := range p.Buttons {
		label := b.Text
		if label == "" {
			label = "slot " + strconv.Itoa(int(b.Slot))
		}
		buttons[i] = Button{ID: b.ID, Label: label, Position: b.Position, Size: b.Size}
	}
	return buttons
}

type options struct {
	width  int
	height int
	color  lipgloss.Color
}

// Option configures the preview.
type Option func(*options)

// Dimensions sets the size of the canvas in terminal cells, excluding
// the frame drawn around it. Values below 4 are raised to 4.
func Dimensions(width, height int) Option {
	return func(o *options) {
		o.width = max(width, 4)
		o.height = max(height, 4)
	}
}

// Color sets the color of the frame around the canvas.
func Color(c string) Option {
	return func(o *options) {
		o.color = lipgloss.Color(c)
	}
}

// Panel writes the titled preview of buttons to w. Colors are only
// written if w is a terminal which supports them.
func Panel(w io.Writer, title string, buttons []Button, opts ...Option) error {
	o := options{
		width:  78,
		height: 20,
		color:  lipgloss.Color("34"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := newCanvas(o.width, o.height)
	for _, b := range buttons {
		c.button(b)
	}

	r := lipgloss.NewRenderer(w)
	frame := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(o.color)
	heading := r.NewStyle().Bold(true)

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(
		lipgloss.Left,
		heading.Render(title),
		frame.Render(c.String()),
	))
	return err
}

// canvas is a grid of cells. A cell holds the string drawn in it; the
// cell following a double width rune holds the empty string.
type canvas struct {
	width  int
	height int
	cells  [][]string
}

func newCanvas(width, height int) *canvas {
	cells := make([][]string, height)
	for y := range cells {
		cells[y] = make([]string, width)
		for x := range cells[y] {
			cells[y][x] = " "
		}
	}
	return &canvas{width: width, height: height, cells: cells}
}

func scale(f float32, n int) int {
	return int(math.Round(float64(f) * float64(n)))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func (c *canvas) button(b Button) {
	x0 := clamp(scale(b.Position.X, c.width), 0, c.width-2)
	y0 := clamp(scale(b.Position.Y, c.height), 0, c.height-2)
	x1 := clamp(scale(b.Position.X+b.Size.Width, c.width)-1, x0+1, c.width-1)
	y1 := clamp(scale(b.Position.Y+b.Size.Height, c.height)-1, y0+1, c.height-1)

	border := lipgloss.NormalBorder()
	for x := x0 + 1; x < x1; x++ {
		c.cells[y0][x] = border.Top
		c.cells[y1][x] = border.Bottom
	}
	for y := y0 + 1; y < y1; y++ {
		c.cells[y][x0] = border.Left
		c.cells[y][x1] = border.Right
		for x := x0 + 1; x < x1; x++ {
			c.cells[y][x] = " "
		}
	}
	c.cells[y0][x0] = border.TopLeft
	c.cells[y0][x1] = border.TopRight
	c.cells[y1][x0] = border.BottomLeft
	c.cells[y1][x1] = border.BottomRight

	// a two row button has no inside, so the label goes on its top edge
	row := y0 + (y1-y0)/2
	if y1-y0 < 2 {
		row = y0
	}
	c.text(x0+1, row, x1-x0-1, b.Label)
}

// text writes s centered within the width cells starting at x,
// truncating it if it does not fit.
func (c *canvas) text(x, y, width int, s string) {
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	x += (width - runewidth.StringWidth(s)) / 2
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		c.cells[y][x] = string(r)
		if rw == 2 {
			c.cells[y][x+1] = ""
		}
		x += rw
	}
}

// String implements the fmt.Stringer interface.
func (c *canvas) String() string {
	var sb strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			sb.WriteString(cell)
		}
	}
	return sb.String()
}
