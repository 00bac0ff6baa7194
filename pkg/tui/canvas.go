package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ink is the style of one cell.
type ink struct {
	color lipgloss.Color
	bold  bool
}

type cell struct {
	r   rune
	ink ink
}

// canvas is a character grid. Terminal cells are about twice as tall as they
// are wide, so one row spans two screen units vertically.
type canvas struct {
	w, h  int
	cells []cell
}

const rowAspect = 2

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) set(x, y int, r rune, k ink) {
	if !c.in(x, y) {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, ink: k}
}

func (c *canvas) at(x, y int) rune {
	if !c.in(x, y) {
		return 0
	}
	return c.cells[y*c.w+x].r
}

// line draws a Bresenham segment, leaving both endpoints for the node glyphs.
func (c *canvas) line(x0, y0, x1, y1 int, r rune, k ink) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		if (x != x0 || y != y0) && (x != x1 || y != y1) {
			c.set(x, y, r, k)
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (c *canvas) text(x, y int, s string, k ink) {
	for _, r := range s {
		c.set(x, y, r, k)
		x++
	}
}

// String renders the grid, styling runs of equal ink together.
func (c *canvas) String() string {
	if c.w == 0 {
		return ""
	}
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		cur := c.cells[y*c.w].ink
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.ink != cur {
				b.WriteString(paint(run.String(), cur))
				run.Reset()
				cur = cl.ink
			}
			run.WriteRune(cl.r)
		}
		b.WriteString(paint(run.String(), cur))
		run.Reset()
	}
	return b.String()
}

func paint(s string, k ink) string {
	if s == "" || k.color == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(k.color).Bold(k.bold).Render(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
