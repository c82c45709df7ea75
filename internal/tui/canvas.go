package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ink selects the style a canvas cell is drawn with.
type ink uint8

const (
	inkBase ink = iota
	inkShape
	inkPreview
	inkError
	inkMarker
	inkTip
	inkHover
	inkPanel
	inkPanelOn
)

// canvas is a grid of runes, each tagged with an ink. Rendering groups
// runs of equal ink so each run is styled once.
type canvas struct {
	w, h int
	r    [][]rune
	k    [][]ink
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, r: make([][]rune, h), k: make([][]ink, h)}
	for y := range c.r {
		c.r[y] = []rune(strings.Repeat(" ", w))
		c.k[y] = make([]ink, w)
	}
	return c
}

func (c *canvas) in(x, y int) bool { return x >= 0 && y >= 0 && x < c.w && y < c.h }

func (c *canvas) set(x, y int, r rune, k ink) {
	if !c.in(x, y) {
		return
	}
	c.r[y][x] = r
	c.k[y][x] = k
}

func (c *canvas) at(x, y int) (rune, ink) {
	if !c.in(x, y) {
		return 0, inkBase
	}
	return c.r[y][x], c.k[y][x]
}

// blit copies every non-empty braille cell onto the canvas.
func (c *canvas) blit(b *brailleBuf, k ink) {
	for y := 0; y < b.h && y < c.h; y++ {
		for x := 0; x < b.w && x < c.w; x++ {
			if g := b.glyph(x, y); g != 0 {
				c.set(x, y, g, k)
			}
		}
	}
}

// text writes s starting at x, clipped to the canvas.
func (c *canvas) text(x, y int, s string, k ink) int {
	for _, r := range s {
		c.set(x, y, r, k)
		x++
	}
	return x
}

func (c *canvas) render(style func(ink) lipgloss.Style) string {
	var out strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.k[y][x] == c.k[y][start] {
				continue
			}
			run := string(c.r[y][start:x])
			if k := c.k[y][start]; k == inkBase {
				out.WriteString(run)
			} else {
				out.WriteString(style(k).Render(run))
			}
			start = x
		}
	}
	return out.String()
}

// String is the canvas without styling.
func (c *canvas) String() string {
	rows := make([]string, c.h)
	for y := range rows {
		rows[y] = string(c.r[y])
	}
	return strings.Join(rows, "\n")
}
