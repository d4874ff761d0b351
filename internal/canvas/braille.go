// Package canvas provides pixel sinks for the rasterizer: a braille
// terminal buffer and an RGBA framebuffer.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille is a terminal canvas with a 2x4 micro-pixel grid per cell.
// Micro-pixel (0, 0) is the top-left dot of the top-left cell.
type Braille struct {
	w, h int             // in cells
	mask [][]uint8       // per-cell 8-bit dot mask
	ink  [][]color.Color // last color plotted into the cell

	marks map[image.Point]glyph // cell overlays
}

type glyph struct {
	r rune
	c color.Color
}

func NewBraille(w, h int) *Braille {
	w, h = max(w, 0), max(h, 0)
	mask := make([][]uint8, h)
	ink := make([][]color.Color, h)
	for i := range mask {
		mask[i] = make([]uint8, w)
		ink[i] = make([]color.Color, w)
	}
	return &Braille{w: w, h: h, mask: mask, ink: ink, marks: map[image.Point]glyph{}}
}

// Bounds returns the micro-pixel rectangle.
func (b *Braille) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.w*2, b.h*4)
}

// dotBits maps (column, row) inside a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Plot sets a micro-pixel. Pixels outside the canvas are dropped.
func (b *Braille) Plot(mx, my int, c color.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.mask[cy][cx] |= dotBits[rx][ry]
	if c != nil {
		b.ink[cy][cx] = c
	}
}

// Mark overlays the cell holding micro-pixel (mx, my) with r, hiding its
// dots. Later marks replace earlier ones.
func (b *Braille) Mark(mx, my int, r rune, c color.Color) {
	if !image.Pt(mx, my).In(b.Bounds()) {
		return
	}
	b.marks[image.Pt(mx/2, my/4)] = glyph{r: r, c: c}
}

// cell returns the rune and color shown at cell (x, y).
func (b *Braille) cell(x, y int) (rune, color.Color) {
	if g, ok := b.marks[image.Pt(x, y)]; ok {
		return g.r, g.c
	}
	if b.mask[y][x] == 0 {
		return ' ', nil
	}
	return rune(0x2800 + int(b.mask[y][x])), b.ink[y][x]
}

// Lit reports whether the micro-pixel is set.
func (b *Braille) Lit(mx, my int) bool {
	if !image.Pt(mx, my).In(b.Bounds()) {
		return false
	}
	return b.mask[my/4][mx/2]&dotBits[mx%2][my%4] != 0
}

// Lines returns one string per cell row, without color.
func (b *Braille) Lines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x], _ = b.cell(x, y)
		}
		out[y] = string(row)
	}
	return out
}

// Render returns the canvas with each run of same-colored cells styled.
func (b *Braille) Render() string {
	lines := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var runInk color.Color
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runInk == nil {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(Hex(runInk)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			r, ink := b.cell(x, y)
			if !sameColor(ink, runInk) {
				flush()
				runInk = ink
			}
			run = append(run, r)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// Hex converts c to a lipgloss color.
func Hex(c color.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B))
}
