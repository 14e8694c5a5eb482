package monitor

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sentinel/internal/render"
)

// The timeline is drawn on a braille canvas. Each terminal cell holds a 2x4
// dot grid, so a canvas of w x h cells has 2w x 4h addressable dots.
//
//	col:   0  1
//	row 0: ⠁  ⠈
//	row 1: ⠂  ⠐
//	row 2: ⠄  ⠠
//	row 3: ⡀  ⢀

const brailleBlank = '\u2800'

// dotBit[row][col] is the bit that lights one dot of a braille cell.
var dotBit = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

var blockLevels = []rune("▁▂▃▄▅▆▇█")

// valueRange is the y-range a series is scaled into.
type valueRange struct {
	lo, hi float64
}

var percentRange = valueRange{lo: 0, hi: 100}

// rangeOf is percentRange when every value is a percentage, otherwise the
// min and max over all the series.
func rangeOf(series ...[]float64) valueRange {
	r := valueRange{lo: math.Inf(1), hi: math.Inf(-1)}
	for _, s := range series {
		for _, v := range s {
			r.lo = math.Min(r.lo, v)
			r.hi = math.Max(r.hi, v)
		}
	}
	if math.IsInf(r.lo, 1) || (r.lo >= 0 && r.hi <= 100) {
		return percentRange
	}
	return r
}

// frac maps v into [0, 1]. A flat range maps everything to the middle.
func (r valueRange) frac(v float64) float64 {
	if r.hi <= r.lo {
		return 0.5
	}
	return math.Max(0, math.Min(1, (v-r.lo)/(r.hi-r.lo)))
}

// canvas is a braille dot grid with one ink color per cell.
type canvas struct {
	w, h  int
	cells [][]rune
	ink   [][]lipgloss.Color
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h), ink: make([][]lipgloss.Color, h)}
	for row := range c.cells {
		c.cells[row] = []rune(strings.Repeat(string(brailleBlank), w))
		c.ink[row] = make([]lipgloss.Color, w)
	}
	return c
}

func (c *canvas) dots() (int, int) {
	return c.w * 2, c.h * 4
}

// set lights the dot at (x, y) with y counted up from the bottom edge.
// Out of range dots are ignored.
func (c *canvas) set(x, y int, color lipgloss.Color) {
	dw, dh := c.dots()
	if x < 0 || x >= dw || y < 0 || y >= dh {
		return
	}
	row, col := c.h-1-y/4, x/2
	c.cells[row][col] |= dotBit[3-y%4][x%2]
	c.ink[row][col] = color
}

func (c *canvas) line(x0, y0, x1, y1 int, color lipgloss.Color) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.set(x0, y0, color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(x0+int(math.Round(t*float64(dx))), y0+int(math.Round(t*float64(dy))), color)
	}
}

// plot draws series as a connected line spread across the full width, oldest
// point at the left. Only the newest points that fit are drawn.
func (c *canvas) plot(series []float64, r valueRange, color lipgloss.Color) {
	dw, dh := c.dots()
	if len(series) > dw {
		series = series[len(series)-dw:]
	}
	n := len(series)
	if n == 0 {
		return
	}

	point := func(i int) (int, int) {
		x := dw - 1
		if n > 1 {
			x = int(math.Round(float64(i) * float64(dw-1) / float64(n-1)))
		}
		return x, int(math.Round(r.frac(series[i]) * float64(dh-1)))
	}

	px, py := point(0)
	c.set(px, py, color)
	for i := 1; i < n; i++ {
		x, y := point(i)
		c.line(px, py, x, y, color)
		px, py = x, y
	}
}

func (c *canvas) rows() []string {
	out := make([]string, c.h)
	for row := range c.cells {
		var b strings.Builder
		for col, cell := range c.cells[row] {
			style := lipgloss.NewStyle().Background(ColorSurfaceBg)
			if ink := c.ink[row][col]; ink != "" {
				style = style.Foreground(ink)
			}
			b.WriteString(style.Render(string(cell)))
		}
		out[row] = b.String()
	}
	return out
}

// timelineSeries is one visible dataset on the timeline.
type timelineSeries struct {
	values []float64
	color  lipgloss.Color
}

// renderTimeline overlays every dataset on one canvas with a y-axis gutter
// on the left. Where lines cross, the dataset drawn last owns the cell color.
func renderTimeline(datasets []timelineSeries, width, height int) []string {
	const gutter = 4
	if width <= gutter || height <= 0 {
		return nil
	}

	all := make([][]float64, len(datasets))
	for i, ds := range datasets {
		all[i] = ds.values
	}
	r := rangeOf(all...)

	c := newCanvas(width-gutter, height)
	for _, ds := range datasets {
		c.plot(ds.values, r, ds.color)
	}

	lines := c.rows()
	for row := range lines {
		label := ""
		switch row {
		case 0:
			label = fmt.Sprintf("%.0f", r.hi)
		case height - 1:
			label = fmt.Sprintf("%.0f", r.lo)
		}
		lines[row] = MutedStyle.Render(fmt.Sprintf("%*s ", gutter-1, label)) + lines[row]
	}
	return lines
}

// sparkline draws the newest width values as block characters, right
// aligned so the latest value is always the last rune.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	r := rangeOf(values)
	top := len(blockLevels) - 1
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(values)))
	for _, v := range values {
		b.WriteRune(blockLevels[int(math.Round(r.frac(v)*float64(top)))])
	}
	return b.String()
}

// loadSparkline is a percentage sparkline tinted by the load of its latest
// value.
func loadSparkline(values []float64, width int) string {
	s := sparkline(values, width)
	if s == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(MetricColor(values[len(values)-1])).Render(s)
}

// healthBar fills cells left to right, each tinted by the health band at
// its position. The last filled cell takes tone so the bar ends in the
// panel's own color.
func healthBar(width int, percent float64, tone lipgloss.Color) string {
	width = max(width, 1)
	filled := int(clampPercent(percent) / 100 * float64(width))

	empty := lipgloss.NewStyle().Foreground(ColorTextMuted).Background(ColorSurfaceBg)
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i >= filled {
			b.WriteString(empty.Render("░"))
			continue
		}
		color := ToneColor(render.ClassifyHealth(float64(i+1) / float64(width) * 100).Style().Tone)
		if i == filled-1 {
			color = tone
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Background(ColorSurfaceBg).Render("█"))
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
