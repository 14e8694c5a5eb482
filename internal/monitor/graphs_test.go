package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestRangeOf(t *testing.T) {
	tests := []struct {
		name   string
		series [][]float64
		want   valueRange
	}{
		{"empty", nil, percentRange},
		{"percentages", [][]float64{{10, 90}, {0, 100}}, percentRange},
		{"milliseconds", [][]float64{{120, 480}}, valueRange{lo: 120, hi: 480}},
		{"across series", [][]float64{{150}, {-5, 20}}, valueRange{lo: -5, hi: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rangeOf(tt.series...))
		})
	}
}

func TestValueRange_Frac(t *testing.T) {
	r := valueRange{lo: 100, hi: 300}
	assert.Equal(t, 0.0, r.frac(100))
	assert.Equal(t, 0.5, r.frac(200))
	assert.Equal(t, 1.0, r.frac(300))
	assert.Equal(t, 0.0, r.frac(50), "clamped below")
	assert.Equal(t, 1.0, r.frac(999), "clamped above")

	flat := valueRange{lo: 7, hi: 7}
	assert.Equal(t, 0.5, flat.frac(7))
}

func TestCanvas_Set(t *testing.T) {
	c := newCanvas(1, 1)

	c.set(0, 0, ColorGraph)
	assert.Equal(t, brailleBlank|0x40, c.cells[0][0], "bottom left dot")

	c.set(1, 3, ColorGraph)
	assert.Equal(t, brailleBlank|0x40|0x08, c.cells[0][0], "top right dot added")
	assert.Equal(t, ColorGraph, c.ink[0][0])

	c.set(2, 0, ColorGraph)
	c.set(0, 4, ColorGraph)
	c.set(-1, 0, ColorGraph)
	assert.Equal(t, brailleBlank|0x40|0x08, c.cells[0][0], "out of range ignored")
}

func TestCanvas_SetRowsCountFromBottom(t *testing.T) {
	c := newCanvas(1, 2)
	c.set(0, 0, ColorGraph)
	c.set(0, 7, ColorGraph)

	assert.Equal(t, brailleBlank|0x01, c.cells[0][0], "y=7 is the top row")
	assert.Equal(t, brailleBlank|0x40, c.cells[1][0], "y=0 is the bottom row")
}

func TestCanvas_PlotConnectsPoints(t *testing.T) {
	c := newCanvas(1, 1)
	c.plot([]float64{0, 100}, percentRange, ColorGraph)

	// (0,0) to (1,3) passes through (0,1) and (1,2)
	assert.Equal(t, brailleBlank|0x40|0x04|0x10|0x08, c.cells[0][0])
}

func TestCanvas_PlotKeepsNewestPoints(t *testing.T) {
	c := newCanvas(1, 1)
	// only the last two points fit; both are 0
	c.plot([]float64{100, 100, 0, 0}, percentRange, ColorGraph)

	assert.Equal(t, brailleBlank|0x40|0x80, c.cells[0][0])
}

func TestCanvas_PlotSinglePointAtRightEdge(t *testing.T) {
	c := newCanvas(2, 1)
	c.plot([]float64{0}, percentRange, ColorGraph)

	assert.Equal(t, brailleBlank, c.cells[0][0])
	assert.Equal(t, brailleBlank|0x80, c.cells[0][1])
}

func TestCanvas_LaterSeriesOwnsSharedCells(t *testing.T) {
	c := newCanvas(2, 1)
	c.plot([]float64{50, 50}, percentRange, ColorGraph)
	c.plot([]float64{50, 50}, percentRange, ColorGraphMemory)

	assert.Equal(t, ColorGraphMemory, c.ink[0][0])
	assert.Equal(t, ColorGraphMemory, c.ink[0][1])
}

func TestRenderTimeline(t *testing.T) {
	lines := renderTimeline([]timelineSeries{
		{values: []float64{10, 40, 80}, color: ColorGraph},
		{values: []float64{30, 30, 35}, color: ColorGraphMemory},
	}, 40, 5)

	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 40, lipgloss.Width(line))
	}
	assert.Contains(t, lines[0], "100")
	assert.Contains(t, lines[4], "0")
}

func TestRenderTimeline_TooNarrow(t *testing.T) {
	assert.Nil(t, renderTimeline([]timelineSeries{{values: []float64{1}}}, 4, 3))
	assert.Nil(t, renderTimeline([]timelineSeries{{values: []float64{1}}}, 20, 0))
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"empty", nil, 5, ""},
		{"zero width", []float64{1}, 0, ""},
		{"right aligned", []float64{0, 100}, 5, "   ▁█"},
		{"keeps newest", []float64{100, 0, 100}, 2, "▁█"},
		{"scales non-percent", []float64{100, 200, 300}, 3, "▁▅█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sparkline(tt.values, tt.width))
		})
	}
}

func TestLoadSparkline(t *testing.T) {
	assert.Empty(t, loadSparkline(nil, 10))

	out := loadSparkline([]float64{20, 95}, 10)
	assert.Contains(t, out, "\x1b[", "tinted")
	assert.Contains(t, out, "█")
}

func TestHealthBar(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-10, 0},
	}

	for _, tt := range tests {
		out := healthBar(10, tt.percent, ColorSuccess)
		assert.Equal(t, tt.filled, strings.Count(out, "█"), "percent %.0f", tt.percent)
		assert.Equal(t, 10-tt.filled, strings.Count(out, "░"), "percent %.0f", tt.percent)
	}
}

func TestHealthBar_MinimumWidth(t *testing.T) {
	out := healthBar(0, 100, ColorSuccess)
	assert.Equal(t, 1, strings.Count(out, "█"))
}
