package monitor

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sentinel/internal/engine"
	"github.com/rileyhilliard/sentinel/internal/render"
)

const defaultWidth = 100

// Width breakpoints for layout modes
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
)

// LayoutMode represents the responsive layout mode based on terminal width.
type LayoutMode int

const (
	// LayoutMinimal stacks every panel in one column.
	LayoutMinimal LayoutMode = iota
	// LayoutCompact puts panels side by side but stacks the charts.
	LayoutCompact
	// LayoutStandard puts the timeline and radar side by side.
	LayoutStandard
)

// LayoutFor picks a layout for a terminal width.
func LayoutFor(width int) LayoutMode {
	switch {
	case width >= BreakpointStandard:
		return LayoutStandard
	case width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// radarAxes are the radar chart axis labels, in dataset order.
var radarAxes = []string{"CPU", "RAM", "ERR", "DISK", "LAT"}

// headerInfo is the engine state shown in the header.
type headerInfo struct {
	backend string
	status  engine.Status
	latency *LatencyHistory
	now     time.Time
}

// boardView renders a Board at a given width. frame drives pulsing
// widgets and the in-flight spinner.
type boardView struct {
	board *Board
	width int
	frame int
}

func (v boardView) w() int {
	if v.width <= 0 {
		return defaultWidth
	}
	return v.width
}

func (v boardView) text(id string) string {
	return v.board.Text(id).Text()
}

func (v boardView) styled(id string) string {
	w := v.board.Text(id)
	return StyleFor(w.Style(), v.frame).Render(w.Text())
}

// body renders every panel below the header.
func (v boardView) body() string {
	w := v.w()
	layout := LayoutFor(w)

	var rows []string
	if layout == LayoutMinimal {
		rows = append(rows, v.healthPanel(w), v.riskPanel(w))
		rows = append(rows, v.cards(w)...)
		rows = append(rows, v.timelinePanel(w), v.radarPanel(w))
	} else {
		left, right := split2(w)
		rows = append(rows, joinRow(v.healthPanel(left), v.riskPanel(right)))

		cards := v.cards4(w)
		rows = append(rows, joinRow(cards...))

		if layout == LayoutStandard {
			tw := w * 3 / 5
			rows = append(rows, joinRow(v.timelinePanel(tw), v.radarPanel(w-tw-1)))
		} else {
			rows = append(rows, v.timelinePanel(w), v.radarPanel(w))
		}
	}
	rows = append(rows, v.incidentPanel(w))

	return strings.Join(rows, "\n")
}

func (v boardView) healthPanel(w int) string {
	panel := v.board.Text(render.WidgetHealthPanel).Style()
	bar := v.board.Text(render.WidgetHealthBar)

	score := v.text(render.WidgetHealthValue)
	if score == "" {
		score = "--"
	}
	value := StyleFor(panel, v.frame).Bold(true).Render(score) + MutedStyle.Render(" / 100")

	lines := []string{
		value,
		healthBar(w-4, bar.Fill(), ToneColor(bar.Style().Tone)),
	}
	return Section("SYSTEM HEALTH", v.styled(render.WidgetHealthStatus), lines, w, panelBorder(panel))
}

func (v boardView) riskPanel(w int) string {
	panel := v.board.Text(render.WidgetRiskPanel).Style()
	status := StyleFor(panel, v.frame).Render(v.text(render.WidgetRiskIcon) + " " + v.text(render.WidgetRiskStatus))
	msg := LabelStyle.Render(v.text(render.WidgetRiskMsg))

	badge := v.board.Text(render.WidgetRiskBadge)
	badgeText := badgeStyle(badge.Style()).Render(badge.Text())

	return Section("THREAT STATUS", badgeText, []string{status, msg}, w, panelBorder(panel))
}

func badgeStyle(s render.Style) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ColorDarkBg).
		Background(ToneColor(s.Tone)).
		Bold(true).
		Padding(0, 1)
}

type cardSpec struct {
	title string
	value string
	bar   string
	spark string
}

var cardSpecs = []cardSpec{
	{"CPU", render.WidgetCPUValue, render.WidgetCPUBar, render.ChartCPUSpark},
	{"MEMORY", render.WidgetMemValue, render.WidgetMemBar, render.ChartMemSpark},
	{"DISK", render.WidgetDiskValue, render.WidgetDiskBar, ""},
	{"RESPONSE", render.WidgetRTValue, render.WidgetRTBar, ""},
}

func (v boardView) card(spec cardSpec, w int) string {
	bar := v.board.Text(spec.bar)
	color := ToneColor(bar.Style().Tone)

	value := v.text(spec.value)
	if value == "" {
		value = "--"
	}
	lines := []string{ProgressBar(w-4, bar.Fill(), color)}
	if spec.spark != "" {
		series := v.board.ChartWidget(spec.spark).Series(0)
		lines = append(lines, loadSparkline(series, w-4))
	} else {
		lines = append(lines, "")
	}

	valueText := lipgloss.NewStyle().Foreground(color).Bold(true).Render(value)
	return Section(spec.title, valueText, lines, w, ColorBorder)
}

func (v boardView) cards(w int) []string {
	out := make([]string, len(cardSpecs))
	for i, spec := range cardSpecs {
		out[i] = v.card(spec, w)
	}
	return out
}

func (v boardView) cards4(w int) []string {
	cw := (w - 3) / 4
	out := make([]string, len(cardSpecs))
	for i, spec := range cardSpecs {
		width := cw
		if i == len(cardSpecs)-1 {
			width = w - 3 - cw*3
		}
		out[i] = v.card(spec, width)
	}
	return out
}

// timelineHeight is the canvas height in rows.
const timelineHeight = 6

func (v boardView) timelinePanel(w int) string {
	chart := v.board.ChartWidget(render.ChartTimeline)
	datasets := []struct {
		index int
		label string
		color lipgloss.Color
	}{
		{render.DatasetCPU, "CPU", ColorGraph},
		{render.DatasetMemory, "RAM", ColorGraphMemory},
	}

	var legend []string
	var visible []timelineSeries
	shown := 0
	for _, ds := range datasets {
		if !chart.Visible(ds.index) {
			legend = append(legend, MutedStyle.Render("○ "+ds.label))
			continue
		}
		shown++
		legend = append(legend, lipgloss.NewStyle().Foreground(ds.color).Render("● "+ds.label))
		if series := chart.Series(ds.index); len(series) > 0 {
			visible = append(visible, timelineSeries{values: series, color: ds.color})
		}
	}

	var lines []string
	switch {
	case shown == 0:
		lines = []string{MutedStyle.Render("all datasets hidden (press a)")}
	case len(visible) == 0:
		lines = []string{MutedStyle.Render("waiting for data")}
	default:
		lines = renderTimeline(visible, w-4, timelineHeight)
	}

	return Section("TIMELINE", strings.Join(legend, " "), lines, w, ColorBorder)
}

func (v boardView) radarPanel(w int) string {
	values := v.board.ChartWidget(render.ChartRadar).Series(0)

	barWidth := w - 4 - 5 - 5
	if barWidth < 1 {
		barWidth = 1
	}
	lines := make([]string, 0, len(radarAxes))
	for i, axis := range radarAxes {
		var val float64
		if i < len(values) {
			val = values[i]
		}
		label := LabelStyle.Width(5).Render(axis)
		num := ValueStyle.Render(fmt.Sprintf("%4.0f", val))
		lines = append(lines, label+ProgressBar(barWidth, val, ColorGraph)+" "+num)
	}
	return Section("RADAR", "", lines, w, ColorBorder)
}

// Incident table column widths; root cause takes what is left.
const (
	colID      = 6
	colSev     = 10
	colCreated = 20
	colStatus  = 10

	// below this inner width the created column is dropped
	incidentWideInner = 70
)

var incidentHeader = []string{"ID", "SEVERITY", "ROOT CAUSE", "CREATED", "STATUS"}

// incidentColumns returns per-column widths; 0 hides a column.
func incidentColumns(inner int) []int {
	created := colCreated
	if inner < incidentWideInner {
		created = 0
	}
	shown := 4
	if created > 0 {
		shown = 5
	}
	cause := inner - colID - colSev - created - colStatus - (shown - 1)
	if cause < 8 {
		cause = 8
	}
	return []int{colID, colSev, cause, created, colStatus}
}

func (v boardView) incidentPanel(w int) string {
	widths := incidentColumns(w - 4)

	var headCells []string
	for i, h := range incidentHeader {
		if widths[i] == 0 {
			continue
		}
		headCells = append(headCells, LabelStyle.Bold(true).Width(widths[i]).Render(fit(h, widths[i])))
	}
	lines := []string{strings.Join(headCells, " ")}

	count := 0
	for _, row := range v.board.Incidents().Rows() {
		if row.Placeholder {
			text := ""
			if len(row.Cells) > 0 {
				text = row.Cells[0].Text
			}
			lines = append(lines, MutedStyle.Render(text))
			continue
		}
		count++
		var cells []string
		for i, cell := range row.Cells {
			if i >= len(widths) || widths[i] == 0 {
				continue
			}
			text := cell.Text
			if cell.Style.Icon != "" {
				text = cell.Style.Icon + " " + text
			}
			st := StyleFor(cell.Style, v.frame)
			if i == 1 {
				st = badgeStyle(cell.Style).Padding(0)
			}
			cells = append(cells, st.Width(widths[i]).Render(fit(text, widths[i])))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return Section("INCIDENT LOG", ValueStyle.Render(fmt.Sprintf("%d", count)), lines, w, ColorBorder)
}

// header renders the top bar: title, backend, connection, freshness,
// cycle counters, latency and clock.
func (v boardView) header(info headerInfo) string {
	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("sentinel")

	conn := v.board.Text(render.WidgetConnStatus)
	connText := conn.Text()
	if connText == "" {
		connText = "Connecting"
	}
	connPart := StyleFor(conn.Style(), v.frame).Render(strings.TrimSpace(conn.Style().Icon + " " + connText))
	if info.status.InFlight {
		connPart += " " + lipgloss.NewStyle().Foreground(ColorWarning).Render(GetRunningSpinner(v.frame))
	}

	parts := []string{title}
	if info.backend != "" {
		parts = append(parts, LabelStyle.Render(backendHost(info.backend)))
	}
	parts = append(parts,
		connPart,
		LabelStyle.Render("updated "+sinceText(info.status.LastCommit, info.now)),
		LabelStyle.Render(fmt.Sprintf("ok %d  fail %d", info.status.Committed, info.status.Failed)),
	)
	if info.latency != nil {
		if last, ok := info.latency.Latest(); ok {
			spark := sparkline(info.latency.Last(10), 10)
			parts = append(parts, LabelStyle.Render(fmt.Sprintf("%s %dms", spark, render.Round(last))))
		}
	}

	sep := MutedStyle.Render(" | ")
	left := strings.Join(parts, sep)
	clock := ValueStyle.Bold(true).Render(v.text(render.WidgetClock))

	gap := v.w() - lipgloss.Width(left) - lipgloss.Width(clock) - 2
	if gap < 1 {
		gap = 1
	}
	return HeaderStyle.Render(left + strings.Repeat(" ", gap) + clock)
}

// footerHelp renders the footer hints from the key map.
var footerHelp = func() help.Model {
	h := help.New()
	h.ShortSeparator = " | "
	h.Styles.ShortKey = LabelStyle
	h.Styles.ShortDesc = MutedStyle
	h.Styles.ShortSeparator = MutedStyle
	return h
}()

// renderFooter renders the keyboard hint footer.
func renderFooter(width int) string {
	h := footerHelp
	h.Width = width
	return FooterStyle.Render(h.ShortHelpView(keys.ShortHelp()))
}

// sinceText formats the age of the last commit.
func sinceText(last, now time.Time) string {
	if last.IsZero() {
		return "never"
	}
	secs := int(now.Sub(last).Seconds())
	switch {
	case secs <= 0:
		return "just now"
	case secs == 1:
		return "1s ago"
	default:
		return fmt.Sprintf("%ds ago", secs)
	}
}

// backendHost shortens a backend URL to its host for the header.
func backendHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// fit truncates plain text to w cells so a fixed-width cell never wraps.
func fit(text string, w int) string {
	if lipgloss.Width(text) <= w {
		return text
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(text)
}

func split2(w int) (int, int) {
	left := (w - 1) / 2
	return left, w - 1 - left
}

func joinRow(panels ...string) string {
	spaced := make([]string, 0, len(panels)*2)
	for i, p := range panels {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, p)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}
