package render

import (
	"fmt"
	"math"

	"github.com/rileyhilliard/sentinel/internal/snapshot"
)

// Fixed panel texts.
const (
	TextSecure          = "Secure"
	TextSecureMessage   = "All protocols operational."
	TextUndetermined    = "Undetermined"
	TextNoAnomalies     = "Sentinel heartbeat stable. No recent anomalies."
	TextLive            = "Live"
	TextConnectionLost  = "Connection Lost"
	TextUnknownSeverity = "UNKNOWN"
)

// DefaultCardResponseDivisor scales response time onto the card bar.
const DefaultCardResponseDivisor = 5.0

// Options tunes the display conventions of the renderers.
type Options struct {
	// SparklineWindow is how many recent points sparklines show.
	SparklineWindow int
	// RadarResponseDivisor scales response time on the radar chart.
	RadarResponseDivisor float64
	// CardResponseDivisor scales response time on the metric card bar.
	CardResponseDivisor float64
}

// DefaultOptions returns the stock display conventions.
func DefaultOptions() Options {
	return Options{
		SparklineWindow:      snapshot.DefaultSparklineWindow,
		RadarResponseDivisor: snapshot.DefaultRadarResponseDivisor,
		CardResponseDivisor:  DefaultCardResponseDivisor,
	}
}

// Snapshot renders every panel for snap and marks the connection live.
func Snapshot(snap *snapshot.DashboardSnapshot, opts Options) []Command {
	var cmds []Command
	cmds = append(cmds, HealthPanel(snap.Health)...)
	cmds = append(cmds, RiskPanel(snap.Risk)...)
	cmds = append(cmds, MetricCards(snap.Metrics, opts)...)
	cmds = append(cmds, ChartPanels(snap.Metrics, opts)...)
	cmds = append(cmds, IncidentTable(snap.Incidents)...)
	cmds = append(cmds, Connection(true)...)
	return cmds
}

// HealthPanel renders the score, its bar, and the status label.
func HealthPanel(h snapshot.HealthSnapshot) []Command {
	style := ClassifyHealth(h.Score).Style()
	return []Command{
		SetText{Target: WidgetHealthValue, Text: fmt.Sprintf("%d", Round(h.Score))},
		SetFill{Target: WidgetHealthBar, Percent: h.Score},
		SetStyle{Target: WidgetHealthBar, Style: style},
		SetText{Target: WidgetHealthStatus, Text: h.Label},
		SetStyle{Target: WidgetHealthStatus, Style: style},
		SetStyle{Target: WidgetHealthPanel, Style: style},
	}
}

// RiskPanel renders the alert message, badge, and container style.
func RiskPanel(r snapshot.RiskSnapshot) []Command {
	state := ClassifyRisk(r)
	style := state.Style()

	status, msg := TextSecure, TextSecureMessage
	badgeText, badgeStyle := TextSecure, Style{Tone: ToneHealthy}
	if state != RiskSecure {
		label := r.SeverityLabel
		if label == "" {
			label = TextUnknownSeverity
		}
		status = label + " Alert"
		msg = *r.LatestIncident
		badgeText = label
		badgeStyle = SeverityBadge(r.Severity).Style()
	}

	return []Command{
		SetStyle{Target: WidgetRiskPanel, Style: style},
		SetText{Target: WidgetRiskStatus, Text: status},
		SetStyle{Target: WidgetRiskStatus, Style: style},
		SetText{Target: WidgetRiskMsg, Text: msg},
		SetText{Target: WidgetRiskIcon, Text: style.Icon},
		SetStyle{Target: WidgetRiskIcon, Style: style},
		SetText{Target: WidgetRiskBadge, Text: badgeText},
		SetStyle{Target: WidgetRiskBadge, Style: badgeStyle},
	}
}

// MetricCards renders the latest point's values and bars. With no points
// every card reads zero.
func MetricCards(h snapshot.MetricHistory, opts Options) []Command {
	latest, _ := h.Latest()

	div := opts.CardResponseDivisor
	if div <= 0 {
		div = DefaultCardResponseDivisor
	}
	rtFill := math.Min(100, latest.ResponseTimeMs/div)

	var cmds []Command
	cmds = append(cmds, card(WidgetCPUValue, WidgetCPUBar, fmt.Sprintf("%d%%", Round(latest.CPU)), latest.CPU)...)
	cmds = append(cmds, card(WidgetMemValue, WidgetMemBar, fmt.Sprintf("%d%%", Round(latest.Memory)), latest.Memory)...)
	cmds = append(cmds, card(WidgetDiskValue, WidgetDiskBar, fmt.Sprintf("%d%%", Round(latest.Disk)), latest.Disk)...)
	cmds = append(cmds, card(WidgetRTValue, WidgetRTBar, fmt.Sprintf("%d ms", Round(latest.ResponseTimeMs)), rtFill)...)
	return cmds
}

func card(valueID, barID, text string, fill float64) []Command {
	style := Style{Tone: LoadTone(fill)}
	return []Command{
		SetText{Target: valueID, Text: text},
		SetStyle{Target: valueID, Style: style},
		SetFill{Target: barID, Percent: fill},
		SetStyle{Target: barID, Style: style},
	}
}

// ChartPanels replaces every chart's series from the metrics window and
// redraws without animation. With no points the charts keep what they show.
func ChartPanels(h snapshot.MetricHistory, opts Options) []Command {
	latest, ok := h.Latest()
	if !ok {
		return nil
	}

	window := opts.SparklineWindow
	if window <= 0 {
		window = snapshot.DefaultSparklineWindow
	}

	chrono := h.Chronological()
	cpu := snapshot.Series(chrono, snapshot.CPU)
	mem := snapshot.Series(chrono, snapshot.Memory)
	spark := snapshot.SparklineWindow(chrono, window)
	radar := snapshot.RadarTuple(latest, opts.RadarResponseDivisor)

	return []Command{
		ReplaceSeries{Chart: ChartTimeline, Dataset: DatasetCPU, Values: cpu},
		ReplaceSeries{Chart: ChartTimeline, Dataset: DatasetMemory, Values: mem},
		Redraw{Chart: ChartTimeline, Animate: false},

		ReplaceSeries{Chart: ChartRadar, Dataset: 0, Values: radar[:]},
		Redraw{Chart: ChartRadar, Animate: false},

		ReplaceSeries{Chart: ChartCPUSpark, Dataset: 0, Values: snapshot.Series(spark, snapshot.CPU)},
		Redraw{Chart: ChartCPUSpark, Animate: false},
		ReplaceSeries{Chart: ChartMemSpark, Dataset: 0, Values: snapshot.Series(spark, snapshot.Memory)},
		Redraw{Chart: ChartMemSpark, Animate: false},
	}
}

// IncidentTable renders one row per incident, or a single placeholder row
// when there are none.
func IncidentTable(incidents []snapshot.Incident) []Command {
	if len(incidents) == 0 {
		return []Command{SetRows{Rows: []Row{{
			Cells:       []Cell{{Text: TextNoAnomalies, Style: Style{Tone: ToneMuted}}},
			Placeholder: true,
		}}}}
	}

	rows := make([]Row, 0, len(incidents))
	for _, inc := range incidents {
		rows = append(rows, IncidentRow(inc))
	}
	return []Command{SetRows{Rows: rows}}
}

// IncidentRow builds the cells for one incident:
// id, severity badge, root cause, created at, status indicator.
func IncidentRow(inc snapshot.Incident) Row {
	sevText := inc.SeverityLabel
	if sevText == "" {
		sevText = TextUnknownSeverity
	}
	cause := TextUndetermined
	if inc.RootCause != nil {
		cause = *inc.RootCause
	}
	statusText := inc.StatusLabel
	if statusText == "" {
		statusText = string(snapshot.IncidentUnknown)
	}

	return Row{Cells: []Cell{
		{Text: fmt.Sprintf("#%d", inc.ID), Style: Style{Tone: ToneMuted}},
		{Text: sevText, Style: SeverityBadge(inc.Severity).Style()},
		{Text: cause},
		{Text: inc.CreatedAt, Style: Style{Tone: ToneMuted}},
		{Text: statusText, Style: IncidentActivity(inc.Status).Style()},
	}}
}

// Connection renders the connectivity indicator. A failed cycle renders the
// lost state and touches nothing else, so the panels keep the last
// committed values.
func Connection(live bool) []Command {
	if live {
		return []Command{
			SetText{Target: WidgetConnStatus, Text: TextLive},
			SetStyle{Target: WidgetConnStatus, Style: Style{Tone: ToneHealthy, Icon: "◉"}},
		}
	}
	return []Command{
		SetText{Target: WidgetConnStatus, Text: TextConnectionLost},
		SetStyle{Target: WidgetConnStatus, Style: Style{Tone: ToneCritical, Icon: "◌", Pulse: true}},
	}
}

// Round rounds halves up. Every surface that prints a score or a load value
// uses it so the dashboard and the text output agree at .5.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
