package render

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/sentinel/internal/errors"
)

// Widget identifiers the dashboard expects to find.
const (
	WidgetHealthValue  = "health-val"
	WidgetHealthBar    = "health-bar"
	WidgetHealthStatus = "health-status"
	WidgetHealthPanel  = "health-panel"

	WidgetRiskPanel  = "risk-panel"
	WidgetRiskStatus = "risk-status"
	WidgetRiskMsg    = "risk-msg"
	WidgetRiskIcon   = "risk-icon"
	WidgetRiskBadge  = "risk-badge"

	WidgetCPUValue  = "cpu-val"
	WidgetCPUBar    = "cpu-bar"
	WidgetMemValue  = "mem-val"
	WidgetMemBar    = "mem-bar"
	WidgetDiskValue = "disk-val"
	WidgetDiskBar   = "disk-bar"
	WidgetRTValue   = "rt-val"
	WidgetRTBar     = "rt-bar"

	WidgetConnStatus = "conn-status"
	WidgetClock      = "current-time"

	ChartTimeline = "main-timeline-chart"
	ChartRadar    = "radar-chart"
	ChartCPUSpark = "cpu-sparkline"
	ChartMemSpark = "mem-sparkline"

	TableIncidents = "incident-rows"
)

// Timeline dataset indexes.
const (
	DatasetCPU    = 0
	DatasetMemory = 1
)

// SinkIDs lists every text/style widget the renderers write to.
var SinkIDs = []string{
	WidgetHealthValue, WidgetHealthBar, WidgetHealthStatus, WidgetHealthPanel,
	WidgetRiskPanel, WidgetRiskStatus, WidgetRiskMsg, WidgetRiskIcon, WidgetRiskBadge,
	WidgetCPUValue, WidgetCPUBar, WidgetMemValue, WidgetMemBar,
	WidgetDiskValue, WidgetDiskBar, WidgetRTValue, WidgetRTBar,
	WidgetConnStatus, WidgetClock,
}

// ChartIDs lists every chart widget the renderers write to.
var ChartIDs = []string{ChartTimeline, ChartRadar, ChartCPUSpark, ChartMemSpark}

// Registry is implemented by the presentation layer to expose its widgets.
type Registry interface {
	Sink(id string) (Sink, bool)
	Chart(id string) (Chart, bool)
	Table(id string) (Table, bool)
}

// Targets is the resolved set of widgets. It is built once at startup and
// passed explicitly to whoever renders.
type Targets struct {
	sinks     map[string]Sink
	charts    map[string]Chart
	incidents Table
}

// Resolve looks up every widget the renderers need. A missing widget is an
// integration error reported before the first sync.
func Resolve(reg Registry) (*Targets, error) {
	t := &Targets{
		sinks:  make(map[string]Sink, len(SinkIDs)),
		charts: make(map[string]Chart, len(ChartIDs)),
	}

	var missing []string
	for _, id := range SinkIDs {
		s, ok := reg.Sink(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		t.sinks[id] = s
	}
	for _, id := range ChartIDs {
		c, ok := reg.Chart(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		t.charts[id] = c
	}
	table, ok := reg.Table(TableIncidents)
	if !ok {
		missing = append(missing, TableIncidents)
	}
	t.incidents = table

	if len(missing) > 0 {
		return nil, errors.New(errors.ErrRender,
			fmt.Sprintf("Render targets missing: %s", strings.Join(missing, ", ")),
			"Every widget must be registered before the first sync")
	}
	return t, nil
}

// Sink returns the resolved sink for id, or nil.
func (t *Targets) Sink(id string) Sink {
	return t.sinks[id]
}

// Chart returns the resolved chart for id, or nil.
func (t *Targets) Chart(id string) Chart {
	return t.charts[id]
}

// Incidents returns the incident table.
func (t *Targets) Incidents() Table {
	return t.incidents
}
