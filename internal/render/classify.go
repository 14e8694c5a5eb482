package render

import "github.com/rileyhilliard/sentinel/internal/snapshot"

// Health score boundaries.
const (
	HealthyAbove  = 70.0
	DegradedAbove = 40.0
)

// Utilization thresholds for metric bars.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// HealthState is the visual state of the health panel.
type HealthState int

const (
	HealthStateCritical HealthState = iota
	HealthStateDegraded
	HealthStateHealthy
)

// String returns the state name.
func (s HealthState) String() string {
	switch s {
	case HealthStateHealthy:
		return "HEALTHY"
	case HealthStateDegraded:
		return "DEGRADED"
	default:
		return "CRITICAL"
	}
}

// ClassifyHealth maps a score to a state: above 70 is healthy, above 40 is
// degraded, anything else is critical.
func ClassifyHealth(score float64) HealthState {
	switch {
	case score > HealthyAbove:
		return HealthStateHealthy
	case score > DegradedAbove:
		return HealthStateDegraded
	default:
		return HealthStateCritical
	}
}

// Style returns the widget style for the state.
func (s HealthState) Style() Style {
	switch s {
	case HealthStateHealthy:
		return Style{Tone: ToneHealthy}
	case HealthStateDegraded:
		return Style{Tone: ToneWarning}
	default:
		return Style{Tone: ToneCritical, Emphasis: true}
	}
}

// RiskState is the visual state of the risk panel.
type RiskState int

const (
	RiskSecure RiskState = iota
	RiskAlertLow
	RiskAlertHigh
)

// String returns the state name.
func (s RiskState) String() string {
	switch s {
	case RiskAlertHigh:
		return "ALERT-high"
	case RiskAlertLow:
		return "ALERT-low"
	default:
		return "SECURE"
	}
}

// ClassifyRisk is secure exactly when no incident is present, whatever the
// severity says. With an incident, HIGH and CRITICAL raise a high alert and
// everything else a low one.
func ClassifyRisk(r snapshot.RiskSnapshot) RiskState {
	if !r.HasIncident() {
		return RiskSecure
	}
	switch r.Severity {
	case snapshot.SeverityHigh, snapshot.SeverityCritical:
		return RiskAlertHigh
	default:
		return RiskAlertLow
	}
}

// Style returns the container style for the state, icon included.
func (s RiskState) Style() Style {
	switch s {
	case RiskAlertHigh:
		return Style{Tone: ToneCritical, Icon: "▲", Emphasis: true}
	case RiskAlertLow:
		return Style{Tone: ToneWarning, Icon: "◆"}
	default:
		return Style{Tone: ToneHealthy, Icon: "✓"}
	}
}

// Badge is the color family of a severity badge.
type Badge int

const (
	BadgeSky Badge = iota
	BadgeAmber
	BadgeOrange
	BadgeRose
)

// SeverityBadge picks a badge color for a severity. Unknown severities get
// the default sky badge.
func SeverityBadge(sev snapshot.Severity) Badge {
	switch sev {
	case snapshot.SeverityCritical:
		return BadgeRose
	case snapshot.SeverityHigh:
		return BadgeOrange
	case snapshot.SeverityMedium:
		return BadgeAmber
	default:
		return BadgeSky
	}
}

// Style returns the badge style.
func (b Badge) Style() Style {
	switch b {
	case BadgeRose:
		return Style{Tone: ToneCritical}
	case BadgeOrange:
		return Style{Tone: ToneOrange}
	case BadgeAmber:
		return Style{Tone: ToneWarning}
	default:
		return Style{Tone: ToneInfo}
	}
}

// Activity is whether an incident indicator is live.
type Activity int

const (
	Inactive Activity = iota
	Active
)

// IncidentActivity is Active only for OPEN incidents.
func IncidentActivity(status snapshot.IncidentStatus) Activity {
	if status == snapshot.IncidentOpen {
		return Active
	}
	return Inactive
}

// Style returns the status indicator style.
func (a Activity) Style() Style {
	if a == Active {
		return Style{Tone: ToneCritical, Pulse: true, Icon: "●"}
	}
	return Style{Tone: ToneMuted, Icon: "○"}
}

// LoadTone colors a utilization percentage.
func LoadTone(percent float64) Tone {
	switch {
	case percent >= CriticalThreshold:
		return ToneCritical
	case percent >= WarningThreshold:
		return ToneWarning
	default:
		return ToneHealthy
	}
}
