package snapshot

// DefaultSparklineWindow is how many recent points a sparkline shows.
const DefaultSparklineWindow = 10

// DefaultRadarResponseDivisor scales response time onto the radar's 0-100 axis.
const DefaultRadarResponseDivisor = 10.0

// ErrorRateScale lifts error rate (a fraction) onto the radar's 0-100 axis.
const ErrorRateScale = 1000.0

// MetricHistory is the metrics list of one snapshot.
//
// Precondition: the points are ordered newest-first, which is the backend's
// contract for /metrics/recent. Merge enforces it when timestamps are
// available and trusts the source order otherwise.
type MetricHistory struct {
	newestFirst []MetricPoint
}

// NewMetricHistory wraps a newest-first slice. The slice is copied.
func NewMetricHistory(newestFirst []MetricPoint) MetricHistory {
	points := make([]MetricPoint, len(newestFirst))
	copy(points, newestFirst)
	return MetricHistory{newestFirst: points}
}

// Len returns the number of points.
func (h MetricHistory) Len() int {
	return len(h.newestFirst)
}

// Latest returns the most recent point, or false if there are none.
func (h MetricHistory) Latest() (MetricPoint, bool) {
	if len(h.newestFirst) == 0 {
		return MetricPoint{}, false
	}
	return h.newestFirst[0], true
}

// NewestFirst returns a copy of the points in source order.
func (h MetricHistory) NewestFirst() []MetricPoint {
	out := make([]MetricPoint, len(h.newestFirst))
	copy(out, h.newestFirst)
	return out
}

// Chronological returns the points oldest-first, for chart consumption.
func (h MetricHistory) Chronological() []MetricPoint {
	return Reverse(h.newestFirst)
}

// Reverse returns a reversed copy of points. Reverse(Reverse(p)) equals p.
func Reverse(points []MetricPoint) []MetricPoint {
	out := make([]MetricPoint, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// SparklineWindow returns the last min(n, len(chrono)) points of a
// chronological sequence.
func SparklineWindow(chrono []MetricPoint, n int) []MetricPoint {
	if n <= 0 {
		return nil
	}
	if len(chrono) <= n {
		return chrono
	}
	return chrono[len(chrono)-n:]
}

// Series projects one field of each point, preserving order.
func Series(points []MetricPoint, field func(MetricPoint) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = field(p)
	}
	return out
}

// Field selectors for Series.
var (
	CPU          = func(p MetricPoint) float64 { return p.CPU }
	Memory       = func(p MetricPoint) float64 { return p.Memory }
	Disk         = func(p MetricPoint) float64 { return p.Disk }
	ResponseTime = func(p MetricPoint) float64 { return p.ResponseTimeMs }
	ErrorRate    = func(p MetricPoint) float64 { return p.ErrorRate }
)

// RadarTuple returns the five radar axes for a single point, in order:
// cpu, memory, errorRate*1000, disk, min(100, responseTimeMs/divisor).
// The error-rate and response-time terms are display scaling onto a shared
// 0-100 range, not unit conversions.
func RadarTuple(p MetricPoint, divisor float64) [5]float64 {
	if divisor <= 0 {
		divisor = DefaultRadarResponseDivisor
	}
	rt := p.ResponseTimeMs / divisor
	if rt > 100 {
		rt = 100
	}
	return [5]float64{
		p.CPU,
		p.Memory,
		p.ErrorRate * ErrorRateScale,
		p.Disk,
		rt,
	}
}
