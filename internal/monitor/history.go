package monitor

import (
	"sync"
	"time"
)

// DefaultHistorySize is the number of sync cycles kept for the latency
// sparkline.
const DefaultHistorySize = 60

// LatencyHistory records how long each sync cycle took, in milliseconds.
// Failed cycles are recorded too, so spikes stay visible while the
// backend is struggling.
type LatencyHistory struct {
	mu     sync.RWMutex
	buf    *ringBuffer
	failed int
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewLatencyHistory creates a history with the given capacity.
func NewLatencyHistory(size int) *LatencyHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &LatencyHistory{buf: newRingBuffer(size)}
}

// Push records one cycle.
func (h *LatencyHistory) Push(took time.Duration, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf.push(float64(took) / float64(time.Millisecond))
	if !ok {
		h.failed++
	}
}

// Last returns up to count samples, oldest first.
func (h *LatencyHistory) Last(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.getLast(count)
}

// Latest returns the most recent sample.
func (h *LatencyHistory) Latest() (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	last := h.buf.getLast(1)
	if len(last) == 0 {
		return 0, false
	}
	return last[0], true
}

// Count returns the number of stored samples.
func (h *LatencyHistory) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.count
}

// Failed returns how many recorded cycles failed.
func (h *LatencyHistory) Failed() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.failed
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)
	// head is the next write position, so the newest value is at head-1
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
