// Package monitoring provides lightweight in-memory request latency
// tracking. Samples live in a fixed ring buffer so the tracker never grows.
package monitoring

import (
	"net/http"
	"sort"
	"sync"
	"time"
)

// Latency records request durations and answers quantile queries over the
// last N samples.
type Latency struct {
	mu        sync.Mutex
	durations []float64 // milliseconds, circular buffer of last N
	idx       int
	count     int64 // total requests observed
	n         int   // capacity
}

// Default is the shared tracker used by the HTTP layer.
var Default = NewLatency(512)

func NewLatency(capacity int) *Latency {
	if capacity <= 0 {
		capacity = 256
	}
	return &Latency{durations: make([]float64, capacity), n: capacity}
}

// Observe adds a duration sample (in milliseconds).
func (m *Latency) Observe(ms float64) {
	m.mu.Lock()
	m.durations[m.idx] = ms
	m.idx = (m.idx + 1) % m.n
	m.count++
	m.mu.Unlock()
}

// Snapshot returns basic stats including quantiles for recent samples.
func (m *Latency) Snapshot() (count int64, avg, p50, p95 float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var samples []float64
	if m.count < int64(m.n) {
		samples = append(samples, m.durations[:m.idx]...)
	} else {
		samples = append(samples, m.durations...)
	}
	if len(samples) == 0 {
		return m.count, 0, 0, 0
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	avg = sum / float64(len(samples))

	sort.Float64s(samples)
	p50 = quantile(samples, 0.50)
	p95 = quantile(samples, 0.95)
	return m.count, avg, p50, p95
}

// quantile expects sorted samples.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	i := int(pos)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i]*(1-frac) + sorted[i+1]*frac
}

// Middleware times every request through the wrapped handler.
// Compatible with mux.Use.
func (m *Latency) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		m.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	})
}
