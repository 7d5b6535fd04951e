package httpd

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

// RequestReport captures the outcome of serving a single connection.
type RequestReport struct {
	ID        uint64
	Remote    string
	Target    string
	Status    int
	Bytes     int64
	StartedAt time.Time
	Duration  time.Duration
}

// CompletedAt returns when the response finished.
func (rr RequestReport) CompletedAt() time.Time {
	if rr.StartedAt.IsZero() {
		return time.Time{}
	}
	return rr.StartedAt.Add(rr.Duration)
}

// Report aggregates request outcomes for one server run. It is safe for
// concurrent use by workers.
type Report struct {
	StartedAt   time.Time
	CompletedAt time.Time

	mu         sync.Mutex
	totalBytes int64
	byStatus   map[int]int
	requests   []RequestReport
}

// NewReport creates an empty report starting now.
func NewReport() *Report {
	return &Report{StartedAt: time.Now(), byStatus: map[int]int{}}
}

// Record adds a request outcome. Recording on a nil report is a no-op.
func (r *Report) Record(rr RequestReport) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byStatus == nil {
		r.byStatus = map[int]int{}
	}
	r.totalBytes += rr.Bytes
	r.byStatus[rr.Status]++
	r.requests = append(r.requests, rr)
}

// Finalize marks the report complete and orders requests by ID.
func (r *Report) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CompletedAt.IsZero() {
		r.CompletedAt = time.Now()
	}
	sort.Slice(r.requests, func(i, j int) bool {
		return r.requests[i].ID < r.requests[j].ID
	})
}

// Duration returns the total time spent for the run.
func (r *Report) Duration() time.Duration {
	if r.CompletedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// RequestCount returns the number of recorded requests.
func (r *Report) RequestCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// StatusCount returns how many requests were answered with status.
func (r *Report) StatusCount(status int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byStatus[status]
}

// TotalBytes returns the sum of bytes written to clients.
func (r *Report) TotalBytes() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalBytes
}

// Requests returns a copy of the recorded request reports.
func (r *Report) Requests() []RequestReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RequestReport(nil), r.requests...)
}

// AverageSpeedBytes returns the average throughput in bytes per second.
func (r *Report) AverageSpeedBytes() float64 {
	dur := r.Duration()
	if dur <= 0 {
		return 0
	}
	return float64(r.TotalBytes()) / dur.Seconds()
}

// ShortSummary returns a compact textual report of the run.
func (r *Report) ShortSummary() string {
	r.mu.Lock()
	statuses := make([]int, 0, len(r.byStatus))
	for status := range r.byStatus {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)
	counts := make([]string, len(statuses))
	for i, status := range statuses {
		counts[i] = fmt.Sprintf("%d=%d", status, r.byStatus[status])
	}
	requests, total := len(r.requests), r.totalBytes
	r.mu.Unlock()

	var b strings.Builder
	fmt.Fprintln(&b, "Serve Summary")
	fmt.Fprintln(&b, strings.Repeat("=", len("Serve Summary")))
	fmt.Fprintf(&b, "Start: %s\n", formatTimestamp(r.StartedAt))
	fmt.Fprintf(&b, "End: %s\n", formatTimestamp(r.CompletedAt))
	fmt.Fprintf(&b, "Duration: %s\n", r.Duration())
	fmt.Fprintf(&b, "Requests: %d\n", requests)
	if len(counts) > 0 {
		fmt.Fprintf(&b, "Statuses: %s\n", strings.Join(counts, " "))
	}
	fmt.Fprintf(&b, "Bytes sent: %s\n", formatBytes(total))
	fmt.Fprintf(&b, "Average speed: %s/s\n", formatBytesPerSecond(r.AverageSpeedBytes()))
	return b.String()
}

func formatBytes(value int64) string {
	if value < 0 {
		return fmt.Sprintf("-%s", formatBytes(-value))
	}
	const unit = 1024
	if value < unit {
		return fmt.Sprintf("%d B", value)
	}
	exp := int(math.Log(float64(value)) / math.Log(unit))
	if exp > 4 {
		exp = 4
	}
	divisor := math.Pow(unit, float64(exp))
	return fmt.Sprintf("%.2f %ciB", float64(value)/divisor, "KMGT"[exp-1])
}

func formatBytesPerSecond(value float64) string {
	if value <= 0 {
		return "0 B"
	}
	const unit = 1024
	if value < unit {
		return fmt.Sprintf("%.2f B", value)
	}
	exp := int(math.Log(value) / math.Log(unit))
	if exp > 4 {
		exp = 4
	}
	divisor := math.Pow(unit, float64(exp))
	return fmt.Sprintf("%.2f %ciB", value/divisor, "KMGT"[exp-1])
}
