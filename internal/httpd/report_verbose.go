package httpd

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	barWidth    = 40
	slowestRows = 5
)

// VerboseReport returns the summary followed by a per-status histogram and
// the slowest requests.
func (r *Report) VerboseReport() string {
	requests := r.Requests()

	var b strings.Builder
	b.WriteString(r.ShortSummary())

	counts := map[int]int64{}
	var most int64
	for _, rr := range requests {
		counts[rr.Status]++
		if counts[rr.Status] > most {
			most = counts[rr.Status]
		}
	}
	statuses := make([]int, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)
	if len(statuses) > 0 {
		fmt.Fprintln(&b, "\nResponses by status:")
		for _, status := range statuses {
			fmt.Fprintf(&b, "  %d %6d %s\n", status, counts[status], renderBar(counts[status], most, barWidth))
		}
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Duration > requests[j].Duration
	})
	if len(requests) > slowestRows {
		requests = requests[:slowestRows]
	}
	if len(requests) > 0 {
		fmt.Fprintln(&b, "\nSlowest requests:")
		for _, rr := range requests {
			fmt.Fprintf(&b, "- #%d %s %q %d %s in %s\n", rr.ID, rr.Remote, rr.Target, rr.Status, formatBytes(rr.Bytes), rr.Duration)
		}
	}
	return b.String()
}

func renderBar(value, max int64, width int) string {
	if width <= 0 || max <= 0 {
		return ""
	}
	ratio := float64(value) / float64(max)
	if ratio < 0 {
		ratio = 0
	}
	length := int(math.Round(ratio * float64(width)))
	if value > 0 && length == 0 {
		length = 1
	}
	if length > width {
		length = width
	}
	return strings.Repeat("#", length)
}
