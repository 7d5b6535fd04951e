package httpd

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"time"
)

// WriteCSV serialises the report into CSV: summary rows, a blank record,
// then one row per request in ID order.
func (r *Report) WriteCSV(w io.Writer) error {
	if r == nil {
		return errors.New("report is nil")
	}
	if w == nil {
		return errors.New("writer is nil")
	}

	writer := csv.NewWriter(w)
	summary := [][]string{
		{"summary", "start", formatTimestamp(r.StartedAt)},
		{"summary", "end", formatTimestamp(r.CompletedAt)},
		{"summary", "duration_seconds", formatFloat(r.Duration().Seconds(), 3)},
		{"summary", "requests", strconv.Itoa(r.RequestCount())},
		{"summary", "bytes_sent", strconv.FormatInt(r.TotalBytes(), 10)},
		{"summary", "average_bytes_per_second", formatFloat(r.AverageSpeedBytes(), 2)},
	}
	for _, record := range summary {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := writer.Write(nil); err != nil {
		return err
	}

	header := []string{"id", "remote", "target", "status", "bytes", "duration_seconds", "started_at", "completed_at"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, rr := range r.Requests() {
		record := []string{
			strconv.FormatUint(rr.ID, 10),
			rr.Remote,
			rr.Target,
			strconv.Itoa(rr.Status),
			strconv.FormatInt(rr.Bytes, 10),
			formatFloat(rr.Duration.Seconds(), 3),
			formatTimestamp(rr.StartedAt),
			formatTimestamp(rr.CompletedAt()),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "n/a"
	}
	return t.Format(time.RFC3339)
}

func formatFloat(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
