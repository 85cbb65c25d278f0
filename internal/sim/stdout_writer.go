// Writer implementation printing rows to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// StdoutWriter prints reports, notifications, and state rows as JSON lines.
type StdoutWriter struct {
	Out io.Writer
}

// NewStdoutWriter returns a writer targeting os.Stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{Out: os.Stdout}
}

func (w *StdoutWriter) print(v any) error {
	data, _ := json.Marshal(v)
	fmt.Fprintln(w.Out, string(data))
	return nil
}

// WriteReport outputs a single report row.
func (w *StdoutWriter) WriteReport(row ReportRow) error {
	return w.print(row)
}

// WriteReports outputs multiple report rows.
func (w *StdoutWriter) WriteReports(rows []ReportRow) error {
	for _, r := range rows {
		_ = w.WriteReport(r)
	}
	return nil
}

// WriteNotification outputs a single notification row.
func (w *StdoutWriter) WriteNotification(row NotificationRow) error {
	return w.print(row)
}

// WriteNotifications outputs multiple notification rows.
func (w *StdoutWriter) WriteNotifications(rows []NotificationRow) error {
	for _, r := range rows {
		_ = w.WriteNotification(r)
	}
	return nil
}

// WriteState outputs a per-tick state row.
func (w *StdoutWriter) WriteState(row StateRow) error {
	return w.print(row)
}
