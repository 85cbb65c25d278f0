package sim

// MultiWriter fans rows out to multiple writers.
type MultiWriter struct {
	reportWriters []ReportWriter
	notifWriters  []NotificationWriter
	stateWriters  []StateWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(rws []ReportWriter, nws []NotificationWriter, sws []StateWriter) *MultiWriter {
	return &MultiWriter{reportWriters: rws, notifWriters: nws, stateWriters: sws}
}

// WriteReport sends a report row to all report writers.
func (mw *MultiWriter) WriteReport(row ReportRow) error {
	for _, w := range mw.reportWriters {
		if err := w.WriteReport(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteReports sends multiple report rows to all writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteReports(rows []ReportRow) error {
	for _, w := range mw.reportWriters {
		if bw, ok := w.(batchReportWriter); ok {
			if err := bw.WriteReports(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteReport(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteNotification sends a notification row to all notification writers.
func (mw *MultiWriter) WriteNotification(row NotificationRow) error {
	for _, w := range mw.notifWriters {
		if err := w.WriteNotification(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteNotifications sends multiple notifications to all writers, using batch
// mode where supported.
func (mw *MultiWriter) WriteNotifications(rows []NotificationRow) error {
	for _, w := range mw.notifWriters {
		if bw, ok := w.(batchNotificationWriter); ok {
			if err := bw.WriteNotifications(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteNotification(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteState sends a state row to all state writers.
func (mw *MultiWriter) WriteState(row StateRow) error {
	for _, w := range mw.stateWriters {
		if err := w.WriteState(row); err != nil {
			return err
		}
	}
	return nil
}
