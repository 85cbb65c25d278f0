package sim

import "testing"

// plainWriter deliberately lacks the batch methods.
type plainWriter struct {
	reports []ReportRow
	notifs  []NotificationRow
}

func (w *plainWriter) WriteReport(r ReportRow) error {
	w.reports = append(w.reports, r)
	return nil
}

func (w *plainWriter) WriteNotification(n NotificationRow) error {
	w.notifs = append(w.notifs, n)
	return nil
}

func TestMultiWriterFansOutBatches(t *testing.T) {
	batch := &MockWriter{}
	plain := &plainWriter{}
	mw := NewMultiWriter(
		[]ReportWriter{batch, plain},
		[]NotificationWriter{batch, plain},
		[]StateWriter{batch},
	)

	rows := []ReportRow{{ReportID: "a"}, {ReportID: "b"}}
	if err := mw.WriteReports(rows); err != nil {
		t.Fatalf("WriteReports: %v", err)
	}
	if len(batch.Reports) != 2 || len(plain.reports) != 2 {
		t.Errorf("fan-out counts: batch=%d plain=%d, want 2/2", len(batch.Reports), len(plain.reports))
	}

	if err := mw.WriteNotifications([]NotificationRow{{Type: "victim_detected"}}); err != nil {
		t.Fatalf("WriteNotifications: %v", err)
	}
	if len(batch.Notifications) != 1 || len(plain.notifs) != 1 {
		t.Errorf("notification fan-out failed")
	}

	if err := mw.WriteState(StateRow{Tick: 3}); err != nil {
		t.Fatalf("WriteState: %v", err)
	}
	if len(batch.States) != 1 {
		t.Errorf("state fan-out failed")
	}
}
