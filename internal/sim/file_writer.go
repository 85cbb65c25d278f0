package sim

import (
	"encoding/json"
	"os"
)

// FileWriter appends report, notification, and state rows to JSONL files.
// Any path may be empty to skip that log.
type FileWriter struct {
	reportFile *os.File
	notifFile  *os.File
	stateFile  *os.File
	reportEnc  *json.Encoder
	notifEnc   *json.Encoder
	stateEnc   *json.Encoder
}

// NewFileWriter creates the requested JSONL files, truncating existing ones.
func NewFileWriter(reportPath, notifPath, statePath string) (*FileWriter, error) {
	fw := &FileWriter{}
	if reportPath != "" {
		f, err := os.Create(reportPath)
		if err != nil {
			return nil, err
		}
		fw.reportFile = f
		fw.reportEnc = json.NewEncoder(f)
	}
	if notifPath != "" {
		f, err := os.Create(notifPath)
		if err != nil {
			fw.Close()
			return nil, err
		}
		fw.notifFile = f
		fw.notifEnc = json.NewEncoder(f)
	}
	if statePath != "" {
		f, err := os.Create(statePath)
		if err != nil {
			fw.Close()
			return nil, err
		}
		fw.stateFile = f
		fw.stateEnc = json.NewEncoder(f)
	}
	return fw, nil
}

// WriteReport logs a single report row, if enabled.
func (f *FileWriter) WriteReport(row ReportRow) error {
	if f.reportEnc == nil {
		return nil
	}
	return f.reportEnc.Encode(row)
}

// WriteReports logs multiple report rows.
func (f *FileWriter) WriteReports(rows []ReportRow) error {
	for _, r := range rows {
		if err := f.WriteReport(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteNotification logs a single notification row, if enabled.
func (f *FileWriter) WriteNotification(row NotificationRow) error {
	if f.notifEnc == nil {
		return nil
	}
	return f.notifEnc.Encode(row)
}

// WriteNotifications logs multiple notification rows.
func (f *FileWriter) WriteNotifications(rows []NotificationRow) error {
	for _, r := range rows {
		if err := f.WriteNotification(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteState logs a per-tick state row, if enabled.
func (f *FileWriter) WriteState(row StateRow) error {
	if f.stateEnc == nil {
		return nil
	}
	return f.stateEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	for _, file := range []*os.File{f.reportFile, f.notifFile, f.stateFile} {
		if file == nil {
			continue
		}
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
