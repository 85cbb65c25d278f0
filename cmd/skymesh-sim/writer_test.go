package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"skymesh-sim/internal/sim"
)

func TestNewWritersPrintOnly(t *testing.T) {
	rw, nw, sw, cleanup, err := newWriters(true, "", false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := rw.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected report writer *sim.StdoutWriter, got %T", rw)
	}
	if _, ok := nw.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected notification writer *sim.StdoutWriter, got %T", nw)
	}
	if _, ok := sw.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected state writer *sim.StdoutWriter, got %T", sw)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	rw, _, _, cleanup, err := newWriters(false, "", false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := rw.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected *sim.StdoutWriter without endpoint, got %T", rw)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports.log")
	rw, _, sw, cleanup, err := newWriters(true, path, false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := rw.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", rw)
	}

	row := sim.ReportRow{RunID: "r1", ReportID: "rep1", DroneID: 1, UserID: 2, Timestamp: time.Now()}
	if err := rw.WriteReport(row); err != nil {
		t.Fatalf("write report failed: %v", err)
	}
	st := sim.StateRow{RunID: "r1", Tick: 1, AliveDrones: 8, Timestamp: time.Now()}
	if err := sw.WriteState(st); err != nil {
		t.Fatalf("write state failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected report log to be non-empty")
	}
	stateInfo, err := os.Stat(path + ".state")
	if err != nil {
		t.Fatalf("stat state failed: %v", err)
	}
	if stateInfo.Size() == 0 {
		t.Fatalf("expected state file to be non-empty")
	}
}
