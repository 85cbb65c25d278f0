package main

import (
	"os"

	"golang.org/x/term"

	"skymesh-sim/internal/sim"
)

// newWriters picks the row sinks from flags and env vars. It returns the three
// writers and a cleanup function closing any resources.
func newWriters(printOnly bool, logFile string, useTUI bool) (sim.ReportWriter, sim.NotificationWriter, sim.StateWriter, func(), error) {
	cleanup := func() {}

	var rw sim.ReportWriter
	var nw sim.NotificationWriter
	var sw sim.StateWriter

	switch {
	case useTUI && term.IsTerminal(int(os.Stdout.Fd())):
		tui := sim.NewTUIWriter()
		rw, nw, sw = tui, tui, tui
		cleanup = tui.Close
	case printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "":
		w := sim.NewStdoutWriter()
		rw, nw, sw = w, w, w
	default:
		database := os.Getenv("GREPTIMEDB_DATABASE")
		if database == "" {
			database = "public"
		}
		w, err := sim.NewGreptimeWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), database)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		rw, nw, sw = w, w, w
	}

	if logFile == "" {
		return rw, nw, sw, cleanup, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".notifications", logFile+".state")
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}
	mw := sim.NewMultiWriter(
		[]sim.ReportWriter{rw, fw},
		[]sim.NotificationWriter{nw, fw},
		[]sim.StateWriter{sw, fw},
	)
	base := cleanup
	cleanup = func() {
		base()
		fw.Close()
	}
	return mw, mw, mw, cleanup, nil
}
