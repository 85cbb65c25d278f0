package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"skymesh-sim/internal/admin"
	"skymesh-sim/internal/config"
	"skymesh-sim/internal/logging"
	"skymesh-sim/internal/sim"
)

var (
	runPrintOnly  bool
	runConfigPath string
	runSchemaPath string
	runTick       time.Duration
	runSteps      int
	runSeed       int64
	runLogFile    string
	runTUI        bool
	runAdminAddr  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the real-time rescue mesh simulator",
	Long:  "run starts a scenario: drones search the area, report detected victims over the mesh, form coverage clusters, and serve users through the tower backhaul.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = runSeed
		}

		tickInterval := runTick
		if tickInterval <= 0 {
			tickInterval = time.Duration(cfg.TickSeconds * float64(time.Second))
		}

		rw, nw, sw, cleanup, err := newWriters(runPrintOnly, runLogFile, runTUI)
		if err != nil {
			return err
		}
		defer cleanup()

		engine, err := sim.New(cfg, rw, nw, sw)
		if err != nil {
			return err
		}

		logger := logging.New(engine.RunID(), slog.LevelInfo)
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))
		defer cancel()

		if runAdminAddr != "" {
			srv := admin.NewServer(engine)
			go func() {
				logger.Info("admin UI listening", "addr", runAdminAddr)
				if err := srv.Start(ctx, runAdminAddr); err != nil && err != http.ErrServerClosed {
					logger.Error("admin server failed", "err", err)
				}
			}()
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigs
			cancel()
		}()

		logger.Info("scenario started",
			"drones", cfg.Drones.Count,
			"area", cfg.AreaSize,
			"seed", cfg.Seed,
			"tick", tickInterval)

		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("scenario stopped", "ticks", engine.Tick())
				return nil
			case <-ticker.C:
				engine.Step(ctx)
				if runSteps > 0 && engine.Tick() >= runSteps {
					m := engine.Metrics()
					logger.Info("scenario complete",
						"ticks", engine.Tick(),
						"detection_rate", m.DetectionRate,
						"service_rate", m.ServiceRate,
						"reports", m.Reports)
					return nil
				}
			}
		}
	},
}

func init() {
	runCmd.Flags().BoolVar(&runPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	runCmd.Flags().StringVar(&runConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	runCmd.Flags().DurationVar(&runTick, "tick", 0, "Wall-clock tick interval (defaults to tick_seconds from config)")
	runCmd.Flags().IntVar(&runSteps, "steps", 0, "Stop after this many ticks (0 = run until interrupted)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "Override the scenario seed")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Path to export report/notification/state logs (JSONL)")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "Render a live terminal dashboard instead of STDOUT rows")
	runCmd.Flags().StringVar(&runAdminAddr, "admin", ":8080", "Admin UI listen address (empty disables)")
}
