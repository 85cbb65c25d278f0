package sim

import (
	"context"

	"skymesh-sim/internal/cluster"
	"skymesh-sim/internal/entity"
	"skymesh-sim/internal/logging"
	"skymesh-sim/internal/mesh"
)

// Step advances the simulation by one tick. Sub-phases run in a fixed order:
// topology build, detection and reporting, cluster formation, search
// targeting, movement and battery drain, then coverage recomputation over a
// freshly built post-movement graph. Re-running from identical state and seed
// yields identical results.
func (e *Engine) Step(ctx context.Context) {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.buildGraph()
	e.graph = g

	reports, notifs := e.detectAndReport(ctx, g)
	notifs = append(notifs, e.formClusters(ctx)...)
	e.assignSearchTargets()
	e.moveAndDrain()

	g = e.buildGraph()
	e.graph = g
	e.recomputeCoverage(g)

	e.flushReports(ctx, reports)
	e.flushNotifications(ctx, notifs)
	if e.stateWriter != nil {
		if err := e.stateWriter.WriteState(e.stateRow()); err != nil {
			log.Error("state write failed", "err", err)
		}
	}
	e.tick++
}

// Run advances n ticks, stopping early when the context is cancelled.
func (e *Engine) Run(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}
		e.Step(ctx)
	}
}

// detectAndReport has every alive SEARCH or RESCUE drone scan for undetected
// victims in its search radius. Each new detection is reported to the station
// exactly once, at detection time; without a path the detection survives but
// only a degraded notification is emitted.
func (e *Engine) detectAndReport(ctx context.Context, g *mesh.Graph) ([]ReportRow, []NotificationRow) {
	log := logging.FromContext(ctx)
	var reports []ReportRow
	var notifs []NotificationRow

	for _, d := range e.drones {
		if !d.Alive || (d.Mode != entity.ModeSearch && d.Mode != entity.ModeRescue) {
			continue
		}
		for _, u := range e.users {
			if u.Detected {
				continue
			}
			if d.Position.PlanarDistanceTo(u.Position) > e.cfg.Drones.SearchRadius {
				continue
			}
			u.MarkDetected(d.ID)
			d.RecordDetection(u.ID)

			route, ok := g.PathToStation(d.ID)
			var pathInfo *entity.PathInfo
			if ok && route.Capacity > 0 {
				pathInfo = &entity.PathInfo{Path: route.Nodes, Hops: route.Hops, Capacity: route.Capacity}
				report := e.newReport(d, u, route)
				e.station.ReceiveReport(report)
				reports = append(reports, e.reportRow(report))
				log.Info("victim reported",
					"drone", d.ID, "user", u.ID, "people", u.GroupSize,
					"hops", route.Hops, "capacity_mbps", route.Capacity)
			} else {
				log.Warn("victim detected with no path to station",
					"drone", d.ID, "user", u.ID, "people", u.GroupSize)
			}
			notif := e.newDetectionNotification(d, u, pathInfo)
			e.notifications = append(e.notifications, notif)
			notifs = append(notifs, e.notificationRow(notif))
		}
	}
	return reports, notifs
}

// formClusters detects dense victim groups and assigns crews to any group not
// yet in the registry. Understaffed formations are skipped whole.
func (e *Engine) formClusters(ctx context.Context) []NotificationRow {
	log := logging.FromContext(ctx)
	var notifs []NotificationRow

	groups := cluster.Detect(e.users, cluster.Params{
		FormationThreshold: e.cfg.Clusters.FormationThreshold,
		Proximity:          e.cfg.Clusters.ProximityM,
	})
	for _, g := range groups {
		crew, id := e.coord.FormCrew(g, e.drones)
		if crew == nil {
			continue
		}
		crewIDs := make([]int, len(crew))
		for i, d := range crew {
			crewIDs[i] = d.ID
		}
		notif := e.newClusterNotification(id, crewIDs, g)
		e.notifications = append(e.notifications, notif)
		notifs = append(notifs, e.notificationRow(notif))
		log.Info("cluster crew formed",
			"cluster", id, "crew", crewIDs, "people", g.TotalPeople())
	}
	return notifs
}

// assignSearchTargets points every searching drone at the nearest undetected
// victim, at operating altitude. With nothing left to find it holds position.
func (e *Engine) assignSearchTargets() {
	for _, d := range e.drones {
		if !d.Alive || d.Mode != entity.ModeSearch {
			continue
		}
		var nearest *entity.User
		best := 0.0
		for _, u := range e.users {
			if u.Detected {
				continue
			}
			dist := d.Position.PlanarDistanceTo(u.Position)
			if nearest == nil || dist < best {
				nearest, best = u, dist
			}
		}
		if nearest != nil {
			t := nearest.Position
			t.Z = e.cfg.Drones.AltitudeM
			d.Target = &t
		} else {
			hold := d.Position
			d.Target = &hold
		}
	}
}

// movingThreshold is the distance to target above which a drone is considered
// actively moving for battery accounting.
const movingThreshold = 1.0

// moveAndDrain advances every alive drone toward its target with the step
// clamped to speed*dt, stopping exactly at the target, then drains its battery
// by mode. Death is permanent.
func (e *Engine) moveAndDrain() {
	dt := e.cfg.TickSeconds
	for _, d := range e.drones {
		if !d.Alive {
			continue
		}
		if d.Target != nil {
			dx := d.Target.X - d.Position.X
			dy := d.Target.Y - d.Position.Y
			dist := d.Position.PlanarDistanceTo(*d.Target)
			if dist >= 1e-2 {
				step := e.cfg.Drones.SpeedMps * dt
				if dist < step {
					step = dist
				}
				d.Position.X += dx / dist * step
				d.Position.Y += dy / dist * step
			}
		}
		d.Drain(e.drainRate(d) * dt)
	}
}

func (e *Engine) drainRate(d *entity.Drone) float64 {
	b := e.cfg.Drones.Battery
	switch {
	case d.Mode == entity.ModeRelay || d.Mode == entity.ModeCluster:
		return b.DrainRelay
	case d.Target != nil && d.Position.PlanarDistanceTo(*d.Target) > movingThreshold:
		return b.DrainMoving
	default:
		return b.DrainIdle
	}
}

// recomputeCoverage rebuilds every user's service state from scratch. Drones
// are scanned in ascending id order so ties resolve the same way every tick;
// the first in-range drone with a positive-capacity tower path serves.
func (e *Engine) recomputeCoverage(g *mesh.Graph) {
	for _, u := range e.users {
		u.ClearService()
		for _, d := range e.drones {
			if !d.Alive {
				continue
			}
			if d.Position.PlanarDistanceTo(u.Position) > e.cfg.Drones.CoverageRadius {
				continue
			}
			route, ok := g.PathToTower(d.ID)
			if !ok || route.Capacity <= 0 {
				continue
			}
			u.SetService(d.ID, route.Capacity, route.Hops)
			break
		}
	}
}

func (e *Engine) flushReports(ctx context.Context, rows []ReportRow) {
	if len(rows) == 0 || e.reportWriter == nil {
		return
	}
	log := logging.FromContext(ctx)
	if bw, ok := e.reportWriter.(batchReportWriter); ok {
		if err := bw.WriteReports(rows); err != nil {
			log.Error("report batch write failed", "err", err)
		}
		return
	}
	for _, r := range rows {
		if err := e.reportWriter.WriteReport(r); err != nil {
			log.Error("report write failed", "report_id", r.ReportID, "err", err)
		}
	}
}

func (e *Engine) flushNotifications(ctx context.Context, rows []NotificationRow) {
	if len(rows) == 0 || e.notifyWriter == nil {
		return
	}
	log := logging.FromContext(ctx)
	if bw, ok := e.notifyWriter.(batchNotificationWriter); ok {
		if err := bw.WriteNotifications(rows); err != nil {
			log.Error("notification batch write failed", "err", err)
		}
		return
	}
	for _, n := range rows {
		if err := e.notifyWriter.WriteNotification(n); err != nil {
			log.Error("notification write failed", "err", err)
		}
	}
}
