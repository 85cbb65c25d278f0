// Engine orchestrating the per-tick rescue mesh simulation
package sim

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"skymesh-sim/internal/cluster"
	"skymesh-sim/internal/config"
	"skymesh-sim/internal/entity"
	"skymesh-sim/internal/mesh"
)

// ReportWriter receives delivered detection reports.
type ReportWriter interface {
	WriteReport(ReportRow) error
}

// NotificationWriter receives operator notifications.
type NotificationWriter interface {
	WriteNotification(NotificationRow) error
}

// StateWriter receives one aggregate state row per tick.
type StateWriter interface {
	WriteState(StateRow) error
}

// Optional: report writers may support batch mode.
type batchReportWriter interface {
	WriteReports([]ReportRow) error
}

// Optional: notification writers may support batch mode.
type batchNotificationWriter interface {
	WriteNotifications([]NotificationRow) error
}

// Engine is the single-writer simulation core. An external driver advances it
// one tick at a time; every tick is a deterministic function of current state
// and seed. The mutex only shields read-only snapshot consumers (admin UI)
// from a concurrently stepping driver.
type Engine struct {
	mu     sync.Mutex
	cfg    *config.Config
	runID  string
	rng    *rand.Rand
	now    func() time.Time
	tick   int
	drones []*entity.Drone
	users  []*entity.User
	tower  entity.Tower
	station *entity.MonitoringStation
	coord   *cluster.Coordinator

	notifications []entity.Notification
	graph         *mesh.Graph

	reportWriter ReportWriter
	notifyWriter NotificationWriter
	stateWriter  StateWriter
}

// New validates the configuration and builds the initial world: drones on a
// ring around the area center, isolated victims scattered uniformly, and dense
// victim zones with gaussian spread. Any writer may be nil.
func New(cfg *config.Config, rw ReportWriter, nw NotificationWriter, sw StateWriter) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:          cfg,
		runID:        uuid.New().String(),
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		now:          time.Now,
		station:      entity.NewMonitoringStation(point(cfg.Network.Station)),
		tower:        entity.Tower{Position: point(cfg.Network.Tower)},
		reportWriter: rw,
		notifyWriter: nw,
		stateWriter:  sw,
	}
	e.coord = cluster.NewCoordinator(cluster.Params{
		FormationThreshold: cfg.Clusters.FormationThreshold,
		Proximity:          cfg.Clusters.ProximityM,
		MinCrew:            cfg.Clusters.MinCrew,
		FormationRadius:    cfg.Drones.CoverageRadius * 0.6,
		Altitude:           cfg.Drones.AltitudeM,
	})
	e.placeDrones()
	e.placeUsers()
	e.graph = e.buildGraph()
	return e, nil
}

func point(p config.Point) entity.Position {
	return entity.Position{X: p.X, Y: p.Y, Z: p.Z}
}

// placeDrones spreads the fleet evenly on a ring at 40% of the area size.
func (e *Engine) placeDrones() {
	n := e.cfg.Drones.Count
	center := e.cfg.AreaSize / 2
	radius := e.cfg.AreaSize * 0.4
	for i := 0; i < n; i++ {
		angle := float64(i) * (2 * math.Pi / float64(n))
		pos := entity.Position{
			X: center + radius*math.Cos(angle),
			Y: center + radius*math.Sin(angle),
			Z: e.cfg.Drones.AltitudeM,
		}
		e.drones = append(e.drones, entity.NewDrone(i, pos, e.cfg.Drones.Battery.Initial))
	}
}

// placeUsers creates isolated victims away from the area border, then the
// configured dense zones. The first victim of a zone carries the large group
// that makes the zone a cluster candidate.
func (e *Engine) placeUsers() {
	uid := 0
	margin := 50.0
	if e.cfg.AreaSize < 2*margin {
		margin = 0
	}
	for i := 0; i < e.cfg.Victims.Isolated; i++ {
		pos := entity.Position{
			X: margin + e.rng.Float64()*(e.cfg.AreaSize-2*margin),
			Y: margin + e.rng.Float64()*(e.cfg.AreaSize-2*margin),
		}
		group := 1 + e.rng.Intn(3)
		e.users = append(e.users, entity.NewUser(uid, pos, group))
		uid++
	}
	for _, z := range e.cfg.Victims.Zones {
		for i := 0; i < z.Count; i++ {
			pos := entity.Position{
				X: z.X + e.rng.NormFloat64()*25,
				Y: z.Y + e.rng.NormFloat64()*25,
			}
			group := 1 + e.rng.Intn(2)
			if i == 0 {
				group = 10 + e.rng.Intn(6)
			}
			e.users = append(e.users, entity.NewUser(uid, pos, group))
			uid++
		}
	}
}

func (e *Engine) buildGraph() *mesh.Graph {
	return mesh.Build(e.drones, e.tower.Position, e.station.Position, mesh.Params{
		MaxRange:      e.cfg.Network.MaxRangeM,
		MaxCapacity:   e.cfg.Network.LinkCapacityMbps,
		LOSFactor:     e.cfg.Network.LOSFactor,
		WiredCapacity: e.cfg.Network.BackhaulMbps,
		HopPenalty:    e.cfg.Network.HopPenalty,
	})
}

// RunID returns the unique id of this simulation run.
func (e *Engine) RunID() string { return e.runID }

// Tick returns the number of completed ticks.
func (e *Engine) Tick() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}
