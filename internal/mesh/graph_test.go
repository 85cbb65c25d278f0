package mesh

import (
	"math"
	"testing"

	"skymesh-sim/internal/entity"
)

func testParams() Params {
	return Params{
		MaxRange:      300,
		MaxCapacity:   100,
		LOSFactor:     1.0,
		WiredCapacity: 1000,
		HopPenalty:    0.7,
	}
}

func TestLinkCapacityCurve(t *testing.T) {
	p := testParams()

	tests := []struct {
		name string
		dist float64
		want func(float64) bool
	}{
		{"zero distance is max", 0, func(c float64) bool { return c == p.MaxCapacity }},
		{"50m positive below max", 50, func(c float64) bool { return c > 0 && c < p.MaxCapacity }},
		{"at max range zero", 300, func(c float64) bool { return c == 0 }},
		{"beyond max range zero", 301, func(c float64) bool { return c == 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if c := LinkCapacity(tc.dist, p); !tc.want(c) {
				t.Errorf("LinkCapacity(%v) = %v", tc.dist, c)
			}
		})
	}

	// 50m with 300m range: 100 * (1 - (1/6)^2)
	want := 100 * (1 - (50.0/300)*(50.0/300))
	if got := LinkCapacity(50, p); math.Abs(got-want) > 1e-9 {
		t.Errorf("LinkCapacity(50) = %v, want %v", got, want)
	}
}

func TestBuildWiredBackhaulAlwaysPresent(t *testing.T) {
	g := Build(nil, entity.Position{X: 250, Y: 250, Z: 100}, entity.Position{X: 250, Y: 250}, testParams())
	if got := g.Capacity("tower", "station"); got != 1000 {
		t.Errorf("tower->station capacity = %v, want 1000", got)
	}
	if got := g.Capacity("station", "tower"); got != 1000 {
		t.Errorf("station->tower capacity = %v, want 1000", got)
	}
}

func TestBuildExcludesDeadDrones(t *testing.T) {
	alive := entity.NewDrone(0, entity.Position{X: 240, Y: 250, Z: 100}, 100)
	dead := entity.NewDrone(1, entity.Position{X: 260, Y: 250, Z: 100}, 100)
	dead.Drain(100)

	g := Build([]*entity.Drone{alive, dead},
		entity.Position{X: 250, Y: 250, Z: 100}, entity.Position{X: 250, Y: 250}, testParams())

	if !g.HasDrone(0) {
		t.Errorf("alive drone missing from topology")
	}
	if g.HasDrone(1) {
		t.Errorf("dead drone present in topology")
	}
	if got := g.Capacity("d0", "d1"); got != 0 {
		t.Errorf("edge to dead drone has capacity %v", got)
	}
}

func TestDroneEdgeCapacityAtFiftyMeters(t *testing.T) {
	d0 := entity.NewDrone(0, entity.Position{X: 0, Y: 0, Z: 80}, 100)
	d1 := entity.NewDrone(1, entity.Position{X: 50, Y: 0, Z: 80}, 100)
	g := Build([]*entity.Drone{d0, d1},
		entity.Position{X: 10000, Y: 10000, Z: 100}, entity.Position{X: 10000, Y: 10000}, testParams())

	c := g.Capacity("d0", "d1")
	if c <= 0 || c >= 100 {
		t.Errorf("50m edge capacity = %v, want strictly between 0 and 100", c)
	}

	// Move the second drone out of range: no edge at all.
	d1.Position = entity.Position{X: 500, Y: 0, Z: 80}
	g = Build([]*entity.Drone{d0, d1},
		entity.Position{X: 10000, Y: 10000, Z: 100}, entity.Position{X: 10000, Y: 10000}, testParams())
	if c := g.Capacity("d0", "d1"); c != 0 {
		t.Errorf("out-of-range edge capacity = %v, want 0", c)
	}
}

func TestPathToTowerDirect(t *testing.T) {
	d := entity.NewDrone(0, entity.Position{X: 200, Y: 250, Z: 100}, 100)
	g := Build([]*entity.Drone{d},
		entity.Position{X: 250, Y: 250, Z: 100}, entity.Position{X: 250, Y: 250}, testParams())

	r, ok := g.PathToTower(0)
	if !ok {
		t.Fatalf("expected path to tower")
	}
	if r.Hops != 1 {
		t.Errorf("hops = %d, want 1", r.Hops)
	}
	// Single wireless hop: no relay penalty applied.
	want := LinkCapacity(50, testParams())
	if math.Abs(r.Capacity-want) > 1e-9 {
		t.Errorf("capacity = %v, want %v", r.Capacity, want)
	}
}

func TestPathToTowerViaRelayAppliesPenalty(t *testing.T) {
	p := testParams()
	// d0 out of tower range, d1 relays.
	d0 := entity.NewDrone(0, entity.Position{X: 0, Y: 0, Z: 100}, 100)
	d1 := entity.NewDrone(1, entity.Position{X: 250, Y: 0, Z: 100}, 100)
	tower := entity.Position{X: 500, Y: 0, Z: 100}
	g := Build([]*entity.Drone{d0, d1}, tower, entity.Position{X: 500, Y: 0}, p)

	r, ok := g.PathToTower(0)
	if !ok {
		t.Fatalf("expected relayed path to tower")
	}
	if r.Hops != 2 {
		t.Fatalf("hops = %d, want 2 (via relay)", r.Hops)
	}
	minCap := math.Min(LinkCapacity(250, p), LinkCapacity(250, p))
	want := minCap * p.HopPenalty
	if math.Abs(r.Capacity-want) > 1e-9 {
		t.Errorf("capacity = %v, want %v", r.Capacity, want)
	}
}

func TestPathToStationExcludesWiredHopFromPenalty(t *testing.T) {
	p := testParams()
	d := entity.NewDrone(0, entity.Position{X: 200, Y: 250, Z: 100}, 100)
	g := Build([]*entity.Drone{d},
		entity.Position{X: 250, Y: 250, Z: 100}, entity.Position{X: 250, Y: 250}, p)

	r, ok := g.PathToStation(0)
	if !ok {
		t.Fatalf("expected path to station")
	}
	if r.Hops != 2 {
		t.Errorf("hops = %d, want 2 (drone->tower->station)", r.Hops)
	}
	// One drone on the path means zero wireless relay hops: no penalty even
	// though the total hop count is 2.
	want := LinkCapacity(50, p)
	if math.Abs(r.Capacity-want) > 1e-9 {
		t.Errorf("capacity = %v, want %v (no penalty for wired leg)", r.Capacity, want)
	}

	towerRoute, _ := g.PathToTower(0)
	if math.Abs(towerRoute.Capacity-r.Capacity) > 1e-9 {
		t.Errorf("direct tower and station capacities disagree: %v vs %v", towerRoute.Capacity, r.Capacity)
	}
}

func TestNoPathIsOrdinaryOutcome(t *testing.T) {
	// Isolated drone far from everything.
	d := entity.NewDrone(0, entity.Position{X: 0, Y: 0, Z: 100}, 100)
	g := Build([]*entity.Drone{d},
		entity.Position{X: 5000, Y: 5000, Z: 100}, entity.Position{X: 5000, Y: 5000}, testParams())

	if _, ok := g.PathToTower(0); ok {
		t.Errorf("isolated drone should have no path to tower")
	}
	if _, ok := g.PathToStation(0); ok {
		t.Errorf("isolated drone should have no path to station")
	}
	// Unknown drone id behaves the same way.
	if _, ok := g.PathToTower(99); ok {
		t.Errorf("unknown drone should have no path")
	}
}

func TestRouteFavorsHighCapacityHops(t *testing.T) {
	p := testParams()
	// d0 can reach the tower directly at the edge of range (thin link) or via
	// d1 over two strong links. Inverse-capacity weighting picks the relay.
	d0 := entity.NewDrone(0, entity.Position{X: 0, Y: 0, Z: 0}, 100)
	d1 := entity.NewDrone(1, entity.Position{X: 145, Y: 0, Z: 0}, 100)
	tower := entity.Position{X: 290, Y: 0, Z: 0}
	g := Build([]*entity.Drone{d0, d1}, tower, entity.Position{X: 290, Y: 0}, p)

	r, ok := g.PathToTower(0)
	if !ok {
		t.Fatalf("expected path")
	}
	if len(r.Nodes) != 3 || r.Nodes[1] != "d1" {
		t.Errorf("route = %v, want relay via d1", r.Nodes)
	}
}
