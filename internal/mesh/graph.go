// Per-tick wireless mesh topology over drones, tower, and station
package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph/simple"

	"skymesh-sim/internal/entity"
)

// Node ids on the gonum graph. Drones occupy droneIDOffset + entity id so the
// fixed infrastructure nodes never collide with them.
const (
	stationNodeID int64 = 0
	towerNodeID   int64 = 1
	droneIDOffset int64 = 2
)

// Params tunes the abstract link capacity model.
type Params struct {
	MaxRange      float64 // meters; no link beyond this
	MaxCapacity   float64 // Mbps at zero distance
	LOSFactor     float64 // 1.0 clear line of sight, lower when obstructed
	WiredCapacity float64 // tower-station backhaul, Mbps
	HopPenalty    float64 // multiplicative capacity loss per relay hop
}

// LinkCapacity returns the capacity of a wireless link at the given distance,
// following a quadratic distance-attenuation curve. Zero beyond max range.
func LinkCapacity(dist float64, p Params) float64 {
	if dist > p.MaxRange {
		return 0
	}
	attenuation := (dist / p.MaxRange) * (dist / p.MaxRange)
	capacity := p.MaxCapacity * (1 - attenuation) * p.LOSFactor
	return math.Max(0, capacity)
}

// Link is one directed edge of the topology, exported for snapshots.
type Link struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Capacity float64 `json:"capacity"`
	Distance float64 `json:"distance"`
	Wired    bool    `json:"wired"`
}

type edgeKey struct{ from, to int64 }

// Graph is the topology for a single tick. It is rebuilt from entity state at
// the start of every tick and holds no memory of previous ticks.
type Graph struct {
	g      *simple.WeightedDirectedGraph
	params Params
	caps   map[edgeKey]float64
	dists  map[edgeKey]float64
	wired  map[edgeKey]bool
	drones []int
}

// Build constructs the directed topology graph for the current tick. Dead
// drones contribute no nodes or edges. The tower-station backhaul is always
// present in both directions.
func Build(drones []*entity.Drone, tower entity.Position, station entity.Position, p Params) *Graph {
	t := &Graph{
		g:      simple.NewWeightedDirectedGraph(0, math.Inf(1)),
		params: p,
		caps:   make(map[edgeKey]float64),
		dists:  make(map[edgeKey]float64),
		wired:  make(map[edgeKey]bool),
	}

	t.g.AddNode(simple.Node(stationNodeID))
	t.g.AddNode(simple.Node(towerNodeID))
	t.addEdge(towerNodeID, stationNodeID, p.WiredCapacity, 0, true)
	t.addEdge(stationNodeID, towerNodeID, p.WiredCapacity, 0, true)

	for _, d := range drones {
		if !d.Alive {
			continue
		}
		t.g.AddNode(simple.Node(droneNodeID(d.ID)))
		t.drones = append(t.drones, d.ID)
	}

	for _, d := range drones {
		if !d.Alive {
			continue
		}
		dist := d.Position.DistanceTo(tower)
		if c := LinkCapacity(dist, p); c > 0 {
			t.addEdge(droneNodeID(d.ID), towerNodeID, c, dist, false)
		}
		for _, d2 := range drones {
			if !d2.Alive || d.ID == d2.ID {
				continue
			}
			dist := d.Position.DistanceTo(d2.Position)
			if c := LinkCapacity(dist, p); c > 0 {
				t.addEdge(droneNodeID(d.ID), droneNodeID(d2.ID), c, dist, false)
			}
		}
	}
	return t
}

func (t *Graph) addEdge(from, to int64, capacity, dist float64, wired bool) {
	// Dijkstra weight favors high-capacity hops.
	w := 1 / math.Max(capacity, 1)
	t.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(from), T: simple.Node(to), W: w})
	k := edgeKey{from, to}
	t.caps[k] = capacity
	t.dists[k] = dist
	t.wired[k] = wired
}

func droneNodeID(id int) int64 { return droneIDOffset + int64(id) }

func nodeName(id int64) string {
	switch id {
	case stationNodeID:
		return "station"
	case towerNodeID:
		return "tower"
	default:
		return fmt.Sprintf("d%d", id-droneIDOffset)
	}
}

// HasDrone reports whether the drone has a node in this tick's topology.
func (t *Graph) HasDrone(id int) bool {
	return t.g.Node(droneNodeID(id)) != nil
}

// Capacity returns the capacity of the directed edge between two named nodes,
// or 0 when no such link exists.
func (t *Graph) Capacity(from, to string) float64 {
	fid, ok := t.nodeID(from)
	if !ok {
		return 0
	}
	tid, ok := t.nodeID(to)
	if !ok {
		return 0
	}
	return t.caps[edgeKey{fid, tid}]
}

func (t *Graph) nodeID(name string) (int64, bool) {
	switch name {
	case "station":
		return stationNodeID, true
	case "tower":
		return towerNodeID, true
	}
	var id int
	if _, err := fmt.Sscanf(name, "d%d", &id); err != nil {
		return 0, false
	}
	return droneNodeID(id), true
}

// Nodes lists the node names present this tick.
func (t *Graph) Nodes() []string {
	names := []string{"station", "tower"}
	for _, id := range t.drones {
		names = append(names, nodeName(droneNodeID(id)))
	}
	return names
}

// Links lists every directed edge with capacity and distance, for snapshots.
func (t *Graph) Links() []Link {
	links := make([]Link, 0, len(t.caps))
	edges := t.g.Edges()
	for edges.Next() {
		e := edges.Edge()
		k := edgeKey{e.From().ID(), e.To().ID()}
		links = append(links, Link{
			From:     nodeName(k.from),
			To:       nodeName(k.to),
			Capacity: t.caps[k],
			Distance: t.dists[k],
			Wired:    t.wired[k],
		})
	}
	return links
}
