package mesh

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
)

// Route is the outcome of a routing query. Capacity already includes the
// per-relay hop penalty.
type Route struct {
	Nodes    []string `json:"nodes"`
	Hops     int      `json:"hops"`
	Capacity float64  `json:"capacity"`
}

// PathToTower finds the best path from a drone to the tower, weighting edges
// by inverse capacity. The effective capacity is the bottleneck edge capacity
// degraded by hopPenalty^(relay count). An unreachable tower yields ok=false;
// this is an ordinary outcome, not an error.
func (t *Graph) PathToTower(droneID int) (Route, bool) {
	nodes := t.shortest(droneNodeID(droneID), towerNodeID)
	if nodes == nil {
		return Route{}, false
	}
	minCap := t.bottleneck(nodes)
	eff := minCap * math.Pow(t.params.HopPenalty, float64(len(nodes)-2))
	return Route{Nodes: names(nodes), Hops: len(nodes) - 1, Capacity: eff}, true
}

// PathToStation finds the best path from a drone to the monitoring station,
// necessarily transiting the tower. The hop penalty counts only wireless hops;
// the wired tower-station leg carries no per-hop overhead.
func (t *Graph) PathToStation(droneID int) (Route, bool) {
	nodes := t.shortest(droneNodeID(droneID), stationNodeID)
	if nodes == nil {
		return Route{}, false
	}
	minCap := t.bottleneck(nodes)
	wirelessHops := 0
	for _, n := range names(nodes) {
		if strings.HasPrefix(n, "d") {
			wirelessHops++
		}
	}
	wirelessHops--
	eff := minCap * math.Pow(t.params.HopPenalty, math.Max(0, float64(wirelessHops)))
	return Route{Nodes: names(nodes), Hops: len(nodes) - 1, Capacity: eff}, true
}

func (t *Graph) shortest(from, to int64) []graph.Node {
	if t.g.Node(from) == nil || t.g.Node(to) == nil {
		return nil
	}
	sp := path.DijkstraFrom(t.g.Node(from), t.g)
	nodes, w := sp.To(to)
	if math.IsInf(w, 1) || len(nodes) < 2 {
		return nil
	}
	return nodes
}

func (t *Graph) bottleneck(nodes []graph.Node) float64 {
	minCap := math.Inf(1)
	for i := 0; i < len(nodes)-1; i++ {
		c := t.caps[edgeKey{nodes[i].ID(), nodes[i+1].ID()}]
		if c < minCap {
			minCap = c
		}
	}
	return minCap
}

func names(nodes []graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = nodeName(n.ID())
	}
	return out
}
