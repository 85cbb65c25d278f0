// Victim cluster detection and drone crew formation
package cluster

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"skymesh-sim/internal/entity"
)

// Params tunes cluster detection and crew formation.
type Params struct {
	FormationThreshold int     // combined group size that triggers a cluster
	Proximity          float64 // meters; agglomeration radius around a seed
	MinCrew            int     // drones required to form a crew, no partials
	FormationRadius    float64 // meters; crew ring radius around the centroid
	Altitude           float64 // meters; crew hold altitude
}

// Group is one detected victim cluster.
type Group struct {
	Users []*entity.User
}

// Key identifies the cluster by its sorted member-id set. The same set of
// victims always yields the same key regardless of detection order.
func (g Group) Key() string {
	ids := make([]int, len(g.Users))
	for i, u := range g.Users {
		ids[i] = u.ID
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Centroid returns the mean position of the cluster's members.
func (g Group) Centroid() entity.Position {
	var c entity.Position
	for _, u := range g.Users {
		c.X += u.Position.X
		c.Y += u.Position.Y
		c.Z += u.Position.Z
	}
	n := float64(len(g.Users))
	return entity.Position{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// TotalPeople sums the group sizes across members.
func (g Group) TotalPeople() int {
	total := 0
	for _, u := range g.Users {
		total += u.GroupSize
	}
	return total
}

// Detect groups victims by radius agglomeration. A seed is any user whose own
// group size meets the threshold; every other unvisited user within the
// proximity radius is absorbed. A group is kept only if its combined size
// still meets the threshold.
func Detect(users []*entity.User, p Params) []Group {
	var groups []Group
	visited := make(map[int]bool)

	for _, u := range users {
		if visited[u.ID] || u.GroupSize < p.FormationThreshold {
			continue
		}
		g := Group{Users: []*entity.User{u}}
		visited[u.ID] = true
		for _, u2 := range users {
			if visited[u2.ID] {
				continue
			}
			if u.Position.PlanarDistanceTo(u2.Position) < p.Proximity {
				g.Users = append(g.Users, u2)
				visited[u2.ID] = true
			}
		}
		if g.TotalPeople() >= p.FormationThreshold {
			groups = append(groups, g)
		}
	}
	return groups
}

// Coordinator assigns drone crews to detected clusters, at most once per
// cluster key for the lifetime of a run.
type Coordinator struct {
	params   Params
	assigned map[string]int
	nextID   int
}

// NewCoordinator returns a coordinator with an empty registry.
func NewCoordinator(p Params) *Coordinator {
	return &Coordinator{params: p, assigned: make(map[string]int)}
}

// Handled reports whether a cluster key already received a crew.
func (c *Coordinator) Handled(key string) bool {
	_, ok := c.assigned[key]
	return ok
}

// AssignedCount returns the number of clusters that received crews.
func (c *Coordinator) AssignedCount() int { return len(c.assigned) }

// FormCrew selects the nearest available SEARCH drones and retargets them into
// a ring formation around the group centroid, switching them to CLUSTER mode
// permanently. Returns nil without side effects when fewer than MinCrew drones
// are available or the key was already handled; skipping is the ordinary
// outcome, not an error.
func (c *Coordinator) FormCrew(g Group, drones []*entity.Drone) ([]*entity.Drone, int) {
	key := g.Key()
	if c.Handled(key) {
		return nil, 0
	}

	var available []*entity.Drone
	for _, d := range drones {
		if d.Alive && d.Mode == entity.ModeSearch {
			available = append(available, d)
		}
	}
	if len(available) < c.params.MinCrew {
		return nil, 0
	}

	center := g.Centroid()
	sort.Slice(available, func(i, j int) bool {
		di := available[i].Position.PlanarDistanceTo(center)
		dj := available[j].Position.PlanarDistanceTo(center)
		if di != dj {
			return di < dj
		}
		return available[i].ID < available[j].ID
	})

	clusterID := c.nextID
	c.assigned[key] = clusterID
	c.nextID++

	crew := available[:c.params.MinCrew]
	for i, d := range crew {
		angle := float64(i) * (2 * math.Pi / float64(c.params.MinCrew))
		target := entity.Position{
			X: center.X + c.params.FormationRadius*math.Cos(angle),
			Y: center.Y + c.params.FormationRadius*math.Sin(angle),
			Z: c.params.Altitude,
		}
		d.AssignCluster(clusterID, target)
	}
	return crew, clusterID
}
