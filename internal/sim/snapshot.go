// Read-only snapshot accessors for external collaborators
package sim

import (
	"skymesh-sim/internal/entity"
	"skymesh-sim/internal/mesh"
	"skymesh-sim/internal/metrics"
)

// DroneState is a value copy of one drone for visualization and metrics.
type DroneState struct {
	ID        int             `json:"id"`
	Position  entity.Position `json:"position"`
	Battery   float64         `json:"battery"`
	Alive     bool            `json:"alive"`
	Mode      string          `json:"mode"`
	ClusterID int             `json:"cluster_id"`
	Detected  []int           `json:"detected_victims,omitempty"`
}

// UserState is a value copy of one user with live coverage status.
type UserState struct {
	ID          int             `json:"id"`
	Position    entity.Position `json:"position"`
	GroupSize   int             `json:"group_size"`
	Detected    bool            `json:"detected"`
	DetectedBy  int             `json:"detected_by"`
	Served      bool            `json:"served"`
	ServedBy    int             `json:"served_by"`
	Throughput  float64         `json:"throughput_mbps"`
	HopsToTower int             `json:"hops_to_tower"`
}

// GraphSnapshot is the current topology for visualization collaborators.
type GraphSnapshot struct {
	Nodes []string    `json:"nodes"`
	Links []mesh.Link `json:"links"`
}

// Drones returns value copies of all drones, dead ones included.
func (e *Engine) Drones() []DroneState {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]DroneState, len(e.drones))
	for i, d := range e.drones {
		det := make([]int, len(d.DetectedVictims))
		copy(det, d.DetectedVictims)
		out[i] = DroneState{
			ID:        d.ID,
			Position:  d.Position,
			Battery:   d.Battery,
			Alive:     d.Alive,
			Mode:      string(d.Mode),
			ClusterID: d.ClusterID,
			Detected:  det,
		}
	}
	return out
}

// AliveDrones returns value copies of only the alive drones.
func (e *Engine) AliveDrones() []DroneState {
	all := e.Drones()
	out := all[:0]
	for _, d := range all {
		if d.Alive {
			out = append(out, d)
		}
	}
	return out
}

// Users returns value copies of all users with current status.
func (e *Engine) Users() []UserState {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]UserState, len(e.users))
	for i, u := range e.users {
		out[i] = UserState{
			ID:          u.ID,
			Position:    u.Position,
			GroupSize:   u.GroupSize,
			Detected:    u.Detected,
			DetectedBy:  u.DetectedBy,
			Served:      u.Served,
			ServedBy:    u.ServedBy,
			Throughput:  u.Throughput,
			HopsToTower: u.HopsToTower,
		}
	}
	return out
}

// Reports returns a copy of the station's durable report log.
func (e *Engine) Reports() []entity.Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.station.Reports()
}

// Notifications returns a copy of the cumulative operator notification log.
func (e *Engine) Notifications() []entity.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]entity.Notification, len(e.notifications))
	copy(out, e.notifications)
	return out
}

// Graph returns the most recently built topology.
func (e *Engine) Graph() GraphSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return GraphSnapshot{Nodes: e.graph.Nodes(), Links: e.graph.Links()}
}

// Metrics computes the aggregate KPI summary for the current state.
func (e *Engine) Metrics() metrics.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary()
}

func (e *Engine) summary() metrics.Summary {
	return metrics.Compute(e.drones, e.users, e.station.ReportCount())
}
