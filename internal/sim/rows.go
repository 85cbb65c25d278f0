// Row types emitted to writers, with greptime-friendly shapes
package sim

import (
	"time"

	"github.com/google/uuid"

	"skymesh-sim/internal/cluster"
	"skymesh-sim/internal/entity"
	"skymesh-sim/internal/mesh"
)

// ReportRow is one delivered detection report, ready for a sink.
type ReportRow struct {
	RunID        string   `json:"run_id"`    // TAG
	ReportID     string   `json:"report_id"` // TAG
	Tick         int      `json:"tick"`
	DroneID      int      `json:"drone_id"`
	UserID       int      `json:"user_id"`
	GroupSize    int      `json:"group_size"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Path         []string `json:"path"`
	Hops         int      `json:"hops"`
	CapacityMbps float64  `json:"capacity_mbps"`
	Timestamp    time.Time `json:"ts"` // TIME INDEX
}

// NotificationRow is one operator notification, ready for a sink. Path fields
// are empty for detections that could not be delivered.
type NotificationRow struct {
	RunID       string   `json:"run_id"` // TAG
	Type        string   `json:"type"`   // TAG
	Tick        int      `json:"tick"`
	DroneID     int      `json:"drone_id"`
	UserID      int      `json:"user_id"`
	GroupSize   int      `json:"group_size"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Path        []string `json:"path,omitempty"`
	Hops        int      `json:"hops,omitempty"`
	CapacityMbps float64 `json:"capacity_mbps,omitempty"`
	ClusterID   int      `json:"cluster_id,omitempty"`
	CrewIDs     []int    `json:"crew_ids,omitempty"`
	TotalPeople int      `json:"total_people,omitempty"`
	Timestamp   time.Time `json:"ts"` // TIME INDEX
}

// StateRow aggregates one tick of simulation state for dashboards.
type StateRow struct {
	RunID          string    `json:"run_id"` // TAG
	Tick           int       `json:"tick"`
	AliveDrones    int       `json:"alive_drones"`
	TotalPeople    int       `json:"total_people"`
	DetectedPeople int       `json:"detected_people"`
	ServedPeople   int       `json:"served_people"`
	DetectionRate  float64   `json:"detection_rate"`
	ServiceRate    float64   `json:"service_rate"`
	ThroughputMbps float64   `json:"throughput_mbps"`
	Reports        int       `json:"reports"`
	Timestamp      time.Time `json:"ts"` // TIME INDEX
}

func (e *Engine) newReport(d *entity.Drone, u *entity.User, route mesh.Route) entity.Report {
	return entity.Report{
		ID:        uuid.New().String(),
		Tick:      e.tick,
		DroneID:   d.ID,
		UserID:    u.ID,
		GroupSize: u.GroupSize,
		Location:  u.Position,
		Path:      route.Nodes,
		Hops:      route.Hops,
		Capacity:  route.Capacity,
		Timestamp: e.now().UTC(),
	}
}

func (e *Engine) reportRow(r entity.Report) ReportRow {
	return ReportRow{
		RunID:        e.runID,
		ReportID:     r.ID,
		Tick:         r.Tick,
		DroneID:      r.DroneID,
		UserID:       r.UserID,
		GroupSize:    r.GroupSize,
		X:            r.Location.X,
		Y:            r.Location.Y,
		Path:         r.Path,
		Hops:         r.Hops,
		CapacityMbps: r.Capacity,
		Timestamp:    r.Timestamp,
	}
}

func (e *Engine) newDetectionNotification(d *entity.Drone, u *entity.User, pathInfo *entity.PathInfo) entity.Notification {
	return entity.Notification{
		Type:      entity.NotifyVictimDetected,
		Tick:      e.tick,
		DroneID:   d.ID,
		UserID:    u.ID,
		GroupSize: u.GroupSize,
		Location:  u.Position,
		PathInfo:  pathInfo,
		ClusterID: entity.NoCluster,
		Timestamp: e.now().UTC(),
	}
}

func (e *Engine) newClusterNotification(clusterID int, crewIDs []int, g cluster.Group) entity.Notification {
	return entity.Notification{
		Type:        entity.NotifyClusterFormed,
		Tick:        e.tick,
		ClusterID:   clusterID,
		CrewIDs:     crewIDs,
		TotalPeople: g.TotalPeople(),
		Location:    g.Centroid(),
		DroneID:     entity.NoDrone,
		UserID:      entity.NoDrone,
		Timestamp:   e.now().UTC(),
	}
}

func (e *Engine) notificationRow(n entity.Notification) NotificationRow {
	row := NotificationRow{
		RunID:       e.runID,
		Type:        string(n.Type),
		Tick:        n.Tick,
		DroneID:     n.DroneID,
		UserID:      n.UserID,
		GroupSize:   n.GroupSize,
		X:           n.Location.X,
		Y:           n.Location.Y,
		ClusterID:   n.ClusterID,
		CrewIDs:     n.CrewIDs,
		TotalPeople: n.TotalPeople,
		Timestamp:   n.Timestamp,
	}
	if n.PathInfo != nil {
		row.Path = n.PathInfo.Path
		row.Hops = n.PathInfo.Hops
		row.CapacityMbps = n.PathInfo.Capacity
	}
	return row
}

func (e *Engine) stateRow() StateRow {
	s := e.summary()
	return StateRow{
		RunID:          e.runID,
		Tick:           e.tick,
		AliveDrones:    s.AliveDrones,
		TotalPeople:    s.TotalPeople,
		DetectedPeople: s.DetectedPeople,
		ServedPeople:   s.ServedPeople,
		DetectionRate:  s.DetectionRate,
		ServiceRate:    s.ServiceRate,
		ThroughputMbps: s.AggregateThroughputMbps,
		Reports:        s.Reports,
		Timestamp:      e.now().UTC(),
	}
}
