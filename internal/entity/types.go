// Entity state for drones, victims, and base infrastructure
package entity

import (
	"math"
	"time"
)

// Mode is a drone's current tasking.
type Mode string

const (
	ModeSearch  Mode = "SEARCH"
	ModeRescue  Mode = "RESCUE"
	ModeRelay   Mode = "RELAY"
	ModeCluster Mode = "CLUSTER"
)

// NoCluster marks a drone that belongs to no cluster crew.
const NoCluster = -1

// NoDrone marks a user with no detecting or serving drone.
const NoDrone = -1

// Position is a point in the simulation area. Z is altitude in meters.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo returns the 3D euclidean distance to o.
func (p Position) DistanceTo(o Position) float64 {
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlanarDistanceTo returns the ground-plane distance to o, ignoring altitude.
func (p Position) PlanarDistanceTo(o Position) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Drone is a mobile relay and sensing node with finite energy.
type Drone struct {
	ID              int
	Position        Position
	Battery         float64
	Alive           bool
	Mode            Mode
	Target          *Position
	ClusterID       int // NoCluster unless Mode == ModeCluster
	DetectedVictims []int
}

// User is a stationary victim group awaiting detection and service.
type User struct {
	ID          int
	Position    Position
	GroupSize   int
	Detected    bool
	DetectedBy  int
	Served      bool
	ServedBy    int
	Throughput  float64
	HopsToTower int
}

// Tower is the fixed gateway between the drone mesh and the wired segment.
type Tower struct {
	Position Position
}

// PathInfo captures the delivery route of a report or notification.
type PathInfo struct {
	Path     []string `json:"path"`
	Hops     int      `json:"hops"`
	Capacity float64  `json:"capacity"`
}

// Report is an immutable delivered-detection record held by the station.
type Report struct {
	ID        string
	Tick      int
	DroneID   int
	UserID    int
	GroupSize int
	Location  Position
	Path      []string
	Hops      int
	Capacity  float64
	Timestamp time.Time
}

// NotificationType distinguishes operator notification events.
type NotificationType string

const (
	NotifyVictimDetected NotificationType = "victim_detected"
	NotifyClusterFormed  NotificationType = "cluster_formed"
)

// Notification is an operator-facing event. PathInfo is nil when a detection
// could not be delivered to the station.
type Notification struct {
	Type        NotificationType
	Tick        int
	DroneID     int
	UserID      int
	GroupSize   int
	Location    Position
	PathInfo    *PathInfo
	ClusterID   int
	CrewIDs     []int
	TotalPeople int
	Timestamp   time.Time
}

// MonitoringStation durably logs delivered detection reports.
type MonitoringStation struct {
	Position Position
	reports  []Report
}

// NewMonitoringStation returns a station at the given position with an empty log.
func NewMonitoringStation(pos Position) *MonitoringStation {
	return &MonitoringStation{Position: pos}
}

// ReceiveReport appends a delivered report to the station log.
func (s *MonitoringStation) ReceiveReport(r Report) {
	s.reports = append(s.reports, r)
}

// Reports returns a copy of the station's report log.
func (s *MonitoringStation) Reports() []Report {
	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// ReportCount returns the number of delivered reports.
func (s *MonitoringStation) ReportCount() int {
	return len(s.reports)
}
