package entity

// NewDrone returns an alive drone in SEARCH mode at the given position.
func NewDrone(id int, pos Position, battery float64) *Drone {
	return &Drone{
		ID:        id,
		Position:  pos,
		Battery:   battery,
		Alive:     true,
		Mode:      ModeSearch,
		ClusterID: NoCluster,
	}
}

// Drain removes energy from the drone's battery. Reaching zero kills the
// drone permanently; a dead drone never drains further and never revives.
func (d *Drone) Drain(amount float64) {
	if !d.Alive {
		return
	}
	d.Battery -= amount
	if d.Battery <= 0 {
		d.Battery = 0
		d.Alive = false
	}
}

// AssignCluster retasks the drone into a cluster crew for the rest of the run.
func (d *Drone) AssignCluster(clusterID int, target Position) {
	d.Mode = ModeCluster
	d.ClusterID = clusterID
	t := target
	d.Target = &t
}

// RecordDetection notes a victim this drone personally found.
func (d *Drone) RecordDetection(userID int) {
	d.DetectedVictims = append(d.DetectedVictims, userID)
}

// NewUser returns an undetected, unserved user. groupSize is the number of
// people the entity represents and must be at least 1.
func NewUser(id int, pos Position, groupSize int) *User {
	return &User{
		ID:         id,
		Position:   pos,
		GroupSize:  groupSize,
		DetectedBy: NoDrone,
		ServedBy:   NoDrone,
	}
}

// MarkDetected flips the user to detected, attributing the find to droneID.
// The transition is one-way; repeated calls report false and change nothing.
func (u *User) MarkDetected(droneID int) bool {
	if u.Detected {
		return false
	}
	u.Detected = true
	u.DetectedBy = droneID
	return true
}

// ClearService resets the per-tick coverage fields ahead of recomputation.
func (u *User) ClearService() {
	u.Served = false
	u.ServedBy = NoDrone
	u.Throughput = 0
	u.HopsToTower = 0
}

// SetService records the serving drone and its tower path for this tick.
func (u *User) SetService(droneID int, throughput float64, hops int) {
	u.Served = true
	u.ServedBy = droneID
	u.Throughput = throughput
	u.HopsToTower = hops
}
