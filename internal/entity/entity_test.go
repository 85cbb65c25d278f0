package entity

import (
	"math"
	"testing"
)

func TestDroneDrainClampsAndKills(t *testing.T) {
	d := NewDrone(1, Position{X: 10, Y: 10, Z: 80}, 50)

	d.Drain(30)
	if !d.Alive || d.Battery != 20 {
		t.Fatalf("after first drain: alive=%v battery=%v", d.Alive, d.Battery)
	}

	d.Drain(25)
	if d.Alive {
		t.Errorf("drone should be dead after battery hit zero")
	}
	if d.Battery != 0 {
		t.Errorf("battery = %v, want clamped to 0", d.Battery)
	}

	// Dead drones never drain or revive.
	d.Battery = 0
	d.Drain(10)
	if d.Battery != 0 || d.Alive {
		t.Errorf("dead drone mutated: alive=%v battery=%v", d.Alive, d.Battery)
	}
}

func TestDroneDrainExactZeroKills(t *testing.T) {
	d := NewDrone(2, Position{}, 15)
	d.Drain(15)
	if d.Alive {
		t.Errorf("battery exactly 0 must mean dead")
	}
}

func TestUserMarkDetectedIsOneWay(t *testing.T) {
	u := NewUser(7, Position{X: 100, Y: 100}, 3)
	if u.Detected || u.DetectedBy != NoDrone {
		t.Fatalf("new user already detected")
	}
	if !u.MarkDetected(4) {
		t.Fatalf("first MarkDetected returned false")
	}
	if u.DetectedBy != 4 {
		t.Errorf("DetectedBy = %d, want 4", u.DetectedBy)
	}
	if u.MarkDetected(9) {
		t.Errorf("second MarkDetected must be a no-op")
	}
	if u.DetectedBy != 4 {
		t.Errorf("DetectedBy changed to %d on repeat detection", u.DetectedBy)
	}
}

func TestUserServiceIsPerTick(t *testing.T) {
	u := NewUser(1, Position{}, 1)
	u.SetService(3, 42.5, 2)
	if !u.Served || u.ServedBy != 3 || u.Throughput != 42.5 || u.HopsToTower != 2 {
		t.Fatalf("SetService did not record fields: %+v", u)
	}
	u.ClearService()
	if u.Served || u.ServedBy != NoDrone || u.Throughput != 0 || u.HopsToTower != 0 {
		t.Errorf("ClearService left stale fields: %+v", u)
	}
}

func TestPositionDistances(t *testing.T) {
	a := Position{X: 0, Y: 0, Z: 0}
	b := Position{X: 3, Y: 4, Z: 12}
	if got := a.PlanarDistanceTo(b); math.Abs(got-5) > 1e-9 {
		t.Errorf("planar distance = %v, want 5", got)
	}
	if got := a.DistanceTo(b); math.Abs(got-13) > 1e-9 {
		t.Errorf("3d distance = %v, want 13", got)
	}
}
