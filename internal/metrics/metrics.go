// Aggregate KPIs derived from simulation snapshots
package metrics

import "skymesh-sim/internal/entity"

// Summary holds the headline indicators of a rescue scenario. All values are
// pure functions of current entity state; nothing here feeds back into the
// simulation.
type Summary struct {
	TotalPeople             int     `json:"total_people"`
	DetectedPeople          int     `json:"detected_people"`
	ServedPeople            int     `json:"served_people"`
	DetectionRate           float64 `json:"detection_rate"` // percent of people
	ServiceRate             float64 `json:"service_rate"`   // percent of people
	AggregateThroughputMbps float64 `json:"aggregate_throughput_mbps"`
	AvgThroughputMbps       float64 `json:"avg_throughput_mbps"` // per served user
	AliveDrones             int     `json:"alive_drones"`
	Reports                 int     `json:"reports"`
}

// Compute derives a Summary from entity state and the station's report count.
func Compute(drones []*entity.Drone, users []*entity.User, reports int) Summary {
	var s Summary
	s.Reports = reports

	servedUsers := 0
	for _, u := range users {
		s.TotalPeople += u.GroupSize
		if u.Detected {
			s.DetectedPeople += u.GroupSize
		}
		if u.Served {
			s.ServedPeople += u.GroupSize
			s.AggregateThroughputMbps += u.Throughput
			servedUsers++
		}
	}
	if s.TotalPeople > 0 {
		s.DetectionRate = float64(s.DetectedPeople) / float64(s.TotalPeople) * 100
		s.ServiceRate = float64(s.ServedPeople) / float64(s.TotalPeople) * 100
	}
	if servedUsers > 0 {
		s.AvgThroughputMbps = s.AggregateThroughputMbps / float64(servedUsers)
	}
	for _, d := range drones {
		if d.Alive {
			s.AliveDrones++
		}
	}
	return s
}
