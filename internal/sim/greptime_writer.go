// GreptimeDB sink for reports, notifications, and state rows
package sim

import (
	"context"
	"strconv"
	"strings"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// Table names used in GreptimeDB.
const (
	reportTable = "detection_reports"
	notifTable  = "operator_notifications"
	stateTable  = "sim_state"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeWriter ingests simulation output into GreptimeDB.
type GreptimeWriter struct {
	client greptimeClient
}

// NewGreptimeWriter connects to a GreptimeDB endpoint.
func NewGreptimeWriter(host, database string) (*GreptimeWriter, error) {
	cfg := greptime.NewConfig(host).WithDatabase(database)
	cli, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeWriter{client: cli}, nil
}

// WriteReport ingests a single report row.
func (w *GreptimeWriter) WriteReport(row ReportRow) error {
	return w.WriteReports([]ReportRow{row})
}

// WriteReports ingests multiple report rows in one call.
func (w *GreptimeWriter) WriteReports(rows []ReportRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(reportTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddTagColumn("report_id", types.STRING)
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("drone_id", types.INT64)
	tbl.AddFieldColumn("user_id", types.INT64)
	tbl.AddFieldColumn("group_size", types.INT64)
	tbl.AddFieldColumn("x", types.FLOAT64)
	tbl.AddFieldColumn("y", types.FLOAT64)
	tbl.AddFieldColumn("path", types.STRING)
	tbl.AddFieldColumn("hops", types.INT64)
	tbl.AddFieldColumn("capacity_mbps", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.RunID, r.ReportID,
			int64(r.Tick), int64(r.DroneID), int64(r.UserID), int64(r.GroupSize),
			r.X, r.Y, strings.Join(r.Path, "->"), int64(r.Hops), r.CapacityMbps,
			r.Timestamp); err != nil {
			return err
		}
	}
	_, err = w.client.Write(context.Background(), tbl)
	return err
}

// WriteNotification ingests a single notification row.
func (w *GreptimeWriter) WriteNotification(row NotificationRow) error {
	return w.WriteNotifications([]NotificationRow{row})
}

// WriteNotifications ingests multiple notification rows in one call.
func (w *GreptimeWriter) WriteNotifications(rows []NotificationRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(notifTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddTagColumn("type", types.STRING)
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("drone_id", types.INT64)
	tbl.AddFieldColumn("user_id", types.INT64)
	tbl.AddFieldColumn("group_size", types.INT64)
	tbl.AddFieldColumn("x", types.FLOAT64)
	tbl.AddFieldColumn("y", types.FLOAT64)
	tbl.AddFieldColumn("path", types.STRING)
	tbl.AddFieldColumn("hops", types.INT64)
	tbl.AddFieldColumn("capacity_mbps", types.FLOAT64)
	tbl.AddFieldColumn("cluster_id", types.INT64)
	tbl.AddFieldColumn("crew_ids", types.STRING)
	tbl.AddFieldColumn("total_people", types.INT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.RunID, r.Type,
			int64(r.Tick), int64(r.DroneID), int64(r.UserID), int64(r.GroupSize),
			r.X, r.Y, strings.Join(r.Path, "->"), int64(r.Hops), r.CapacityMbps,
			int64(r.ClusterID), joinInts(r.CrewIDs), int64(r.TotalPeople),
			r.Timestamp); err != nil {
			return err
		}
	}
	_, err = w.client.Write(context.Background(), tbl)
	return err
}

// WriteState ingests a per-tick state row.
func (w *GreptimeWriter) WriteState(row StateRow) error {
	tbl, err := table.New(stateTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("alive_drones", types.INT64)
	tbl.AddFieldColumn("total_people", types.INT64)
	tbl.AddFieldColumn("detected_people", types.INT64)
	tbl.AddFieldColumn("served_people", types.INT64)
	tbl.AddFieldColumn("detection_rate", types.FLOAT64)
	tbl.AddFieldColumn("service_rate", types.FLOAT64)
	tbl.AddFieldColumn("throughput_mbps", types.FLOAT64)
	tbl.AddFieldColumn("reports", types.INT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(row.RunID,
		int64(row.Tick), int64(row.AliveDrones), int64(row.TotalPeople),
		int64(row.DetectedPeople), int64(row.ServedPeople),
		row.DetectionRate, row.ServiceRate, row.ThroughputMbps,
		int64(row.Reports), row.Timestamp); err != nil {
		return err
	}
	_, err = w.client.Write(context.Background(), tbl)
	return err
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
