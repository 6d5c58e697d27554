package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/domain/report"
)

type ReportServiceImpl struct{}

func NewReportService() report.Service {
	return &ReportServiceImpl{}
}

// ExportSnapshot renders the snapshot as CSV or JSON. Snapshots contain only
// plain serializable fields, so both encodings are lossless.
func (s *ReportServiceImpl) ExportSnapshot(ctx context.Context, snapshot *analytics.Snapshot, format report.Format) (*report.Export, error) {
	if !format.Valid() {
		return nil, report.ErrUnsupportedFormat
	}

	stamp := snapshot.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}

	export := &report.Export{
		ID:       uuid.NewString(),
		Filename: fmt.Sprintf("analytics-%s.%s", stamp.UTC().Format("2006-01-02"), format),
	}

	switch format {
	case report.FormatCSV:
		data, err := encodeCSV(snapshot)
		if err != nil {
			return nil, fmt.Errorf("encode csv export: %w", err)
		}
		export.ContentType = "text/csv"
		export.Data = data
	case report.FormatJSON:
		data, err := json.MarshalIndent(exportDocument{
			Snapshot: snapshot,
			Rows:     flatten(snapshot),
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json export: %w", err)
		}
		export.ContentType = "application/json"
		export.Data = data
	}

	return export, nil
}

type exportDocument struct {
	Snapshot *analytics.Snapshot `json:"snapshot"`
	Rows     []report.Row        `json:"rows"`
}

// flatten produces the tabular form: department rollups first, then user
// rankings, preserving each group's order.
func flatten(snapshot *analytics.Snapshot) []report.Row {
	rows := make([]report.Row, 0, len(snapshot.Departments)+len(snapshot.Rankings))
	for _, d := range snapshot.Departments {
		rows = append(rows, report.Row{
			RowType:        "department",
			Name:           d.Name,
			TotalTasks:     d.TotalTasks,
			CompletedTasks: d.CompletedTasks,
			CompletionRate: d.CompletionRate,
			MemberCount:    d.MemberCount,
		})
	}
	for _, u := range snapshot.Rankings {
		rows = append(rows, report.Row{
			RowType:        "user",
			Name:           u.Name,
			TotalTasks:     u.TotalTasks,
			CompletedTasks: u.CompletedTasks,
			CompletionRate: u.CompletionRate,
		})
	}
	return rows
}

func encodeCSV(snapshot *analytics.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"row_type", "name", "total_tasks", "completed_tasks", "completion_rate", "member_count"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range flatten(snapshot) {
		record := []string{
			row.RowType,
			row.Name,
			strconv.Itoa(row.TotalTasks),
			strconv.Itoa(row.CompletedTasks),
			strconv.Itoa(row.CompletionRate),
			strconv.Itoa(row.MemberCount),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
