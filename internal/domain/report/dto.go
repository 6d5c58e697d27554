package report

// ========== SNAPSHOT EXPORT ==========

// Format selects the export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Valid checks if the format is supported
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatJSON
}

// Export is a rendered snapshot ready to download
type Export struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Row is one flat tabular line of the export: either a department rollup or
// a user ranking. MemberCount is only meaningful for department rows.
type Row struct {
	RowType        string `json:"row_type"` // "department" | "user"
	Name           string `json:"name"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	CompletionRate int    `json:"completion_rate"`
	MemberCount    int    `json:"member_count"`
}
