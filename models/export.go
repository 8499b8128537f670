package models

// TableCount is the number of records exported from one table.
type TableCount struct {
	Table   string `json:"table"`
	Records int    `json:"records"`
}

// ExportResult summarizes a finished export run.
type ExportResult struct {
	// Path is the location of the written bundle file.
	Path string `json:"path"`

	// UploadedTo is the object URL the bundle was copied to, if any.
	UploadedTo string `json:"uploaded_to,omitempty"`

	// Tables lists per-table record counts in export order.
	Tables []TableCount `json:"tables"`

	// TotalRecords is the sum of all per-table counts.
	TotalRecords int `json:"total_records"`
}

// NewExportResult derives per-table and total counts from a bundle.
func NewExportResult(path string, bundle *Bundle) *ExportResult {
	result := &ExportResult{
		Path:   path,
		Tables: make([]TableCount, 0, len(bundle.Tables)),
	}
	for _, t := range bundle.Tables {
		result.Tables = append(result.Tables, TableCount{Table: t.Name, Records: len(t.Records)})
		result.TotalRecords += len(t.Records)
	}
	return result
}
