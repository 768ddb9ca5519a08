package domain

// Report is the renderable form of a simulation result, consumed by the
// terminal exporter.
type Report struct {
	Title    string
	Year     int
	Sections []ReportSection
	Currency string
}

// ReportSection groups related indicators.
type ReportSection struct {
	Title   string
	Summary map[string]string
	Details []ReportDetail
}

// ReportDetail is one indicator row within a section.
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
