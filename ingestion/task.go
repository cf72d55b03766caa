package ingestion

// File is one user-supplied file entering the pipeline. DeclaredType is the
// media type reported by the source environment and may be empty.
type File struct {
	Name         string
	DeclaredType string
	Data         []byte
}

// Report is the per-file outcome of a pipeline run. Error carries the
// failure message for failed files, or an informational note for files
// that succeeded without producing chunks.
type Report struct {
	FileName string
	Success  bool
	Error    string
}

// Summary aggregates a batch's reports.
type Summary struct {
	Succeeded int
	Failed    int
}

// Summarize counts successful and failed entries in a batch report.
func Summarize(reports []Report) Summary {
	var s Summary
	for _, report := range reports {
		if report.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
