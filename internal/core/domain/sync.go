package domain

// SyncStage is the furthest step a work item reached in the synchroniser.
type SyncStage int

// Sync stages, in order.
const (
	StageScanned SyncStage = iota
	StageBuilt
	StageChecked
	StageIngested
	StageTabulated
)

// String returns the string representation.
func (s SyncStage) String() string {
	switch s {
	case StageScanned:
		return "scanned"
	case StageBuilt:
		return "built"
	case StageChecked:
		return "checked"
	case StageIngested:
		return "ingested"
	case StageTabulated:
		return "tabulated"
	default:
		return "unknown"
	}
}

// WorkItem is what the synchroniser receives for one spreadsheet row.
// Record is nil when Err is set.
type WorkItem struct {
	Row    int
	Input  Input
	Repo   RepositoryRef
	Owner  string // set when the repository was expanded from a user cell
	Record *OutputRecord
	Err    error
}

// SyncReport describes what happened to one work item.
type SyncReport struct {
	Row       int
	Input     Input
	Repo      RepositoryRef
	Stage     SyncStage
	Ingested  bool
	Duplicate bool
	Err       error
	IngestErr error
	SheetErr  error
}

// Failed reports whether the item ended in an error row.
func (r SyncReport) Failed() bool {
	return r.Err != nil
}

// RunSummary is the result of one pipeline run.
type RunSummary struct {
	RunID   string
	Reports []SyncReport
	Records []OutputRecord
}

// Counts returns the number of ingested, failed and duplicate items.
func (s RunSummary) Counts() (ingested, failed, duplicates int) {
	for _, r := range s.Reports {
		if r.Ingested {
			ingested++
		}
		if r.Failed() {
			failed++
		}
		if r.Duplicate {
			duplicates++
		}
	}
	return ingested, failed, duplicates
}
