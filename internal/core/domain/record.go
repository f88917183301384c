package domain

// OutputRecord is the unit of synchronisation: one row in the spreadsheet
// and one document in the search index.
type OutputRecord struct {
	CommitSHA      string         `json:"commit_sha"`
	Email          string         `json:"email"`
	KeywordCounts  RepoKeywordMap `json:"keyword_counts"`
	KeywordMatches string         `json:"keyword_matches"`
	CommitDate     string         `json:"commit_date"`
	Name           string         `json:"name"`
	Owner          string         `json:"owner"`
	RepoName       string         `json:"repo_name"`
	SnapshotURL    string         `json:"snapshot_url"`
	Origin         string         `json:"origin"`
	FileTypes      string         `json:"file_types"`
	FilesProcessed string         `json:"files_processed"`

	// Enrichment fields sourced from the input spreadsheet.
	Location         *string `json:"location"`
	PresentationLink *string `json:"presentation_link"`
	TechnicalLink    *string `json:"technical_link"`
	Tracks           *string `json:"tracks"`
	Contact          *string `json:"contact"`
	WebsiteLink      *string `json:"website_link"`
	SocialLink       *string `json:"social_link"`
	Wallet           *string `json:"wallet"`
}

// DocumentID returns the stable identity of the record in the search index.
// It is empty when the commit is unknown.
func (r *OutputRecord) DocumentID() string {
	return r.CommitSHA
}

// IsEmpty reports whether every field of the record is unset.
// Empty records must never reach a sink.
func (r *OutputRecord) IsEmpty() bool {
	strs := []string{
		r.CommitSHA, r.Email, r.KeywordMatches, r.CommitDate, r.Name, r.Owner,
		r.RepoName, r.SnapshotURL, r.Origin, r.FileTypes, r.FilesProcessed,
	}
	for _, s := range strs {
		if s != "" {
			return false
		}
	}
	opts := []*string{
		r.Location, r.PresentationLink, r.TechnicalLink, r.Tracks,
		r.Contact, r.WebsiteLink, r.SocialLink, r.Wallet,
	}
	for _, o := range opts {
		if o != nil && *o != "" {
			return false
		}
	}
	return len(r.KeywordCounts) == 0
}

// recordField is a getter/setter pair for a field that may be backfilled.
type recordField struct {
	get func(*OutputRecord) string
	set func(*OutputRecord, string)
}

func optionalField(ptr func(*OutputRecord) **string) recordField {
	return recordField{
		get: func(r *OutputRecord) string {
			if p := *ptr(r); p != nil {
				return *p
			}
			return ""
		},
		set: func(r *OutputRecord, v string) {
			*ptr(r) = &v
		},
	}
}

// enrichableFields lists the fields that may be filled from spreadsheet columns,
// keyed by their JSON name.
var enrichableFields = map[string]recordField{
	"snapshot_url": {
		get: func(r *OutputRecord) string { return r.SnapshotURL },
		set: func(r *OutputRecord, v string) { r.SnapshotURL = v },
	},
	"files_processed": {
		get: func(r *OutputRecord) string { return r.FilesProcessed },
		set: func(r *OutputRecord, v string) { r.FilesProcessed = v },
	},
	"location":          optionalField(func(r *OutputRecord) **string { return &r.Location }),
	"presentation_link": optionalField(func(r *OutputRecord) **string { return &r.PresentationLink }),
	"technical_link":    optionalField(func(r *OutputRecord) **string { return &r.TechnicalLink }),
	"tracks":            optionalField(func(r *OutputRecord) **string { return &r.Tracks }),
	"contact":           optionalField(func(r *OutputRecord) **string { return &r.Contact }),
	"website_link":      optionalField(func(r *OutputRecord) **string { return &r.WebsiteLink }),
	"social_link":       optionalField(func(r *OutputRecord) **string { return &r.SocialLink }),
	"wallet":            optionalField(func(r *OutputRecord) **string { return &r.Wallet }),
}

// IsEnrichableField reports whether name can be passed to Backfill.
func IsEnrichableField(name string) bool {
	_, ok := enrichableFields[name]
	return ok
}

// Backfill copies values from columns into the named fields that are
// currently empty or unset. The value is taken at dataRow of the column
// with the same name; blank cells are skipped. Non-empty fields are never
// overwritten and unknown field names are ignored.
func (r *OutputRecord) Backfill(columns Columns, fields []string, dataRow int) {
	for _, name := range fields {
		f, ok := enrichableFields[name]
		if !ok {
			continue
		}
		if f.get(r) != "" {
			continue
		}
		value, ok := columns.Value(name, dataRow)
		if !ok || value == "" {
			continue
		}
		f.set(r, value)
	}
}

// Columns maps a spreadsheet header to the values of its data rows.
type Columns map[string][]string

// Value returns the value of column name at data row index.
func (c Columns) Value(name string, row int) (string, bool) {
	values, ok := c[name]
	if !ok || row < 0 || row >= len(values) {
		return "", false
	}
	return values[row], true
}

// Input is one work item fed to the pipeline.
// DataRow is the index of the originating spreadsheet data row, or -1.
type Input struct {
	URL     string
	Origin  string
	DataRow int
}
