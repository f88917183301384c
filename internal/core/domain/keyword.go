package domain

// KeywordResult accumulates the matches of one keyword across a repository.
// Files holds one entry per file in which the keyword appeared.
type KeywordResult struct {
	Count uint     `json:"count"`
	Files []string `json:"files"`
}

// RepoKeywordMap maps a keyword to its accumulated result.
type RepoKeywordMap map[string]*KeywordResult

// Add records count occurrences of keyword in the file at fileURL.
// A zero count is ignored so that every key in the map has matched.
func (m RepoKeywordMap) Add(keyword string, count uint, fileURL string) {
	if count == 0 {
		return
	}
	res, ok := m[keyword]
	if !ok {
		res = &KeywordResult{Files: []string{}}
		m[keyword] = res
	}
	res.Count += count
	res.Files = append(res.Files, fileURL)
}

// Matches returns the number of distinct keywords with at least one match.
func (m RepoKeywordMap) Matches() int {
	n := 0
	for _, res := range m {
		if res != nil && res.Count > 0 {
			n++
		}
	}
	return n
}

// ScanResult is the outcome of scanning one repository tree.
type ScanResult struct {
	Keywords       RepoKeywordMap
	FileTypes      string
	FilesProcessed int
}
