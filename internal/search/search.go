// Package search finds university directory entries by name, short
// name or department. Meilisearch serves queries when configured and
// healthy; otherwise an in-memory scan over the fixed directory answers.
package search

// Result is a single directory hit. Index is the entry's position in
// the reference list, usable as teacherCard.universityId.
type Result struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	ShortName   string   `json:"shortName"`
	Address     string   `json:"address"`
	Departments []string `json:"departments"`
}

// Response is the envelope returned by the directory search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a directory search.
type Searcher interface {
	Search(text string, limit int) ([]Result, int, error)
	Healthy() bool
}
