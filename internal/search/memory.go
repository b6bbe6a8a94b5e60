package search

import (
	"strings"

	"docmint/internal/refdata"
)

// Memory answers directory queries by scanning the fixed reference list.
// It is the always-available fallback and carries no external state.
type Memory struct {
	entries []refdata.University
}

// NewMemory builds the fallback over the fixed directory.
func NewMemory() *Memory {
	return &Memory{entries: refdata.Universities()}
}

// Search matches the query case-insensitively against name, short name
// and department names. An empty query lists everything.
func (m *Memory) Search(text string, limit int) ([]Result, int, error) {
	if limit <= 0 {
		limit = 20
	}
	needle := strings.ToLower(strings.TrimSpace(text))

	var results []Result
	total := 0
	for i, u := range m.entries {
		if !matches(u, needle) {
			continue
		}
		total++
		if len(results) < limit {
			results = append(results, Result{
				Index:       i,
				Name:        u.Name,
				ShortName:   u.ShortName,
				Address:     u.Address,
				Departments: u.Departments,
			})
		}
	}
	return results, total, nil
}

// Healthy always reports true; the fallback cannot go away.
func (m *Memory) Healthy() bool { return true }

func matches(u refdata.University, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(u.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(u.ShortName), needle) {
		return true
	}
	for _, dept := range u.Departments {
		if strings.Contains(strings.ToLower(dept), needle) {
			return true
		}
	}
	return false
}
