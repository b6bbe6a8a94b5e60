package search

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"

	"docmint/internal/refdata"
)

const idxUniversities = "docmint_universities"

// universityRecord is the indexed form of a directory entry.
type universityRecord struct {
	ID          string   `json:"id"`
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	ShortName   string   `json:"shortName"`
	Address     string   `json:"address"`
	Departments []string `json:"departments"`
}

// Meili serves directory queries from a Meilisearch index seeded with
// the fixed reference list at startup.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	done    chan struct{}
}

// NewMeili creates the client, configures the index and seeds the
// directory. The service runs degraded (memory fallback) until the
// periodic health check sees Meilisearch come up.
func NewMeili(url, apiKey string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))

	m := &Meili{
		client: client,
		done:   make(chan struct{}),
	}

	if _, err := client.Health(); err != nil {
		log.Printf("search: meilisearch unavailable at %s: %v", url, err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        idxUniversities,
		PrimaryKey: "id",
	}); err != nil {
		log.Printf("search: create index %s (may already exist): %v", idxUniversities, err)
	}

	index := m.client.Index(idxUniversities)
	searchable := []string{"name", "shortName", "departments"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("search: update searchable attrs: %v", err)
	}

	list := refdata.Universities()
	records := make([]universityRecord, len(list))
	for i, u := range list {
		records[i] = universityRecord{
			ID:          strconv.Itoa(i),
			Index:       i,
			Name:        u.Name,
			ShortName:   u.ShortName,
			Address:     u.Address,
			Departments: u.Departments,
		}
	}
	if _, err := index.AddDocuments(records, nil); err != nil {
		log.Printf("search: seed directory index: %v", err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				log.Println("search: meilisearch recovered, reseeding directory index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether Meilisearch is reachable.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// Search queries the directory index.
func (m *Meili) Search(text string, limit int) ([]Result, int, error) {
	if !m.healthy.Load() {
		return nil, 0, fmt.Errorf("meilisearch unhealthy")
	}
	if limit <= 0 {
		limit = 20
	}

	resp, err := m.client.Index(idxUniversities).Search(text, &meili.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		m.healthy.Store(false)
		return nil, 0, fmt.Errorf("meilisearch search: %w", err)
	}

	var results []Result
	for _, hit := range resp.Hits {
		results = append(results, hitToResult(hit))
	}
	return results, int(resp.EstimatedTotalHits), nil
}

func hitToResult(hit meili.Hit) Result {
	var record universityRecord
	if raw, err := json.Marshal(map[string]json.RawMessage(hit)); err == nil {
		_ = json.Unmarshal(raw, &record)
	}
	return Result{
		Index:       record.Index,
		Name:        record.Name,
		ShortName:   record.ShortName,
		Address:     record.Address,
		Departments: record.Departments,
	}
}
