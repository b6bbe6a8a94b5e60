package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"docmint/internal/artifact"
	"docmint/internal/docstate"
	"docmint/internal/export"
	"docmint/internal/lock"
	"docmint/internal/render"
	"docmint/internal/sample"
	"docmint/internal/search"
	"docmint/internal/snapshot"
	"docmint/internal/store"
	"docmint/internal/util"
	"docmint/internal/validate"
)

// Service wires the state store to everything that reads or mutates it.
// Artifacts and Snapshots are optional; a nil service disables the
// corresponding endpoints.
type Service struct {
	store     *store.Store
	search    *search.Service
	exporter  *export.Service
	artifacts *artifact.Store
	snapshots *snapshot.Service
	guard     *lock.Guard
	profile   string

	randMu sync.Mutex
	rand   *rand.Rand
}

type ServiceOptions struct {
	Store     *store.Store
	Search    *search.Service
	Exporter  *export.Service
	Artifacts *artifact.Store
	Snapshots *snapshot.Service
	Profile   string
}

func NewService(opts ServiceOptions) *Service {
	profile := opts.Profile
	if profile == "" {
		profile = "default"
	}
	return &Service{
		store:     opts.Store,
		search:    opts.Search,
		exporter:  opts.Exporter,
		artifacts: opts.Artifacts,
		snapshots: opts.Snapshots,
		guard:     lock.NewGuard(),
		profile:   profile,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// State returns the current state snapshot.
func (s *Service) State() docstate.State {
	return s.store.State()
}

// numericEditFields are the record fields whose edits go through the
// numeric validator. Everything else is free text.
var numericEditFields = map[string]bool{
	"employee.payRate":         true,
	"checkInfo.netPay":         true,
	"checkInfo.maxValidAmount": true,
}

// requiredEditFields warn (without blocking) when cleared.
var requiredEditFields = map[string]bool{
	"company.name":  true,
	"employee.name": true,
}

func fieldSpec(section, field string) validate.Field {
	if section == "taxableWages" {
		return validate.Field{Kind: validate.Numeric}
	}
	if numericEditFields[section+"."+field] {
		return validate.Field{Kind: validate.Numeric}
	}
	return validate.Field{Kind: validate.Text, Required: requiredEditFields[section+"."+field]}
}

// EditField runs one raw form edit through the validator and, when it
// propagates, applies it to the state. The returned warning is advisory.
func (s *Service) EditField(section, field, raw string) (docstate.State, string, error) {
	if section == "teacherCard" && field == "universityId" {
		return s.editUniversityID(raw)
	}
	result := validate.Classify(fieldSpec(section, field), raw)
	if result.Reject {
		return docstate.State{}, "", domainError(http.StatusUnprocessableEntity,
			"VALIDATION_ERROR", fmt.Sprintf("%s.%s is not a valid number", section, field), nil)
	}

	var applyErr error
	s.store.Update(func(st *docstate.State) {
		applyErr = st.ApplyField(section, field, result.Value)
	})
	if applyErr != nil {
		return docstate.State{}, "", domainError(http.StatusUnprocessableEntity,
			"VALIDATION_ERROR", applyErr.Error(), nil)
	}
	return s.store.State(), result.Warning, nil
}

// editUniversityID handles the one integer-pointer field. An empty edit
// clears the override so the card falls back to the hashed pick; anything
// else must parse as a whole index.
func (s *Service) editUniversityID(raw string) (docstate.State, string, error) {
	var value any
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return docstate.State{}, "", domainError(http.StatusUnprocessableEntity,
				"VALIDATION_ERROR", "teacherCard.universityId is not a valid number", nil)
		}
		value = n
	}

	var applyErr error
	s.store.Update(func(st *docstate.State) {
		applyErr = st.ApplyField("teacherCard", "universityId", value)
	})
	if applyErr != nil {
		return docstate.State{}, "", domainError(http.StatusUnprocessableEntity,
			"VALIDATION_ERROR", applyErr.Error(), nil)
	}
	return s.store.State(), "", nil
}

// Reset discards the stored state and returns the defaults.
func (s *Service) Reset(ctx context.Context) docstate.State {
	return s.store.Reset(ctx)
}

// Randomize replaces the whole state with a freshly generated sample.
func (s *Service) Randomize() docstate.State {
	s.randMu.Lock()
	generated := sample.Generate(s.rand)
	s.randMu.Unlock()

	s.store.Update(func(st *docstate.State) {
		*st = generated
	})
	return s.store.State()
}

// AddEarning appends an earnings line with a fresh id.
func (s *Service) AddEarning(item docstate.EarningItem) docstate.State {
	item.ID = util.NewID("earn")
	s.store.Update(func(st *docstate.State) {
		st.AppendEarning(item)
	})
	return s.store.State()
}

// UpdateEarning replaces the fields of one earnings line.
func (s *Service) UpdateEarning(id string, item docstate.EarningItem) (docstate.State, error) {
	found := false
	s.store.Update(func(st *docstate.State) {
		found = st.UpdateEarning(id, func(existing *docstate.EarningItem) {
			item.ID = id
			*existing = item
		})
	})
	if !found {
		return docstate.State{}, domainError(http.StatusNotFound, "NOT_FOUND", "Earnings item not found", nil)
	}
	return s.store.State(), nil
}

// RemoveEarning deletes one earnings line.
func (s *Service) RemoveEarning(id string) (docstate.State, error) {
	found := false
	s.store.Update(func(st *docstate.State) {
		found = st.RemoveEarning(id)
	})
	if !found {
		return docstate.State{}, domainError(http.StatusNotFound, "NOT_FOUND", "Earnings item not found", nil)
	}
	return s.store.State(), nil
}

// AddItem appends a line to one of the amount lists.
func (s *Service) AddItem(section string, item docstate.AmountItem) (docstate.State, error) {
	item.ID = util.NewID(idPrefix(section))
	var appendErr error
	s.store.Update(func(st *docstate.State) {
		appendErr = st.AppendAmount(section, item)
	})
	if appendErr != nil {
		return docstate.State{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", appendErr.Error(), nil)
	}
	return s.store.State(), nil
}

// UpdateItem replaces the fields of one amount line.
func (s *Service) UpdateItem(section, id string, item docstate.AmountItem) (docstate.State, error) {
	var found bool
	var updateErr error
	s.store.Update(func(st *docstate.State) {
		found, updateErr = st.UpdateAmount(section, id, func(existing *docstate.AmountItem) {
			item.ID = id
			*existing = item
		})
	})
	if updateErr != nil {
		return docstate.State{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", updateErr.Error(), nil)
	}
	if !found {
		return docstate.State{}, domainError(http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	return s.store.State(), nil
}

// RemoveItem deletes one amount line.
func (s *Service) RemoveItem(section, id string) (docstate.State, error) {
	var found bool
	var removeErr error
	s.store.Update(func(st *docstate.State) {
		found, removeErr = st.RemoveAmount(section, id)
	})
	if removeErr != nil {
		return docstate.State{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", removeErr.Error(), nil)
	}
	if !found {
		return docstate.State{}, domainError(http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
	}
	return s.store.State(), nil
}

// AddTeachingArea appends a certified area to the license.
func (s *Service) AddTeachingArea(area docstate.TeachingArea) docstate.State {
	area.ID = util.NewID("area")
	s.store.Update(func(st *docstate.State) {
		st.AppendTeachingArea(area)
	})
	return s.store.State()
}

// UpdateTeachingArea replaces the fields of one certified area.
func (s *Service) UpdateTeachingArea(id string, area docstate.TeachingArea) (docstate.State, error) {
	found := false
	s.store.Update(func(st *docstate.State) {
		found = st.UpdateTeachingArea(id, func(existing *docstate.TeachingArea) {
			area.ID = id
			*existing = area
		})
	})
	if !found {
		return docstate.State{}, domainError(http.StatusNotFound, "NOT_FOUND", "Teaching area not found", nil)
	}
	return s.store.State(), nil
}

// RemoveTeachingArea deletes one certified area.
func (s *Service) RemoveTeachingArea(id string) (docstate.State, error) {
	found := false
	s.store.Update(func(st *docstate.State) {
		found = st.RemoveTeachingArea(id)
	})
	if !found {
		return docstate.State{}, domainError(http.StatusNotFound, "NOT_FOUND", "Teaching area not found", nil)
	}
	return s.store.State(), nil
}

func idPrefix(section string) string {
	switch section {
	case "taxes":
		return "tax"
	case "preTaxReductions":
		return "pretax"
	case "deductions":
		return "ded"
	case "employerContributions":
		return "emp"
	}
	return "item"
}

// Documents lists the supported document types with their titles.
func (s *Service) Documents() []map[string]string {
	items := make([]map[string]string, 0, len(render.Types()))
	for _, docType := range render.Types() {
		items = append(items, map[string]string{
			"type":  docType,
			"title": render.Title(docType),
		})
	}
	return items
}

// Preview renders the HTML for one document type against the current
// state.
func (s *Service) Preview(docType string) (string, error) {
	html, err := render.Document(docType, s.store.State())
	if err != nil {
		return "", domainError(http.StatusNotFound, "UNKNOWN_DOCUMENT", err.Error(), nil)
	}
	return html, nil
}

// Export generates an artifact for the current state. When object
// storage is configured the artifact is also uploaded and a download
// link returned.
func (s *Service) Export(ctx context.Context, req export.Request) (*export.Result, string, error) {
	result, err := s.exporter.Export(ctx, s.store.State(), req)
	if err != nil {
		return nil, "", err
	}

	link := ""
	if s.artifacts != nil {
		_, url, err := s.artifacts.Put(ctx, s.profile, result)
		if err != nil {
			// Upload failure must not lose the export itself.
			log.Printf("app: artifact upload failed: %v", err)
		} else {
			link = url
		}
	}
	return result, link, nil
}

// Snapshots lists recorded state snapshots, newest first.
func (s *Service) Snapshots(limit int) ([]snapshot.Entry, error) {
	if s.snapshots == nil {
		return nil, domainError(http.StatusServiceUnavailable, "SNAPSHOTS_DISABLED", "Snapshot history not configured", nil)
	}
	return s.snapshots.List(s.profile, limit)
}

// TakeSnapshot records the current state under a message.
func (s *Service) TakeSnapshot(message string) (snapshot.Entry, error) {
	if s.snapshots == nil {
		return snapshot.Entry{}, domainError(http.StatusServiceUnavailable, "SNAPSHOTS_DISABLED", "Snapshot history not configured", nil)
	}
	payload, err := docstate.Marshal(s.store.State())
	if err != nil {
		return snapshot.Entry{}, fmt.Errorf("encode state: %w", err)
	}
	if message == "" {
		message = "Manual snapshot"
	}
	return s.snapshots.Record(s.profile, payload, message)
}

// RestoreSnapshot replaces the state with a recorded snapshot, merged
// over the defaults like any other restore.
func (s *Service) RestoreSnapshot(hash string) (docstate.State, error) {
	if s.snapshots == nil {
		return docstate.State{}, domainError(http.StatusServiceUnavailable, "SNAPSHOTS_DISABLED", "Snapshot history not configured", nil)
	}
	payload, err := s.snapshots.Payload(s.profile, hash)
	if err != nil {
		return docstate.State{}, domainError(http.StatusNotFound, "NOT_FOUND", "Snapshot not found", nil)
	}
	restored, err := docstate.MergeWithDefaults(docstate.DefaultState(), payload)
	if err != nil {
		return docstate.State{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Snapshot payload is malformed", nil)
	}
	s.store.Update(func(st *docstate.State) {
		*st = restored
	})
	return s.store.State(), nil
}

// SearchDirectory queries the university directory.
func (s *Service) SearchDirectory(query string, limit int) search.Response {
	return s.search.Search(query, limit)
}

// Lock sets a passcode on the profile.
func (s *Service) Lock(passcode string) error {
	if err := s.guard.Lock(s.profile, passcode); err != nil {
		return domainError(http.StatusUnprocessableEntity, "LOCK_FAILED", err.Error(), nil)
	}
	return nil
}

// Unlock clears the profile passcode.
func (s *Service) Unlock(passcode string) error {
	if err := s.guard.Unlock(s.profile, passcode); err != nil {
		return domainError(http.StatusUnauthorized, "UNLOCK_FAILED", err.Error(), nil)
	}
	return nil
}

// Locked reports whether the profile requires a passcode for mutation.
func (s *Service) Locked() bool {
	return s.guard.Locked(s.profile)
}

// VerifyPasscode checks a mutation passcode against the lock.
func (s *Service) VerifyPasscode(passcode string) error {
	return s.guard.Verify(s.profile, passcode)
}

// Ping checks the state backend.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
