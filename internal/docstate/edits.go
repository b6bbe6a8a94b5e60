package docstate

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// listSections are the sections edited through item operations rather
// than field edits.
var listSections = map[string]bool{
	"earnings":              true,
	"taxes":                 true,
	"preTaxReductions":      true,
	"deductions":            true,
	"employerContributions": true,
}

// ApplyField replaces a single field inside a record section. The field
// may be a plain name or a one-level dotted path for nested records
// (e.g. "federal.current" inside taxableWages). The value is whatever
// the form validator decided to propagate: a string, or a float for
// numeric fields. Unknown sections and fields are rejected so typos and
// stale clients surface instead of silently growing the state.
func (s *State) ApplyField(section, field string, value any) error {
	ptr := s.section(section)
	if ptr == nil {
		return fmt.Errorf("unknown section %q", section)
	}
	if listSections[section] {
		return fmt.Errorf("section %q holds a list; use item operations", section)
	}

	raw, err := json.Marshal(ptr)
	if err != nil {
		return fmt.Errorf("encode section %q: %w", section, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("decode section %q: %w", section, err)
	}

	head, rest, nested := strings.Cut(field, ".")
	if nested {
		inner, ok := fields[head].(map[string]any)
		if !ok {
			return fmt.Errorf("unknown field %q in section %q", field, section)
		}
		if _, ok := inner[rest]; !ok {
			return fmt.Errorf("unknown field %q in section %q", field, section)
		}
		inner[rest] = value
	} else {
		if _, ok := fields[field]; !ok {
			return fmt.Errorf("unknown field %q in section %q", field, section)
		}
		fields[field] = value
	}

	patched, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode patched section %q: %w", section, err)
	}
	if err := json.Unmarshal(patched, ptr); err != nil {
		return fmt.Errorf("apply field %s.%s: %w", section, field, err)
	}
	return nil
}

// AmountList returns a pointer to the named {id, description, amount,
// ytd} list, or nil when the section is not one of them.
func (s *State) AmountList(section string) *[]AmountItem {
	switch section {
	case "taxes":
		return &s.Taxes
	case "preTaxReductions":
		return &s.PreTaxReductions
	case "deductions":
		return &s.Deductions
	case "employerContributions":
		return &s.EmployerContributions
	}
	return nil
}

// AppendAmount appends one line item to the named amount list.
func (s *State) AppendAmount(section string, item AmountItem) error {
	list := s.AmountList(section)
	if list == nil {
		return fmt.Errorf("section %q is not an amount list", section)
	}
	*list = append(*list, item)
	return nil
}

// UpdateAmount maps the item with the given id through fn, leaving the
// rest of the list untouched. Returns false when no item matches.
func (s *State) UpdateAmount(section, id string, fn func(*AmountItem)) (bool, error) {
	list := s.AmountList(section)
	if list == nil {
		return false, fmt.Errorf("section %q is not an amount list", section)
	}
	for i := range *list {
		if (*list)[i].ID == id {
			fn(&(*list)[i])
			return true, nil
		}
	}
	return false, nil
}

// RemoveAmount filters the item with the given id out of the named list,
// preserving the order of everything else.
func (s *State) RemoveAmount(section, id string) (bool, error) {
	list := s.AmountList(section)
	if list == nil {
		return false, fmt.Errorf("section %q is not an amount list", section)
	}
	for i := range *list {
		if (*list)[i].ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// AppendEarning appends one earnings line.
func (s *State) AppendEarning(item EarningItem) {
	s.Earnings = append(s.Earnings, item)
}

// UpdateEarning maps the earnings line with the given id through fn.
func (s *State) UpdateEarning(id string, fn func(*EarningItem)) bool {
	for i := range s.Earnings {
		if s.Earnings[i].ID == id {
			fn(&s.Earnings[i])
			return true
		}
	}
	return false
}

// RemoveEarning filters the earnings line with the given id out.
func (s *State) RemoveEarning(id string) bool {
	for i := range s.Earnings {
		if s.Earnings[i].ID == id {
			s.Earnings = append(s.Earnings[:i], s.Earnings[i+1:]...)
			return true
		}
	}
	return false
}

// AppendTeachingArea appends one certified area to the license.
func (s *State) AppendTeachingArea(area TeachingArea) {
	s.EducatorLicense.TeachingAreas = append(s.EducatorLicense.TeachingAreas, area)
}

// UpdateTeachingArea maps the area with the given id through fn.
func (s *State) UpdateTeachingArea(id string, fn func(*TeachingArea)) bool {
	areas := s.EducatorLicense.TeachingAreas
	for i := range areas {
		if areas[i].ID == id {
			fn(&areas[i])
			return true
		}
	}
	return false
}

// RemoveTeachingArea filters the area with the given id out.
func (s *State) RemoveTeachingArea(id string) bool {
	areas := s.EducatorLicense.TeachingAreas
	for i := range areas {
		if areas[i].ID == id {
			s.EducatorLicense.TeachingAreas = append(areas[:i], areas[i+1:]...)
			return true
		}
	}
	return false
}
