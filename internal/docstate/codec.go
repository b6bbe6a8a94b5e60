package docstate

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Marshal serializes the state to its durable JSON form.
func Marshal(s State) ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal parses a full serialized state.
func Unmarshal(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	return s, nil
}

// MergeWithDefaults restores persisted state on top of the default shape.
// The merge is shallow and runs over the fixed list of known section
// keys: every known section present in the payload replaces the default
// section wholesale, sections missing from the payload keep their
// defaults (so shapes added after the user's last session still appear),
// and unknown top-level keys from old or foreign data are dropped.
func MergeWithDefaults(defaults State, payload []byte) (State, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(payload, &sections); err != nil {
		return State{}, fmt.Errorf("decode persisted state: %w", err)
	}

	merged := defaults.Clone()
	for _, key := range sectionKeys {
		raw, ok := sections[key]
		if !ok {
			continue
		}
		// Decode into a zero section so a present key replaces the
		// default wholesale instead of patching over it.
		var fresh State
		if err := json.Unmarshal(raw, fresh.section(key)); err != nil {
			return State{}, fmt.Errorf("decode persisted section %q: %w", key, err)
		}
		merged.setSection(key, &fresh)
	}
	return merged, nil
}

// section returns a pointer to the named section for JSON decoding.
// Callers only pass keys from sectionKeys.
func (s *State) section(key string) any {
	switch key {
	case "company":
		return &s.Company
	case "bank":
		return &s.Bank
	case "employee":
		return &s.Employee
	case "meta":
		return &s.Meta
	case "earnings":
		return &s.Earnings
	case "taxes":
		return &s.Taxes
	case "preTaxReductions":
		return &s.PreTaxReductions
	case "deductions":
		return &s.Deductions
	case "employerContributions":
		return &s.EmployerContributions
	case "taxableWages":
		return &s.TaxableWages
	case "checkInfo":
		return &s.CheckInfo
	case "teacherCard":
		return &s.TeacherCard
	case "educatorLicense":
		return &s.EducatorLicense
	}
	return nil
}

// setSection copies the named section from src into s.
func (s *State) setSection(key string, src *State) {
	switch key {
	case "company":
		s.Company = src.Company
	case "bank":
		s.Bank = src.Bank
	case "employee":
		s.Employee = src.Employee
	case "meta":
		s.Meta = src.Meta
	case "earnings":
		s.Earnings = src.Earnings
	case "taxes":
		s.Taxes = src.Taxes
	case "preTaxReductions":
		s.PreTaxReductions = src.PreTaxReductions
	case "deductions":
		s.Deductions = src.Deductions
	case "employerContributions":
		s.EmployerContributions = src.EmployerContributions
	case "taxableWages":
		s.TaxableWages = src.TaxableWages
	case "checkInfo":
		s.CheckInfo = src.CheckInfo
	case "teacherCard":
		s.TeacherCard = src.TeacherCard
	case "educatorLicense":
		s.EducatorLicense = src.EducatorLicense
	}
}
