package docstate

import (
	json "github.com/goccy/go-json"
)

// EducatorLicense drives the educator license renderer.
type EducatorLicense struct {
	LicenseNumber  string         `json:"licenseNumber"`
	HolderName     string         `json:"holderName"`
	LicenseType    string         `json:"licenseType"`
	IssueDate      string         `json:"issueDate"`
	ExpirationDate string         `json:"expirationDate"`
	IssuingState   string         `json:"issuingState"`
	TeachingAreas  []TeachingArea `json:"teachingAreas"`
	Signatories    []Signatory    `json:"signatories"`
}

// TeachingArea is one certified area with its endorsements.
type TeachingArea struct {
	ID           string        `json:"id"`
	Area         string        `json:"area"`
	Endorsements []Endorsement `json:"endorsements"`
}

// Endorsement is one structured endorsement entry. Older persisted data
// stored endorsements as bare subject strings; those normalize to the
// structured form on decode and never reach the rest of the code as
// strings.
type Endorsement struct {
	Subject    string `json:"subject"`
	GradeLevel string `json:"gradeLevel"`
	Date       string `json:"date"`
}

func (e *Endorsement) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var subject string
		if err := json.Unmarshal(data, &subject); err != nil {
			return err
		}
		*e = Endorsement{Subject: subject}
		return nil
	}
	type plain Endorsement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Endorsement(p)
	return nil
}

// Signatory is one signature line on the license.
type Signatory struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// SignatoryCount is the fixed number of signature lines on a license.
const SignatoryCount = 3

// SignatoryAt returns the signatory at position i, padding short or
// missing lists with empty entries so renderers can index 0-2 safely.
func (l EducatorLicense) SignatoryAt(i int) Signatory {
	if i < 0 || i >= len(l.Signatories) {
		return Signatory{}
	}
	return l.Signatories[i]
}

func (l EducatorLicense) clone() EducatorLicense {
	out := l
	out.TeachingAreas = make([]TeachingArea, len(l.TeachingAreas))
	for i, area := range l.TeachingAreas {
		area.Endorsements = append([]Endorsement(nil), area.Endorsements...)
		out.TeachingAreas[i] = area
	}
	out.Signatories = append([]Signatory(nil), l.Signatories...)
	return out
}
