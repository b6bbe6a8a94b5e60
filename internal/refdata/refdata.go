// Package refdata holds the fixed university directory and the
// hash-derived selection rule. The list is ordered and stable for the
// lifetime of the process; state refers to entries by position.
package refdata

import "unicode/utf16"

// University is one directory entry. Departments is never empty.
type University struct {
	Name        string   `json:"name"`
	ShortName   string   `json:"shortName"`
	Color       string   `json:"color"`
	Address     string   `json:"address"`
	Departments []string `json:"departments"`
}

// HashIndex maps a string to a stable index in [0, n) by summing its
// UTF-16 code units modulo n. The same input always lands on the same
// index, so derived choices stay stable across renders and sessions
// without being persisted. Returns 0 when n is not positive.
func HashIndex(s string, n int) int {
	if n <= 0 {
		return 0
	}
	sum := 0
	for _, unit := range utf16.Encode([]rune(s)) {
		sum += int(unit)
	}
	return sum % n
}

// Universities returns the fixed ordered directory. Callers must not
// mutate the returned slice.
func Universities() []University {
	return universities
}

// UniversityFor resolves the directory entry for a person. An explicit
// in-range index wins; nil, negative or stale out-of-range indexes fall
// back to the hash-derived choice, never an error.
func UniversityFor(name string, explicit *int) University {
	if explicit != nil && *explicit >= 0 && *explicit < len(universities) {
		return universities[*explicit]
	}
	return universities[HashIndex(name, len(universities))]
}

// DepartmentFor picks the stable department for a person within a
// university.
func DepartmentFor(name string, u University) string {
	if len(u.Departments) == 0 {
		return ""
	}
	return u.Departments[HashIndex(name, len(u.Departments))]
}

var universities = []University{
	{
		Name:        "Northgate State University",
		ShortName:   "NSU",
		Color:       "#1f3d7a",
		Address:     "400 University Dr, Northgate, CA 94210",
		Departments: []string{"Mathematics", "English", "History", "Biology", "Computer Science", "Education"},
	},
	{
		Name:        "Camden Valley University",
		ShortName:   "CVU",
		Color:       "#7a1f2b",
		Address:     "1 Camden Valley Pkwy, Camden, TX 75901",
		Departments: []string{"Chemistry", "Physics", "Music", "Political Science", "Economics"},
	},
	{
		Name:        "Pacific Ridge University",
		ShortName:   "PRU",
		Color:       "#0f5c4a",
		Address:     "2200 Ridgeline Blvd, Monterey, CA 93940",
		Departments: []string{"Marine Biology", "Environmental Science", "Mathematics", "Psychology", "Art", "Philosophy"},
	},
	{
		Name:        "Harlow College of the Arts",
		ShortName:   "HCA",
		Color:       "#5b2a86",
		Address:     "78 Beacon St, Harlow, MA 02114",
		Departments: []string{"Fine Arts", "Theatre", "Music Theory", "Graphic Design", "Art History"},
	},
	{
		Name:        "Summit Plains University",
		ShortName:   "SPU",
		Color:       "#8a6d1f",
		Address:     "950 Prairie View Rd, Summit Plains, KS 66604",
		Departments: []string{"Agricultural Science", "Mathematics", "Chemistry", "Education", "Business"},
	},
	{
		Name:        "Lakeshore Technical University",
		ShortName:   "LTU",
		Color:       "#155e75",
		Address:     "310 Harbor Ave, Lakeshore, MI 49201",
		Departments: []string{"Engineering", "Computer Science", "Industrial Design", "Physics", "Mathematics"},
	},
	{
		Name:        "Brookfield University",
		ShortName:   "BU",
		Color:       "#3f6212",
		Address:     "12 College Green, Brookfield, VT 05036",
		Departments: []string{"Literature", "History", "Linguistics", "Sociology", "Education", "Classics"},
	},
	{
		Name:        "Santa Elena University",
		ShortName:   "SEU",
		Color:       "#9a3412",
		Address:     "600 Mission Bell Way, Santa Elena, NM 87500",
		Departments: []string{"Anthropology", "Spanish", "Geology", "Biology", "Public Health"},
	},
	{
		Name:        "Ashford Metropolitan University",
		ShortName:   "AMU",
		Color:       "#1e293b",
		Address:     "2500 Commerce St, Ashford, IL 60601",
		Departments: []string{"Business", "Journalism", "Law", "Economics", "Urban Planning", "Computer Science"},
	},
	{
		Name:        "Windmere State College",
		ShortName:   "WSC",
		Color:       "#713f12",
		Address:     "88 Orchard Hill Rd, Windmere, OR 97301",
		Departments: []string{"Forestry", "Education", "Mathematics", "Environmental Science", "Kinesiology"},
	},
}
