package docstate

import (
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestRoundTrip(t *testing.T) {
	original := DefaultState()
	original.Employee.PayRate = Raw("-")
	original.Earnings[0].Quantity = Raw("")

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restored, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(original, restored) {
		t.Fatalf("round trip mismatch:\n  before: %+v\n  after:  %+v", original, restored)
	}
}

func TestNumberMarshal(t *testing.T) {
	tests := []struct {
		name string
		in   Number
		want string
	}{
		{"integer", N(500), "500"},
		{"decimal", N(1234.5), "1234.5"},
		{"negative", N(-22.75), "-22.75"},
		{"zero", N(0), "0"},
		{"negative zero collapses", N(negZero()), "0"},
		{"empty text", Raw(""), `""`},
		{"lone minus", Raw("-"), `"-"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.MarshalJSON()
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func negZero() float64 {
	z := 0.0
	return -z
}

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantNumeric bool
		wantValue   float64
		wantRaw     string
	}{
		{"number", "42.5", true, 42.5, ""},
		{"numeric string normalizes", `"42.5"`, true, 42.5, ""},
		{"empty string stays text", `""`, false, 0, ""},
		{"lone minus stays text", `"-"`, false, 0, "-"},
		{"garbage string stays text", `"abc"`, false, 0, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := n.UnmarshalJSON([]byte(tt.in)); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if n.IsNumeric() != tt.wantNumeric {
				t.Fatalf("numeric = %v, want %v", n.IsNumeric(), tt.wantNumeric)
			}
			if tt.wantNumeric {
				if v, _ := n.Float(); v != tt.wantValue {
					t.Errorf("value = %v, want %v", v, tt.wantValue)
				}
			} else if n.String() != tt.wantRaw {
				t.Errorf("raw = %q, want %q", n.String(), tt.wantRaw)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := DefaultState()

	t.Run("saved sections override defaults", func(t *testing.T) {
		merged, err := MergeWithDefaults(defaults, []byte(`{"company":{"name":"Saved Co"}}`))
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		if merged.Company.Name != "Saved Co" {
			t.Errorf("company name = %q, want Saved Co", merged.Company.Name)
		}
		// replaced wholesale: sibling fields in the saved section are gone
		if merged.Company.Phone != "" {
			t.Errorf("company phone = %q, want empty after wholesale replace", merged.Company.Phone)
		}
		// sections absent from the payload keep their defaults
		if merged.Bank.BankName != defaults.Bank.BankName {
			t.Errorf("bank name = %q, want default", merged.Bank.BankName)
		}
	})

	t.Run("unknown top-level keys are dropped", func(t *testing.T) {
		merged, err := MergeWithDefaults(defaults, []byte(`{"legacyJunk":{"a":1},"bank":{"bankName":"Kept"}}`))
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		if merged.Bank.BankName != "Kept" {
			t.Errorf("bank name = %q, want Kept", merged.Bank.BankName)
		}
		data, err := Marshal(merged)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(data), "legacyJunk") {
			t.Errorf("merged state still carries unknown key: %s", data)
		}
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		if _, err := MergeWithDefaults(defaults, []byte("{not json")); err == nil {
			t.Fatal("expected error for malformed payload")
		}
	})

	t.Run("wrong section shape is an error", func(t *testing.T) {
		if _, err := MergeWithDefaults(defaults, []byte(`{"company":[1,2,3]}`)); err == nil {
			t.Fatal("expected error for mistyped section")
		}
	})
}

func TestEndorsementLegacyForm(t *testing.T) {
	payload := []byte(`{"id":"area-sci","area":"Science","endorsements":["Biology",{"subject":"Chemistry","gradeLevel":"9-12","date":"01/01/2020"}]}`)
	var area TeachingArea
	if err := json.Unmarshal(payload, &area); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(area.Endorsements) != 2 {
		t.Fatalf("endorsements = %d, want 2", len(area.Endorsements))
	}
	if area.Endorsements[0] != (Endorsement{Subject: "Biology"}) {
		t.Errorf("legacy endorsement = %+v, want normalized Biology", area.Endorsements[0])
	}
	if area.Endorsements[1].GradeLevel != "9-12" {
		t.Errorf("structured endorsement lost fields: %+v", area.Endorsements[1])
	}
}

func TestSignatoryPadding(t *testing.T) {
	license := EducatorLicense{Signatories: []Signatory{{Name: "Only One", Title: "Director"}}}
	if got := license.SignatoryAt(0).Name; got != "Only One" {
		t.Errorf("position 0 = %q", got)
	}
	for i := 1; i < SignatoryCount; i++ {
		if got := license.SignatoryAt(i); got != (Signatory{}) {
			t.Errorf("position %d = %+v, want empty", i, got)
		}
	}
}

func TestApplyField(t *testing.T) {
	t.Run("sets a string field", func(t *testing.T) {
		st := DefaultState()
		if err := st.ApplyField("company", "name", "New Name"); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if st.Company.Name != "New Name" {
			t.Errorf("name = %q", st.Company.Name)
		}
	})

	t.Run("sets a numeric field from a float", func(t *testing.T) {
		st := DefaultState()
		if err := st.ApplyField("employee", "payRate", 42.5); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if v, ok := st.Employee.PayRate.Float(); !ok || v != 42.5 {
			t.Errorf("payRate = %v ok=%v", v, ok)
		}
	})

	t.Run("keeps an in-progress fragment as text", func(t *testing.T) {
		st := DefaultState()
		if err := st.ApplyField("employee", "payRate", "-"); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if st.Employee.PayRate.IsNumeric() || st.Employee.PayRate.String() != "-" {
			t.Errorf("payRate = %+v, want raw \"-\"", st.Employee.PayRate)
		}
	})

	t.Run("dotted path reaches nested pairs", func(t *testing.T) {
		st := DefaultState()
		if err := st.ApplyField("taxableWages", "federal.current", 999.5); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if v, _ := st.TaxableWages.Federal.Current.Float(); v != 999.5 {
			t.Errorf("federal current = %v", v)
		}
	})

	t.Run("sets and clears a pointer field", func(t *testing.T) {
		st := DefaultState()
		if err := st.ApplyField("teacherCard", "universityId", 3); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if st.TeacherCard.UniversityID == nil || *st.TeacherCard.UniversityID != 3 {
			t.Errorf("universityId = %v, want 3", st.TeacherCard.UniversityID)
		}
		if err := st.ApplyField("teacherCard", "universityId", nil); err != nil {
			t.Fatalf("clear: %v", err)
		}
		if st.TeacherCard.UniversityID != nil {
			t.Errorf("universityId = %v, want nil", *st.TeacherCard.UniversityID)
		}
	})

	t.Run("rejects unknown section and field", func(t *testing.T) {
		st := DefaultState()
		if err := st.ApplyField("nope", "name", "x"); err == nil {
			t.Error("expected unknown section error")
		}
		if err := st.ApplyField("company", "nope", "x"); err == nil {
			t.Error("expected unknown field error")
		}
		if err := st.ApplyField("earnings", "description", "x"); err == nil {
			t.Error("expected list section rejection")
		}
	})
}

func TestTeachingAreaAddRemoveRoundTrip(t *testing.T) {
	st := DefaultState()
	before := append([]TeachingArea(nil), st.EducatorLicense.TeachingAreas...)

	st.AppendTeachingArea(TeachingArea{ID: "area-temp", Area: "Drama"})
	if len(st.EducatorLicense.TeachingAreas) != len(before)+1 {
		t.Fatalf("append did not grow the list")
	}
	if !st.RemoveTeachingArea("area-temp") {
		t.Fatal("remove reported no match")
	}
	if !reflect.DeepEqual(st.EducatorLicense.TeachingAreas, before) {
		t.Errorf("list not restored:\n  before: %+v\n  after:  %+v", before, st.EducatorLicense.TeachingAreas)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	st := DefaultState()
	snapshot := st.Clone()
	st.Earnings[0].Description = "changed"
	st.EducatorLicense.TeachingAreas[0].Endorsements[0].Subject = "changed"
	if snapshot.Earnings[0].Description == "changed" {
		t.Error("clone shares earnings backing array")
	}
	if snapshot.EducatorLicense.TeachingAreas[0].Endorsements[0].Subject == "changed" {
		t.Error("clone shares endorsement backing array")
	}
}
