package sample

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"docmint/internal/docstate"
)

func TestGenerateIsInternallyConsistent(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		st := Generate(rand.New(rand.NewSource(seed)))

		if st.Company.Name == "" || st.Employee.Name == "" {
			t.Fatalf("seed %d: blank identity fields", seed)
		}
		if len(st.Earnings) < 2 {
			t.Fatalf("seed %d: earnings = %d, want at least 2", seed, len(st.Earnings))
		}
		for _, item := range st.Earnings {
			q := item.Quantity.Or(-1)
			r := item.Rate.Or(-1)
			a := item.Amount.Or(-1)
			if math.Abs(a-math.Round(q*r*100)/100) > 0.011 {
				t.Errorf("seed %d: %s amount %v != quantity %v x rate %v", seed, item.Description, a, q, r)
			}
		}

		license := st.EducatorLicense
		if license.LicenseNumber == "" || license.HolderName == "" || license.LicenseType == "" ||
			license.IssueDate == "" || license.ExpirationDate == "" || license.IssuingState == "" {
			t.Errorf("seed %d: license has empty required fields: %+v", seed, license)
		}
		if license.HolderName != st.Employee.Name {
			t.Errorf("seed %d: license holder %q != employee %q", seed, license.HolderName, st.Employee.Name)
		}
		if len(license.TeachingAreas) == 0 {
			t.Errorf("seed %d: no teaching areas", seed)
		}
		for _, area := range license.TeachingAreas {
			if len(area.Endorsements) == 0 {
				t.Errorf("seed %d: area %q has no endorsements", seed, area.Area)
			}
		}
		if len(license.Signatories) != docstate.SignatoryCount {
			t.Errorf("seed %d: signatories = %d, want %d", seed, len(license.Signatories), docstate.SignatoryCount)
		}

		if !st.CheckInfo.NetPay.IsNumeric() || st.CheckInfo.NetPayWords == "" {
			t.Errorf("seed %d: check info incomplete: %+v", seed, st.CheckInfo)
		}
	}
}

func TestGenerateIDsAreUniqueWithinLists(t *testing.T) {
	st := Generate(rand.New(rand.NewSource(7)))
	seen := map[string]bool{}
	for _, item := range st.Earnings {
		if item.ID == "" || seen[item.ID] {
			t.Fatalf("duplicate or empty earning id %q", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestGenerateSurvivesRoundTrip(t *testing.T) {
	st := Generate(rand.New(rand.NewSource(42)))
	data, err := docstate.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := docstate.Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(st, back) {
		t.Error("generated state does not round-trip")
	}
}
