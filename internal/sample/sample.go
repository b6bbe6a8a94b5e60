// Package sample produces a complete, internally consistent alternate
// Application State for the "randomize" action. The result always
// replaces the live state wholesale; it never merges into it.
package sample

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"docmint/internal/docstate"
	"docmint/internal/money"
	"docmint/internal/util"
)

var firstNames = []string{
	"Avery", "Morgan", "Riley", "Casey", "Jordan", "Elena", "Marcus",
	"Priya", "Daniel", "Sofia", "Theo", "Naomi", "Victor", "Lena",
}

var lastNames = []string{
	"Whitaker", "Nguyen", "Castillo", "Okafor", "Lindgren", "Marsh",
	"Delgado", "Hoffman", "Ibrahim", "Kowalski", "Tanaka", "Reyes",
}

var companyNames = []string{
	"Brightwater Unified School District", "Oakhaven Public Schools",
	"Silver Creek Academy", "Harborview Charter Network",
	"Maple Grove School District", "Canyon Ridge Unified",
}

var bankNames = []string{
	"First Meridian Bank", "Cascade Federal Credit Union",
	"Union Landmark Bank", "Bluestone National Bank",
}

var earningDescriptions = []string{
	"Regular", "Overtime", "Substitute Coverage", "Department Stipend",
	"Summer Session", "Coaching Stipend",
}

var taxDescriptions = []string{
	"Federal Income Tax", "State Income Tax", "Medicare", "Social Security",
}

var deductionDescriptions = []string{
	"Dental Insurance", "Vision Insurance", "Union Dues", "Parking",
}

var subjects = []string{
	"Mathematics", "English Language Arts", "Biology", "Chemistry",
	"World History", "Physical Education", "Music", "Spanish",
}

var licenseTypes = []string{
	"Professional Clear Teaching Credential",
	"Preliminary Teaching Credential",
	"Standard Professional License",
	"Advanced Educator License",
}

var signatoryTitles = []string{
	"Superintendent of Public Instruction",
	"Commission Chair",
	"Executive Director",
}

// Generate builds one fresh state from the given source. Line amounts
// are always quantity x rate, the license block is fully populated, and
// the signatory list has exactly three entries.
func Generate(r *rand.Rand) docstate.State {
	employeeName := pick(r, firstNames) + " " + pick(r, lastNames)
	companyName := pick(r, companyNames)
	payRate := round2(18 + r.Float64()*42)

	st := docstate.State{
		Company: docstate.Company{
			Name:     companyName,
			Address:  randomAddress(r),
			Phone:    randomPhone(r),
			Email:    "payroll@" + domainOf(companyName),
			Website:  "www." + domainOf(companyName),
			District: companyName,
			County:   pick(r, []string{"Los Angeles", "Cook", "Harris", "Maricopa", "King"}),
		},
		Bank: docstate.Bank{
			BankName:      pick(r, bankNames),
			AccountNumber: fmt.Sprintf("%012d", r.Int63n(1e12)),
			RoutingNumber: fmt.Sprintf("%09d", r.Int63n(1e9)),
		},
		Employee: docstate.Employee{
			Name:       employeeName,
			Address:    randomAddress(r),
			Phone:      randomPhone(r),
			Email:      "staff@" + domainOf(companyName),
			SSN:        fmt.Sprintf("XXX-XX-%04d", r.Intn(10000)),
			EmployeeID: fmt.Sprintf("EMP-%05d", r.Intn(100000)),
			Title:      "Teacher, " + pick(r, subjects),
			PayType:    pick(r, []string{"Salary", "Hourly"}),
			PayRate:    docstate.N(payRate),
		},
		Meta: randomMeta(r),
	}

	// Earnings first; everything downstream derives from the gross.
	for i, count := 0, 2+r.Intn(3); i < count; i++ {
		quantity := round2(4 + r.Float64()*80)
		rate := payRate
		if i > 0 {
			rate = round2(10 + r.Float64()*40)
		}
		amount := round2(quantity * rate)
		st.AppendEarning(docstate.EarningItem{
			ID:          util.NewID("earn"),
			Description: earningDescriptions[i%len(earningDescriptions)],
			Quantity:    docstate.N(quantity),
			Rate:        docstate.N(rate),
			Amount:      docstate.N(amount),
			YTD:         docstate.N(round2(amount * float64(3+r.Intn(12)))),
		})
	}
	gross := money.SumEarnings(st.Earnings)

	taxRates := []float64{0.12, 0.045, 0.0145, 0.062}
	for i, desc := range taxDescriptions {
		amount := round2(gross * taxRates[i])
		st.Taxes = append(st.Taxes, randomAmountItem(r, "tax", desc, amount))
	}
	st.PreTaxReductions = []docstate.AmountItem{
		randomAmountItem(r, "pre", "403(b) Contribution", round2(gross*0.05)),
	}
	for i, count := 0, 1+r.Intn(3); i < count; i++ {
		st.Deductions = append(st.Deductions,
			randomAmountItem(r, "ded", deductionDescriptions[i%len(deductionDescriptions)], round2(5+r.Float64()*60)))
	}
	st.EmployerContributions = []docstate.AmountItem{
		randomAmountItem(r, "emp", "Retirement Employer Match", round2(gross*0.19)),
	}

	withheld := money.Sum(st.Taxes) + money.Sum(st.PreTaxReductions) + money.Sum(st.Deductions)
	netPay := round2(gross - withheld)

	federal := round2(gross - money.Sum(st.PreTaxReductions))
	st.TaxableWages = docstate.TaxableWages{
		Federal:  docstate.WagePair{Current: docstate.N(federal), YTD: docstate.N(round2(federal * 12))},
		State:    docstate.WagePair{Current: docstate.N(federal), YTD: docstate.N(round2(federal * 12))},
		Medicare: docstate.WagePair{Current: docstate.N(round2(gross)), YTD: docstate.N(round2(gross * 12))},
	}
	st.CheckInfo = docstate.CheckInfo{
		NetPay:         docstate.N(netPay),
		NetPayWords:    money.AmountInWords(netPay),
		MaxValidAmount: docstate.N(10000),
	}

	st.TeacherCard = docstate.TeacherCard{
		// nil university: derive from the employee name hash at render time
		Department:     pick(r, subjects),
		EmergencyPhone: randomPhone(r),
		OfficeRoom:     fmt.Sprintf("%c-%d", 'A'+rune(r.Intn(4)), 100+r.Intn(300)),
		YearsOfService: fmt.Sprintf("%d", 1+r.Intn(30)),
		ValidUntil:     futureDate(r),
	}
	st.EducatorLicense = randomLicense(r, employeeName)
	return st
}

func randomLicense(r *rand.Rand, holder string) docstate.EducatorLicense {
	license := docstate.EducatorLicense{
		LicenseNumber:  fmt.Sprintf("LIC-%04d-%05d", r.Intn(10000), r.Intn(100000)),
		HolderName:     holder,
		LicenseType:    pick(r, licenseTypes),
		IssueDate:      pastDate(r),
		ExpirationDate: futureDate(r),
		IssuingState:   pick(r, []string{"California", "Texas", "Illinois", "Oregon", "Vermont"}),
	}
	for i, count := 0, 1+r.Intn(3); i < count; i++ {
		area := docstate.TeachingArea{
			ID:   util.NewID("area"),
			Area: subjects[(r.Intn(len(subjects))+i)%len(subjects)],
		}
		for j, endorsements := 0, 1+r.Intn(2); j < endorsements; j++ {
			area.Endorsements = append(area.Endorsements, docstate.Endorsement{
				Subject:    pick(r, subjects),
				GradeLevel: pick(r, []string{"K-5", "6-8", "9-12"}),
				Date:       pastDate(r),
			})
		}
		license.TeachingAreas = append(license.TeachingAreas, area)
	}
	for i := 0; i < docstate.SignatoryCount; i++ {
		license.Signatories = append(license.Signatories, docstate.Signatory{
			Name:  pick(r, firstNames) + " " + pick(r, lastNames),
			Title: signatoryTitles[i],
		})
	}
	return license
}

func randomAmountItem(r *rand.Rand, prefix, description string, amount float64) docstate.AmountItem {
	return docstate.AmountItem{
		ID:          util.NewID(prefix),
		Description: description,
		Amount:      docstate.N(amount),
		YTD:         docstate.N(round2(amount * float64(3+r.Intn(12)))),
	}
}

func randomMeta(r *rand.Rand) docstate.Meta {
	start := time.Now().AddDate(0, 0, -14-r.Intn(90))
	end := start.AddDate(0, 0, 14)
	pay := end.AddDate(0, 0, 5)
	check := 10000 + r.Intn(90000)
	return docstate.Meta{
		PayPeriodStart: start.Format("01/02/2006"),
		PayPeriodEnd:   end.Format("01/02/2006"),
		PayDate:        pay.Format("01/02/2006"),
		CheckNumber:    fmt.Sprintf("%d", check),
		AdviceNumber:   fmt.Sprintf("%08d", check),
		DocumentDate:   pay.Format("01/02/2006"),
		TaxYear:        fmt.Sprintf("%d", pay.Year()),
	}
}

func randomAddress(r *rand.Rand) string {
	streets := []string{"Sycamore Ln", "Meridian Ave", "Orchard Hill Rd", "Harbor Ave", "Prairie View Rd"}
	cities := []string{"Westbrook, CA 90210", "Camden, TX 75901", "Lakeshore, MI 49201", "Summit Plains, KS 66604"}
	return fmt.Sprintf("%d %s, %s", 100+r.Intn(9000), pick(r, streets), pick(r, cities))
}

func randomPhone(r *rand.Rand) string {
	return fmt.Sprintf("(555) %03d-%04d", r.Intn(1000), r.Intn(10000))
}

func pastDate(r *rand.Rand) string {
	return time.Now().AddDate(-1-r.Intn(8), 0, -r.Intn(300)).Format("01/02/2006")
}

func futureDate(r *rand.Rand) string {
	return time.Now().AddDate(1+r.Intn(4), 0, r.Intn(300)).Format("01/02/2006")
}

func domainOf(company string) string {
	out := make([]rune, 0, len(company))
	for _, c := range company {
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		}
	}
	if len(out) > 16 {
		out = out[:16]
	}
	return string(out) + ".org"
}

func pick(r *rand.Rand, list []string) string {
	return list[r.Intn(len(list))]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
