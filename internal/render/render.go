// Package render turns an Application State snapshot into the HTML for
// one document type. Renderers are pure: same state in, same markup
// out; all derived values (totals, currency strings, hash-derived
// university) are computed here, never stored.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"docmint/internal/docstate"
	"docmint/internal/money"
	"docmint/internal/refdata"
)

// Document types, in the order the UI offers them.
const (
	TypePaystub          = "paystub"
	TypeW2               = "w2"
	TypeTaxSummary       = "tax-summary"
	TypeEmploymentLetter = "employment-letter"
	TypeOfferLetter      = "offer-letter"
	TypeFacultyListing   = "faculty-listing"
	TypeTeacherCard      = "teacher-card"
	TypeEducatorLicense  = "educator-license"
)

var documentTitles = map[string]string{
	TypePaystub:          "Earnings Statement",
	TypeW2:               "Form W-2 Wage and Tax Statement",
	TypeTaxSummary:       "Annual Tax Withholding Summary",
	TypeEmploymentLetter: "Employment Verification Letter",
	TypeOfferLetter:      "Offer of Employment",
	TypeFacultyListing:   "Faculty Directory Listing",
	TypeTeacherCard:      "Faculty Identification Card",
	TypeEducatorLicense:  "Educator License",
}

var typeOrder = []string{
	TypePaystub, TypeW2, TypeTaxSummary, TypeEmploymentLetter,
	TypeOfferLetter, TypeFacultyListing, TypeTeacherCard, TypeEducatorLicense,
}

// Types returns the supported document types in display order.
func Types() []string {
	out := make([]string, len(typeOrder))
	copy(out, typeOrder)
	return out
}

// Title returns the human title for a document type, or "" when the
// type is unknown.
func Title(docType string) string {
	return documentTitles[docType]
}

// ErrUnknownDocument is returned for a document type outside Types().
var ErrUnknownDocument = fmt.Errorf("unknown document type")

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplates = template.Must(
	template.New("documents").Funcs(template.FuncMap{
		"currency": money.FormatCurrency,
		"words":    money.AmountInWords,
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
	}).ParseFS(templateFS, "templates/*.html"),
)

// viewData is the single model every template receives.
type viewData struct {
	Title string
	State docstate.State

	Gross           float64
	TotalTaxes      float64
	TotalPreTax     float64
	TotalDeductions float64
	TotalEmployer   float64
	NetPay          float64
	TotalWithheld   float64

	University refdata.University
	Department string

	Signatories []docstate.Signatory
}

// Document renders one document type against a state snapshot.
func Document(docType string, st docstate.State) (string, error) {
	if _, ok := documentTitles[docType]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocument, docType)
	}

	data := buildViewData(docType, st)
	var buf bytes.Buffer
	if err := documentTemplates.ExecuteTemplate(&buf, docType+".html", data); err != nil {
		return "", fmt.Errorf("render %s: %w", docType, err)
	}
	return buf.String(), nil
}

func buildViewData(docType string, st docstate.State) viewData {
	university := refdata.UniversityFor(st.Employee.Name, st.TeacherCard.UniversityID)
	department := st.TeacherCard.Department
	if strings.TrimSpace(department) == "" {
		department = refdata.DepartmentFor(st.Employee.Name, university)
	}

	signatories := make([]docstate.Signatory, docstate.SignatoryCount)
	for i := range signatories {
		signatories[i] = st.EducatorLicense.SignatoryAt(i)
	}

	totalTaxes := money.Sum(st.Taxes)
	totalPreTax := money.Sum(st.PreTaxReductions)
	totalDeductions := money.Sum(st.Deductions)

	return viewData{
		Title:           documentTitles[docType],
		State:           st,
		Gross:           money.SumEarnings(st.Earnings),
		TotalTaxes:      totalTaxes,
		TotalPreTax:     totalPreTax,
		TotalDeductions: totalDeductions,
		TotalEmployer:   money.Sum(st.EmployerContributions),
		NetPay:          money.SumEarnings(st.Earnings) - totalTaxes - totalPreTax - totalDeductions,
		TotalWithheld:   totalTaxes + totalPreTax + totalDeductions,
		University:      university,
		Department:      department,
		Signatories:     signatories,
	}
}
