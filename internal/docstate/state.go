// Package docstate defines the Application State shared by every document
// renderer: one JSON-serializable tree of named sections holding the
// editable company, employee, payroll and license data.
package docstate

// Company identifies the employer shown on generated documents.
type Company struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	Logo     string `json:"logo"`
	District string `json:"district"`
	County   string `json:"county"`
}

// Bank holds the payment account details printed on pay stubs and checks.
type Bank struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
}

// Employee describes the person the documents are issued for. PayRate is
// the only numeric field in this section.
type Employee struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	SSN        string `json:"ssn"`
	EmployeeID string `json:"employeeId"`
	Title      string `json:"title"`
	PayType    string `json:"payType"`
	PayRate    Number `json:"payRate"`
}

// Meta carries date-like strings and identifiers for the current pay
// period. Dates are free text; no semantic date validation is applied.
type Meta struct {
	PayPeriodStart string `json:"payPeriodStart"`
	PayPeriodEnd   string `json:"payPeriodEnd"`
	PayDate        string `json:"payDate"`
	CheckNumber    string `json:"checkNumber"`
	AdviceNumber   string `json:"adviceNumber"`
	DocumentDate   string `json:"documentDate"`
	TaxYear        string `json:"taxYear"`
}

// EarningItem is one earnings line. Amount is stored independently and is
// not recomputed from Quantity and Rate by the store.
type EarningItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	Rate        Number `json:"rate"`
	Amount      Number `json:"amount"`
	YTD         Number `json:"ytd,omitempty"`
}

// AmountItem is one line of the taxes, pre-tax reduction, deduction or
// employer contribution lists.
type AmountItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      Number `json:"amount"`
	YTD         Number `json:"ytd"`
}

// WagePair is a current-period / year-to-date amount pair.
type WagePair struct {
	Current Number `json:"current"`
	YTD     Number `json:"ytd"`
}

// TaxableWages groups the wage bases reported on tax documents.
type TaxableWages struct {
	Federal  WagePair `json:"federal"`
	State    WagePair `json:"state"`
	Medicare WagePair `json:"medicare"`
}

// CheckInfo holds the check face values.
type CheckInfo struct {
	NetPay         Number `json:"netPay"`
	NetPayWords    string `json:"netPayWords"`
	MaxValidAmount Number `json:"maxValidAmount"`
}

// TeacherCard drives the teacher ID card renderer. UniversityID indexes
// the fixed university directory; nil means "derive from the employee
// name hash". The store never validates the index - consumers treat an
// out-of-range value as unset.
type TeacherCard struct {
	UniversityID   *int   `json:"universityId"`
	Department     string `json:"department"`
	EmergencyPhone string `json:"emergencyPhone"`
	OfficeRoom     string `json:"officeRoom"`
	YearsOfService string `json:"yearsOfService"`
	ValidUntil     string `json:"validUntil"`
}

// State is the Application State: the single tree of sections every
// renderer reads and every form edit mutates. It round-trips through
// JSON without loss.
type State struct {
	Company               Company         `json:"company"`
	Bank                  Bank            `json:"bank"`
	Employee              Employee        `json:"employee"`
	Meta                  Meta            `json:"meta"`
	Earnings              []EarningItem   `json:"earnings"`
	Taxes                 []AmountItem    `json:"taxes"`
	PreTaxReductions      []AmountItem    `json:"preTaxReductions"`
	Deductions            []AmountItem    `json:"deductions"`
	EmployerContributions []AmountItem    `json:"employerContributions"`
	TaxableWages          TaxableWages    `json:"taxableWages"`
	CheckInfo             CheckInfo       `json:"checkInfo"`
	TeacherCard           TeacherCard     `json:"teacherCard"`
	EducatorLicense       EducatorLicense `json:"educatorLicense"`
}

// sectionKeys is the fixed list of known top-level sections. Restoring
// persisted data merges only these keys; anything else is dropped.
var sectionKeys = []string{
	"company",
	"bank",
	"employee",
	"meta",
	"earnings",
	"taxes",
	"preTaxReductions",
	"deductions",
	"employerContributions",
	"taxableWages",
	"checkInfo",
	"teacherCard",
	"educatorLicense",
}

// SectionKeys returns the known top-level section names in order.
func SectionKeys() []string {
	out := make([]string, len(sectionKeys))
	copy(out, sectionKeys)
	return out
}

// Clone returns a deep copy, safe to hand out as a read-only snapshot.
func (s State) Clone() State {
	out := s
	out.Earnings = append([]EarningItem(nil), s.Earnings...)
	out.Taxes = append([]AmountItem(nil), s.Taxes...)
	out.PreTaxReductions = append([]AmountItem(nil), s.PreTaxReductions...)
	out.Deductions = append([]AmountItem(nil), s.Deductions...)
	out.EmployerContributions = append([]AmountItem(nil), s.EmployerContributions...)
	if s.TeacherCard.UniversityID != nil {
		id := *s.TeacherCard.UniversityID
		out.TeacherCard.UniversityID = &id
	}
	out.EducatorLicense = s.EducatorLicense.clone()
	return out
}
