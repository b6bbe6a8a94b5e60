package docstate

// DefaultState returns the state a fresh session starts from: a fully
// populated example so every document renders something meaningful
// before the first edit.
func DefaultState() State {
	universityID := 2
	return State{
		Company: Company{
			Name:     "Westbrook Unified School District",
			Address:  "1450 Meridian Ave, Westbrook, CA 90210",
			Phone:    "(555) 014-2200",
			Email:    "payroll@westbrookusd.org",
			Website:  "www.westbrookusd.org",
			District: "Westbrook Unified",
			County:   "Los Angeles",
		},
		Bank: Bank{
			BankName:      "First Meridian Bank",
			AccountNumber: "000123456789",
			RoutingNumber: "121000358",
		},
		Employee: Employee{
			Name:       "Jordan A. Reyes",
			Address:    "872 Sycamore Ln, Westbrook, CA 90211",
			Phone:      "(555) 014-7731",
			Email:      "j.reyes@westbrookusd.org",
			SSN:        "XXX-XX-4821",
			EmployeeID: "EMP-20419",
			Title:      "Teacher, Secondary Mathematics",
			PayType:    "Salary",
			PayRate:    N(38.46),
		},
		Meta: Meta{
			PayPeriodStart: "06/01/2025",
			PayPeriodEnd:   "06/15/2025",
			PayDate:        "06/20/2025",
			CheckNumber:    "48213",
			AdviceNumber:   "00048213",
			DocumentDate:   "06/20/2025",
			TaxYear:        "2025",
		},
		Earnings: []EarningItem{
			{ID: "earn-regular", Description: "Regular", Quantity: N(80), Rate: N(38.46), Amount: N(3076.80), YTD: N(36921.60)},
			{ID: "earn-stipend", Description: "Department Stipend", Quantity: N(1), Rate: N(125), Amount: N(125), YTD: N(1500)},
		},
		Taxes: []AmountItem{
			{ID: "tax-fed", Description: "Federal Income Tax", Amount: N(384.22), YTD: N(4610.64)},
			{ID: "tax-state", Description: "CA State Income Tax", Amount: N(147.90), YTD: N(1774.80)},
			{ID: "tax-medicare", Description: "Medicare", Amount: N(46.43), YTD: N(557.16)},
		},
		PreTaxReductions: []AmountItem{
			{ID: "pre-403b", Description: "403(b) Contribution", Amount: N(160), YTD: N(1920)},
		},
		Deductions: []AmountItem{
			{ID: "ded-dental", Description: "Dental Insurance", Amount: N(22.50), YTD: N(270)},
			{ID: "ded-union", Description: "Union Dues", Amount: N(31.75), YTD: N(381)},
		},
		EmployerContributions: []AmountItem{
			{ID: "emp-strs", Description: "CalSTRS Employer", Amount: N(612.74), YTD: N(7352.88)},
		},
		TaxableWages: TaxableWages{
			Federal:  WagePair{Current: N(3041.80), YTD: N(36501.60)},
			State:    WagePair{Current: N(3041.80), YTD: N(36501.60)},
			Medicare: WagePair{Current: N(3201.80), YTD: N(38421.60)},
		},
		CheckInfo: CheckInfo{
			NetPay:         N(2409.00),
			NetPayWords:    "Two Thousand Four Hundred Nine and 00/100 Dollars",
			MaxValidAmount: N(10000),
		},
		TeacherCard: TeacherCard{
			UniversityID:   &universityID,
			Department:     "Mathematics",
			EmergencyPhone: "(555) 014-2299",
			OfficeRoom:     "B-204",
			YearsOfService: "8",
			ValidUntil:     "06/30/2026",
		},
		EducatorLicense: EducatorLicense{
			LicenseNumber:  "CA-2417-88305",
			HolderName:     "Jordan A. Reyes",
			LicenseType:    "Professional Clear Teaching Credential",
			IssueDate:      "07/01/2021",
			ExpirationDate: "06/30/2026",
			IssuingState:   "California",
			TeachingAreas: []TeachingArea{
				{
					ID:   "area-math",
					Area: "Mathematics",
					Endorsements: []Endorsement{
						{Subject: "Algebra", GradeLevel: "9-12", Date: "07/01/2021"},
						{Subject: "Calculus", GradeLevel: "11-12", Date: "07/01/2021"},
					},
				},
			},
			Signatories: []Signatory{
				{Name: "Dr. Elaine Marsh", Title: "Superintendent of Public Instruction"},
				{Name: "Victor Huang", Title: "Commission Chair"},
				{Name: "Amara Sorenson", Title: "Executive Director"},
			},
		},
	}
}
