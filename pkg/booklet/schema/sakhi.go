package schema

import (
	"fmt"
	"strconv"
	"time"

	"loan-booklet-be/pkg/booklet"
	"loan-booklet-be/pkg/booklet/records"
	"loan-booklet-be/pkg/booklet/validate"
)

// SAKHI individual enterprise loan: five steps with free jump navigation and
// a legal-heir roster on the borrower profile.

var sakhiHeirs = records.ListConfig{
	Fields: []string{"name", "age", "relation"},
	Min:    1,
	Seed:   1,
}

func sakhiRules() *validate.RuleSet {
	rs := &validate.RuleSet{Steps: 5}

	type field struct {
		name, label string
		checks      []validate.Check
	}
	steps := [][]field{
		{
			{name: "customerName", label: "Customer Name"},
			{name: "spouseFather", label: "Spouse/Father Name"},
			{name: "villageCityResidence", label: "Village/City of Residence"},
			{name: "po", label: "Post Office"},
			{name: "ps", label: "Police Station"},
			{name: "district", label: "District"},
			{name: "state", label: "State"},
			{name: "pin", label: "PIN Code", checks: []validate.Check{validate.Digits(6)}},
			{name: "dob", label: "Date of Birth", checks: []validate.Check{validate.ValidDate(), validate.NotFuture()}},
			{name: "qualification", label: "Qualification"},
			{name: "email", label: "Email"},
			{name: "contactNo", label: "Contact No", checks: []validate.Check{validate.Mobile()}},
			{name: "aadhar", label: "Aadhar Number", checks: []validate.Check{validate.Digits(12)}},
			{name: "udyamRegnNo", label: "Udyam Registration No"},
			{name: "pan", label: "PAN"},
			{name: "cibilScore", label: "CIBIL Score", checks: []validate.Check{validate.Numeric()}},
			{name: "customerSince", label: "Customer Since", checks: []validate.Check{validate.ValidDate(), validate.NotFuture()}},
		},
		{
			{name: "constitution", label: "Constitution"},
			{name: "firmName", label: "Firm Name"},
			{name: "activity", label: "Activity"},
			{name: "establishedOn", label: "Established On", checks: []validate.Check{validate.ValidDate(), validate.NotFuture()}},
			{name: "tradeLicenseNo", label: "Trade License No"},
			{name: "registeredUnder", label: "Registered Under"},
			{name: "experienceYears", label: "Experience (Years)", checks: []validate.Check{validate.Numeric()}},
			{name: "villageCityBusiness", label: "Village/City of Business"},
			{name: "poBusiness", label: "Post Office (Business)"},
			{name: "noOfEmployees", label: "No. of Employees", checks: []validate.Check{validate.Numeric()}},
			{name: "premisesOccupancy", label: "Premises Occupancy"},
		},
		{
			{name: "cashAndBankBalance", label: "Cash & Bank Balance", checks: []validate.Check{validate.Numeric()}},
			{name: "lipGoldNscOtherInvestment", label: "LIP/Gold/NSC/Other Investment", checks: []validate.Check{validate.Numeric()}},
			{name: "landDetails", label: "Land Details"},
			{name: "buildingDetails", label: "Building Details"},
			{name: "plantMachineryFurniture", label: "Plant, Machinery & Furniture", checks: []validate.Check{validate.Numeric()}},
			{name: "currentStock", label: "Current Stock", checks: []validate.Check{validate.Numeric()}},
			{name: "debtorsValue", label: "Debtors Value", checks: []validate.Check{validate.Numeric()}},
			{name: "outstandingBankLoans", label: "Outstanding Bank Loans", checks: []validate.Check{validate.Numeric()}},
			{name: "totalExistingEmis", label: "Total Existing EMIs", checks: []validate.Check{validate.Numeric()}},
			{name: "turnoverLastFY", label: "Turnover Last FY", checks: []validate.Check{validate.Numeric()}},
			{name: "grossProfit", label: "Gross Profit", checks: []validate.Check{validate.Numeric()}},
			{name: "netProfit", label: "Net Profit", checks: []validate.Check{validate.Numeric()}},
		},
		{
			{name: "shgGroupName", label: "SHG/Group Name"},
			{name: "shgGroupAddress", label: "SHG/Group Address"},
			{name: "nrlmCode", label: "NRLM Code"},
			{name: "noOfMembers", label: "No. of Members", checks: []validate.Check{validate.Numeric()}},
			{name: "dateOfFormation", label: "Date of Formation", checks: []validate.Check{validate.ValidDate(), validate.NotFuture()}},
			{name: "shgSbAccount", label: "SHG SB Account", checks: []validate.Check{validate.Numeric()}},
			{name: "shgCcAccount", label: "SHG CC Account", checks: []validate.Check{validate.Numeric()}},
			{name: "dateOfFirstLending", label: "Date of First Lending", checks: []validate.Check{validate.ValidDate()}},
			{name: "dateOfSecondLending", label: "Date of Second Lending", checks: []validate.Check{validate.ValidDate()}},
			{name: "currentLimit", label: "Current Limit", checks: []validate.Check{validate.Numeric()}},
			{name: "currentGrading", label: "Current Grading"},
		},
		{
			{name: "lapsReffNo", label: "LAPS Reference No"},
			{name: "applicationDate", label: "Application Date", checks: []validate.Check{validate.ValidDate()}},
			{name: "loanAmount", label: "Loan Amount", checks: []validate.Check{validate.Numeric()}},
			{name: "loanPurpose", label: "Loan Purpose"},
			{name: "tenureMonths", label: "Tenure (Months)", checks: []validate.Check{validate.Numeric()}},
			{name: "currentRepoRate", label: "Current Repo Rate", checks: []validate.Check{validate.Numeric()}},
			{name: "sanctionDate", label: "Sanction Date", checks: []validate.Check{validate.ValidDate()}},
		},
	}
	for i, fields := range steps {
		for _, f := range fields {
			rs.Fields = append(rs.Fields, validate.FieldRule{
				Step: i + 1, Field: f.name, Label: f.label, Required: true, Checks: f.checks,
			})
		}
	}

	rs.Lists = []validate.ListRule{
		{
			Step: 1,
			List: "legalHeirs",
			RecordLabel: func(index int, _ booklet.Record) string {
				return fmt.Sprintf("Legal Heir %d", index+1)
			},
			Fields: []validate.RecordFieldRule{
				{Field: "name", Label: "Name", Required: true},
				{Field: "age", Label: "Age", Required: true, Checks: []validate.Check{validate.Numeric()}},
				{Field: "relation", Label: "Relation", Required: true},
			},
		},
	}

	rs.Cross = []validate.CrossRule{
		{Step: 5, Check: sakhiMinimumTenure},
		{Step: 5, Check: func(d *booklet.Draft, now time.Time) []string {
			return sanctionWindow(d, "applicationDate", "sanctionDate", now)
		}},
	}
	return rs
}

// Sub-year repayment schedules are out of product scope.
func sakhiMinimumTenure(d *booklet.Draft, _ time.Time) []string {
	raw := d.Scalars["tenureMonths"]
	if raw == "" {
		return nil
	}
	months, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	if months <= 12 {
		return []string{"Tenure (Months) must be more than 12"}
	}
	return nil
}

func sakhiScheme() *Scheme {
	return &Scheme{
		Code:       booklet.SchemeSAKHI,
		Title:      "SAKHI Loan Booklet",
		StepLabels: []string{"Borrower's Profile", "Business Details", "Financial Details", "SHG Group Details", "Loan Details"},
		AllowJump:  true,
		ListOrder:  []string{"legalHeirs"},
		Lists:      map[string]records.ListConfig{"legalHeirs": sakhiHeirs},
		Rules:      sakhiRules(),
		Seed: func() *booklet.Draft {
			d := booklet.NewDraft(booklet.SchemeSAKHI)
			d.Lists["legalHeirs"] = sakhiHeirs.SeedList()
			return d
		},
	}
}
