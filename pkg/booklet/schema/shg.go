package schema

import (
	"fmt"
	"strconv"
	"time"

	"loan-booklet-be/pkg/booklet"
	"loan-booklet-be/pkg/booklet/records"
	"loan-booklet-be/pkg/booklet/validate"
)

// SHG credit-card loan: three fixed steps, no jump navigation, and a member
// roster capped at twenty with position-derived roles.

const (
	shgSeedMembers = 10
	shgMaxMembers  = 20
)

func shgRoleOf(index int) string {
	switch index {
	case 0:
		return "President"
	case 1:
		return "Secretary"
	case 2:
		return "Treasurer"
	default:
		return fmt.Sprintf("Member %d", index+1)
	}
}

var shgMembers = records.ListConfig{
	Fields:    []string{"name", "spouse", "dob", "aadhar", "mobile", "maritalstatus", "category", "sbaccount"},
	Min:       1,
	Max:       shgMaxMembers,
	Seed:      shgSeedMembers,
	RoleField: "role",
	RoleOf:    shgRoleOf,
}

// NRLM-linked categories carry the repo-linked rate, the others MCLR.
var shgNRLMCategories = map[string]bool{
	"NA":   true, // SHG CC-NRLM-AGRI
	"SNA":  true, // SHG CC-SHAKTI-NRLM-AGRI
	"NNA":  false,
	"SNNA": false,
}

func shgRules() *validate.RuleSet {
	return &validate.RuleSet{
		Steps: 3,
		Lists: []validate.ListRule{
			{
				Step: 1,
				List: "members",
				RecordLabel: func(index int, rec booklet.Record) string {
					if role := rec["role"]; role != "" {
						return role
					}
					return fmt.Sprintf("Member %d", index+1)
				},
				Fields: []validate.RecordFieldRule{
					{Field: "name", Label: "Name", Required: true},
					{Field: "spouse", Label: "Spouse / Father", Required: true},
					{Field: "dob", Label: "Date of Birth", Required: true, Checks: []validate.Check{validate.ValidDate(), validate.NotFuture()}},
					{Field: "aadhar", Label: "Aadhar", Required: true, Checks: []validate.Check{validate.Digits(12)}},
					{Field: "mobile", Label: "Mobile", Required: true, Checks: []validate.Check{validate.Mobile()}},
					{Field: "maritalstatus", Label: "Marital Status", Required: true},
					{Field: "category", Label: "Category", Required: true},
					{Field: "sbaccount", Label: "SB Account", Required: true, Checks: []validate.Check{validate.Numeric()}},
				},
			},
		},
		Fields: []validate.FieldRule{
			{Step: 2, Field: "shgname", Label: "Name of SHG", Required: true},
			{Step: 2, Field: "gradingmarks", Label: "Grading Marks", Required: true, Checks: []validate.Check{validate.Numeric()}},
			{Step: 2, Field: "shgdof", Label: "Date of Formation", Required: true, Checks: []validate.Check{validate.ValidDate(), validate.NotFuture()}},
			{Step: 2, Field: "noofmembers", Label: "No. of Members", Required: true, Checks: []validate.Check{validate.Numeric()}},
			{Step: 2, Field: "villtown", Label: "Village/Town", Required: true},
			{Step: 2, Field: "po", Label: "Post Office", Required: true},
			{Step: 2, Field: "ps", Label: "Police Station", Required: true},
			{Step: 2, Field: "gpward", Label: "Gram Panchayat/Ward No.", Required: true},
			{Step: 2, Field: "blockmunicipality", Label: "Block/Municipality", Required: true},
			{Step: 2, Field: "district", Label: "District", Required: true},
			{Step: 2, Field: "state", Label: "State", Required: true},
			{Step: 2, Field: "pin", Label: "PIN", Required: true, Checks: []validate.Check{validate.Digits(6)}},
			{Step: 2, Field: "shgcategory", Label: "SHG Category", Required: true},
			{Step: 2, Field: "shglocation", Label: "SHG Location", Required: true},

			{Step: 3, Field: "shgsbaccount", Label: "SB Account No.", Required: true, Checks: []validate.Check{validate.Numeric()}},
			{Step: 3, Field: "sbopeningdate", Label: "SB Opening Date", Required: true, Checks: []validate.Check{validate.ValidDate(), validate.NotFuture()}},
			{Step: 3, Field: "sbbalance", Label: "SB Balance", Required: true, Checks: []validate.Check{validate.Numeric()}},
			{Step: 3, Field: "appliedlimit", Label: "Applied Limit", Required: true, Checks: []validate.Check{validate.Numeric()}},
			{Step: 3, Field: "grading", Label: "Grading", Required: true},
			{Step: 3, Field: "applicationdate", Label: "Application Date", Required: true, Checks: []validate.Check{validate.ValidDate()}},
			{Step: 3, Field: "sanctiondate", Label: "Sanction Date", Required: true, Checks: []validate.Check{validate.ValidDate()}},
		},
		Cross: []validate.CrossRule{
			{Step: 2, Check: shgMemberCountMatches},
			{Step: 3, Check: shgPriorLending},
			{Step: 3, Check: func(d *booklet.Draft, now time.Time) []string {
				return sanctionWindow(d, "applicationdate", "sanctiondate", now)
			}},
			{Step: 3, Check: shgRateByCategory},
		},
	}
}

// The declared headcount must match the roster built in step 1.
func shgMemberCountMatches(d *booklet.Draft, _ time.Time) []string {
	declared := d.Scalars["noofmembers"]
	if declared == "" {
		return nil
	}
	n, err := strconv.Atoi(declared)
	if err != nil {
		return nil
	}
	if have := len(d.Lists["members"]); n != have {
		return []string{fmt.Sprintf("No. of Members does not match the member entries (found %d)", have)}
	}
	return nil
}

// Prior-lending history is mandatory from the second grading onwards; a
// first-time group has none to report.
func shgPriorLending(d *booklet.Draft, _ time.Time) []string {
	if d.Scalars["grading"] == "" || d.Scalars["grading"] == "1st Grading" {
		return nil
	}
	var msgs []string
	for _, f := range []struct{ field, label string }{
		{"dateoffirstlending", "Date of First Lending"},
		{"ccaccount", "CC Account No."},
		{"ccoutstanding", "CC Outstanding"},
		{"lastsanctiondate", "Last Sanction Date"},
		{"lastsanctionlimit", "Last Sanction Limit"},
	} {
		msgs = append(msgs, requireScalar(d, f.field, f.label)...)
	}
	return msgs
}

func shgRateByCategory(d *booklet.Draft, _ time.Time) []string {
	cat := d.Scalars["shgcategory"]
	nrlm, known := shgNRLMCategories[cat]
	if !known {
		return nil
	}
	if nrlm {
		if d.Scalars["reporate"] == "" {
			return []string{"Repo Rate is required for NRLM categories"}
		}
		return nil
	}
	if d.Scalars["mclr"] == "" {
		return []string{"MCLR is required for non-NRLM categories"}
	}
	return nil
}

func shgScheme() *Scheme {
	return &Scheme{
		Code:       booklet.SchemeSHG,
		Title:      "SHG Loan Booklet",
		StepLabels: []string{"SHG Member Details", "SHG Details", "Bank & Lending Details"},
		ListOrder:  []string{"members"},
		Lists:      map[string]records.ListConfig{"members": shgMembers},
		Rules:      shgRules(),
		Seed: func() *booklet.Draft {
			d := booklet.NewDraft(booklet.SchemeSHG)
			d.Lists["members"] = shgMembers.SeedList()
			return d
		},
	}
}
