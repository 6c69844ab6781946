package schema

import (
	"fmt"
	"time"

	"loan-booklet-be/pkg/booklet"
	"loan-booklet-be/pkg/booklet/derive"
	"loan-booklet-be/pkg/booklet/records"
	"loan-booklet-be/pkg/booklet/validate"
)

// LOD (loan against own deposit): a single-page form whose eligible loan and
// tenure are computed from the pledged deposits, never typed in.

var (
	lodBorrowers = records.ListConfig{
		Fields: []string{"name", "father", "mobile", "dob"},
		Min:    1,
		Seed:   1,
	}
	lodDeposits = records.ListConfig{
		Fields: []string{"depositorName", "accNo", "inttRate", "termVal", "matVal", "issueDate", "matDate"},
		Min:    1,
		Seed:   1,
	}
)

func lodRules() *validate.RuleSet {
	return &validate.RuleSet{
		Steps: 1,
		Lists: []validate.ListRule{
			{
				Step: 1,
				List: "borrowers",
				RecordLabel: func(index int, _ booklet.Record) string {
					return fmt.Sprintf("Borrower %d", index+1)
				},
				Fields: []validate.RecordFieldRule{
					{Field: "name", Label: "Name", Required: true},
					{Field: "father", Label: "Father's Name", Required: true},
					{Field: "mobile", Label: "Mobile No.", Required: true, Checks: []validate.Check{validate.Digits(10)}},
					{Field: "dob", Label: "Date of Birth", Required: true, Checks: []validate.Check{validate.ValidDate(), validate.NotFuture()}},
				},
			},
			{
				Step: 1,
				List: "deposits",
				RecordLabel: func(index int, _ booklet.Record) string {
					return fmt.Sprintf("Deposit %d", index+1)
				},
				Fields: []validate.RecordFieldRule{
					{Field: "depositorName", Label: "Depositor Name", Required: true},
					{Field: "accNo", Label: "FD/RD Acc No.", Required: true, Checks: []validate.Check{validate.Numeric()}},
					{Field: "inttRate", Label: "Intt. Rate", Required: true, Checks: []validate.Check{validate.Numeric()}},
					{Field: "termVal", Label: "Term Value", Required: true, Checks: []validate.Check{validate.Numeric()}},
					{Field: "matVal", Label: "Maturity Value", Required: true, Checks: []validate.Check{validate.Numeric()}},
					{Field: "issueDate", Label: "Issue Date", Required: true, Checks: []validate.Check{validate.ValidDate()}},
					{Field: "matDate", Label: "Maturity Date", Required: true, Checks: []validate.Check{validate.ValidDate()}},
				},
			},
		},
		Fields: []validate.FieldRule{
			{Step: 1, Field: "sbAcc", Label: "SB Account No.", Required: true, Checks: []validate.Check{validate.Numeric()}},
			{Step: 1, Field: "address", Label: "Address", Required: true},
			{Step: 1, Field: "appLoan", Label: "Applied Loan", Required: true, Checks: []validate.Check{validate.Numeric()}},
			{Step: 1, Field: "loanType", Label: "Loan Type", Required: true},
			{Step: 1, Field: "spread", Label: "Spread", Required: true, Checks: []validate.Check{validate.Numeric()}},
			{Step: 1, Field: "appDate", Label: "Application Date", Required: true, Checks: []validate.Check{validate.ValidDate()}},
			{Step: 1, Field: "sanDate", Label: "Sanction Date", Required: true, Checks: []validate.Check{validate.ValidDate()}},
		},
		Cross: []validate.CrossRule{
			{Step: 1, Check: lodAppliedWithinEligible},
			{Step: 1, Check: func(d *booklet.Draft, now time.Time) []string {
				return sanctionWindow(d, "appDate", "sanDate", now)
			}},
		},
	}
}

func lodAppliedWithinEligible(d *booklet.Draft, _ time.Time) []string {
	applied, okA := parseAmount(d.Scalars["appLoan"])
	eligible, okE := parseAmount(d.Scalars["elgLoan"])
	if !okA || !okE {
		return nil
	}
	if applied > eligible {
		return []string{"Applied Loan cannot exceed Eligible Loan"}
	}
	return nil
}

func lodRecompute(d *booklet.Draft) {
	deposits := d.Lists["deposits"]
	d.Scalars["elgLoan"] = derive.EligibleLoan(deposits)
	d.Scalars["tenure"] = derive.TenureMonths(d.Scalars["sanDate"], deposits)
}

func lodClamp(d *booklet.Draft, field, value string) (string, string) {
	if field != "appLoan" {
		return value, ""
	}
	clamped, changed := derive.ClampAppliedLoan(value, d.Scalars["elgLoan"])
	if !changed {
		return value, ""
	}
	return clamped, "Applied Loan capped at the Eligible Loan"
}

func lodScheme() *Scheme {
	return &Scheme{
		Code:       booklet.SchemeLOD,
		Title:      "Loan Against Own Deposit",
		StepLabels: []string{"Loan Against Own Deposit"},
		ListOrder:  []string{"borrowers", "deposits"},
		Lists: map[string]records.ListConfig{
			"borrowers": lodBorrowers,
			"deposits":  lodDeposits,
		},
		Derived:   []string{"elgLoan", "tenure"},
		Rules:     lodRules(),
		Recompute: lodRecompute,
		Clamp:     lodClamp,
		Seed: func() *booklet.Draft {
			d := booklet.NewDraft(booklet.SchemeLOD)
			d.Lists["borrowers"] = lodBorrowers.SeedList()
			d.Lists["deposits"] = lodDeposits.SeedList()
			d.Scalars["loanType"] = "Overdraft"
			return d
		},
	}
}
