// Package derive holds the pure calculators for fields that are computed,
// never typed: the LOD eligible-loan amount and the loan tenure in whole
// elapsed months. Callers re-run them after every mutation that touches a
// dependency, so a persisted draft never carries a stale derived value.
package derive

import (
	"fmt"
	"strconv"
	"time"

	"loan-booklet-be/pkg/booklet"
)

const dateLayout = "2006-01-02"

// EligibleLoan is 0.9 times the sum of term values across all deposits,
// formatted to two decimals. An all-empty deposit list yields the empty
// string so the field reads as unset, not zero.
func EligibleLoan(deposits []booklet.Record) string {
	total := 0.0
	for _, d := range deposits {
		if v, err := strconv.ParseFloat(d["termVal"], 64); err == nil {
			total += v
		}
	}
	eligible := total * 0.9
	if eligible == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", eligible)
}

// TenureMonths is the number of whole months between the sanction date and
// the earliest parseable maturity date among the deposits: calendar-month
// difference, minus one when the maturity day-of-month falls short of the
// sanction day-of-month. An earliest maturity before the sanction date gives
// "0". No sanction date or no parseable maturity date leaves the field unset.
func TenureMonths(sanctionDate string, deposits []booklet.Record) string {
	san, err := time.Parse(dateLayout, sanctionDate)
	if err != nil {
		return ""
	}

	var earliest *time.Time
	for _, d := range deposits {
		mat, err := time.Parse(dateLayout, d["matDate"])
		if err != nil {
			continue
		}
		if earliest == nil || mat.Before(*earliest) {
			earliest = &mat
		}
	}
	if earliest == nil {
		return ""
	}
	if earliest.Before(san) {
		return "0"
	}

	months := (earliest.Year()-san.Year())*12 + int(earliest.Month()) - int(san.Month())
	if earliest.Day() < san.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return strconv.Itoa(months)
}

// ClampAppliedLoan enforces the applied-loan input guard: a value above the
// current eligible loan is rejected and coerced back to the eligible amount
// (two decimals). Returns the value to store and whether it was clamped.
func ClampAppliedLoan(value, eligible string) (string, bool) {
	applied, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value, false
	}
	elig, err := strconv.ParseFloat(eligible, 64)
	if err != nil {
		elig = 0
	}
	if applied <= elig {
		return value, false
	}
	if elig == 0 {
		return "", true
	}
	return fmt.Sprintf("%.2f", elig), true
}
