// Package validate runs the layered, scheme-dependent validation pass over a
// draft. A scheme declares its rules per step; callers ask for a partial pass
// (everything owned by steps 1..n, used to gate step advancement) or the
// final pre-submission pass (the union of all steps). Output is an ordered
// list of human-readable violations: section order, then record index, then
// field declaration order, so message sequences are deterministic.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"loan-booklet-be/pkg/booklet"
)

var v = validator.New()

// Scope selects which steps' rules run.
type Scope struct {
	final bool
	step  int
}

func Step(n int) Scope { return Scope{step: n} }
func Final() Scope     { return Scope{final: true} }

func (s Scope) covers(step int) bool {
	return s.final || step <= s.step
}

func (s Scope) String() string {
	if s.final {
		return "final"
	}
	return fmt.Sprintf("step %d", s.step)
}

// Check is one shape constraint on a present value. It returns a message
// fragment ("must be 12 digits") or "" when the value passes. Blank values
// are the required rule's business, not a check's.
type Check func(value string, now time.Time) string

// FieldRule validates one scalar field.
type FieldRule struct {
	Step     int
	Field    string
	Label    string
	Required bool
	Checks   []Check
}

// RecordFieldRule validates one field of every record in a list.
type RecordFieldRule struct {
	Field    string
	Label    string
	Required bool
	Checks   []Check
}

// ListRule validates a record list, record by record in position order.
// RecordLabel names a record in messages (its role, or "Borrower 2").
type ListRule struct {
	Step        int
	List        string
	RecordLabel func(index int, rec booklet.Record) string
	Fields      []RecordFieldRule
}

// CrossRule is a step-owned rule spanning several fields or a whole list.
type CrossRule struct {
	Step  int
	Check func(d *booklet.Draft, now time.Time) []string
}

// RuleSet is the full declarative rule table of one scheme.
type RuleSet struct {
	Steps  int
	Lists  []ListRule
	Fields []FieldRule
	Cross  []CrossRule
}

// Validate evaluates the rules owned by the scoped steps against the draft.
// An empty result means the scoped portion of the draft is valid.
func (rs *RuleSet) Validate(d *booklet.Draft, scope Scope, now time.Time) []string {
	var out []string
	for step := 1; step <= rs.Steps; step++ {
		if !scope.covers(step) {
			break
		}
		for _, lr := range rs.Lists {
			if lr.Step == step {
				out = append(out, lr.run(d, now)...)
			}
		}
		for _, fr := range rs.Fields {
			if fr.Step == step {
				out = append(out, fr.run(d, now)...)
			}
		}
		for _, cr := range rs.Cross {
			if cr.Step == step {
				out = append(out, cr.Check(d, now)...)
			}
		}
	}
	return out
}

func (fr FieldRule) run(d *booklet.Draft, now time.Time) []string {
	value := strings.TrimSpace(d.Scalars[fr.Field])
	if value == "" {
		if fr.Required {
			return []string{fr.Label + " is required"}
		}
		return nil
	}
	var out []string
	for _, check := range fr.Checks {
		if msg := check(value, now); msg != "" {
			out = append(out, fr.Label+" "+msg)
		}
	}
	return out
}

func (lr ListRule) run(d *booklet.Draft, now time.Time) []string {
	var out []string
	for i, rec := range d.Lists[lr.List] {
		label := lr.RecordLabel(i, rec)
		for _, f := range lr.Fields {
			value := strings.TrimSpace(rec[f.Field])
			if value == "" {
				if f.Required {
					out = append(out, fmt.Sprintf("%s: %s is required", label, f.Label))
				}
				continue
			}
			for _, check := range f.Checks {
				if msg := check(value, now); msg != "" {
					out = append(out, fmt.Sprintf("%s: %s %s", label, f.Label, msg))
				}
			}
		}
	}
	return out
}

// --- Check constructors ---

const dateLayout = "2006-01-02"

// Numeric accepts digits with an optional decimal point.
func Numeric() Check {
	return func(value string, _ time.Time) string {
		if err := v.Var(value, "numeric"); err != nil {
			return "must be a number"
		}
		return ""
	}
}

// Digits requires exactly n digits (Aadhaar 12, account numbers, PIN).
func Digits(n int) Check {
	return func(value string, _ time.Time) string {
		if err := v.Var(value, fmt.Sprintf("len=%d,number", n)); err != nil {
			return fmt.Sprintf("must be %d digits", n)
		}
		return ""
	}
}

// Mobile requires a 10-digit Indian mobile number with a 6-9 lead.
func Mobile() Check {
	return func(value string, _ time.Time) string {
		if len(value) != 10 || value[0] < '6' || value[0] > '9' {
			return "must be a valid 10-digit mobile number"
		}
		if err := v.Var(value, "number"); err != nil {
			return "must be a valid 10-digit mobile number"
		}
		return ""
	}
}

// ValidDate requires a real calendar date in ISO form.
func ValidDate() Check {
	return func(value string, _ time.Time) string {
		if _, err := time.Parse(dateLayout, value); err != nil {
			return "must be a valid date"
		}
		return ""
	}
}

// NotFuture requires a date no later than the current day. Evaluated at
// validation time, not capture time.
func NotFuture() Check {
	return func(value string, now time.Time) string {
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			return "" // ValidDate reports the parse failure
		}
		if t.After(now) {
			return "cannot be in the future"
		}
		return ""
	}
}
