// Package schema declares the loan schemes as data: field rules, record-list
// shapes, step layout, derived-field recomputation and input clamps. One
// generic engine (records, derive, validate) runs every scheme; adding a
// scheme means adding a table here, not another module.
package schema

import (
	"loan-booklet-be/pkg/booklet"
	"loan-booklet-be/pkg/booklet/records"
	"loan-booklet-be/pkg/booklet/validate"
)

// Scheme is the declarative description of one loan product.
type Scheme struct {
	Code       string
	Title      string
	StepLabels []string
	// AllowJump permits direct navigation to any step via the step
	// indicator; schemes without it only expose next/back.
	AllowJump bool

	ListOrder []string
	Lists     map[string]records.ListConfig

	// Derived fields are recomputed, never directly edited.
	Derived []string
	Rules   *validate.RuleSet

	// Recompute refreshes every derived field in place after a mutation.
	Recompute func(d *booklet.Draft)
	// Clamp may rewrite an incoming scalar value and return a user-facing
	// warning (the LOD applied-loan guard). Empty warning means untouched.
	Clamp func(d *booklet.Draft, field, value string) (stored string, warning string)

	Seed func() *booklet.Draft
}

func (s *Scheme) Steps() int { return len(s.StepLabels) }

func (s *Scheme) IsDerived(field string) bool {
	for _, f := range s.Derived {
		if f == field {
			return true
		}
	}
	return false
}

func (s *Scheme) List(name string) (records.ListConfig, bool) {
	cfg, ok := s.Lists[name]
	return cfg, ok
}

var registry = map[string]*Scheme{}
var order []string

func register(s *Scheme) {
	registry[s.Code] = s
	order = append(order, s.Code)
}

// Registration happens in one place so the catalog order never depends on
// file init order.
func init() {
	register(shgScheme())
	register(sakhiScheme())
	register(lodScheme())
}

// Get looks a scheme up by code.
func Get(code string) (*Scheme, bool) {
	s, ok := registry[code]
	return s, ok
}

// All returns the schemes in registration order (the catalog endpoint).
func All() []*Scheme {
	out := make([]*Scheme, 0, len(order))
	for _, code := range order {
		out = append(out, registry[code])
	}
	return out
}
