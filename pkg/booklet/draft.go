package booklet

// A Record is one repeatable sub-row of a draft (a group member, a deposit,
// a borrower, a legal heir). Records carry no identity beyond their position
// in the list; position-derived labels are recomputed after every deletion.
type Record map[string]string

// Draft is the working document of one loan-application session. Scalars hold
// free-form field values keyed by field name; Lists hold the repeatable
// record groups keyed by list name. Derived fields live inside Scalars but
// are only ever written by the scheme's recompute hook.
type Draft struct {
	Scheme  string              `json:"scheme"`
	Scalars map[string]string   `json:"scalars"`
	Lists   map[string][]Record `json:"lists"`
}

func NewDraft(scheme string) *Draft {
	return &Draft{
		Scheme:  scheme,
		Scalars: make(map[string]string),
		Lists:   make(map[string][]Record),
	}
}

// Clone returns a deep copy. Services mutate the copy and persist it, so the
// previously returned draft value is never changed underneath a caller.
func (d *Draft) Clone() *Draft {
	c := NewDraft(d.Scheme)
	for k, v := range d.Scalars {
		c.Scalars[k] = v
	}
	for name, list := range d.Lists {
		copied := make([]Record, len(list))
		for i, rec := range list {
			r := make(Record, len(rec))
			for f, v := range rec {
				r[f] = v
			}
			copied[i] = r
		}
		c.Lists[name] = copied
	}
	return c
}

func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
