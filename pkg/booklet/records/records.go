package records

import (
	"fmt"

	"loan-booklet-be/pkg/booklet"
)

// ListConfig declares the shape of one repeatable record list: its field
// names (declaration order), size bounds, and the optional position-derived
// role label written into RoleField.
type ListConfig struct {
	Fields []string
	Min    int // 1 keeps the list non-empty by replacing the last record with a blank
	Max    int // 0 means unbounded
	Seed   int // number of blank records in a fresh draft

	RoleField string
	RoleOf    func(index int) string
}

// Blank returns a default record: every declared field empty, the role label
// set for the given position when the list derives roles.
func (c ListConfig) Blank(index int) booklet.Record {
	rec := make(booklet.Record, len(c.Fields)+1)
	for _, f := range c.Fields {
		rec[f] = ""
	}
	if c.RoleField != "" && c.RoleOf != nil {
		rec[c.RoleField] = c.RoleOf(index)
	}
	return rec
}

// SeedList builds the list a fresh draft starts with.
func (c ListConfig) SeedList() []booklet.Record {
	list := make([]booklet.Record, c.Seed)
	for i := range list {
		list[i] = c.Blank(i)
	}
	return list
}

// Add appends a blank record. At the configured maximum the list is returned
// unchanged and ok is false. The input list is never mutated.
func Add(list []booklet.Record, cfg ListConfig) (out []booklet.Record, ok bool) {
	if cfg.Max > 0 && len(list) >= cfg.Max {
		return list, false
	}
	out = make([]booklet.Record, 0, len(list)+1)
	for _, rec := range list {
		out = append(out, rec.Clone())
	}
	return append(out, cfg.Blank(len(list))), true
}

// UpdateField replaces one field value at index, returning a new list.
func UpdateField(list []booklet.Record, index int, field, value string) ([]booklet.Record, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("record index %d out of range (list has %d)", index, len(list))
	}
	out := make([]booklet.Record, len(list))
	for i, rec := range list {
		out[i] = rec.Clone()
	}
	out[index][field] = value
	return out, nil
}

// Delete removes the record at index. Every surviving record after the cut
// gets its role label recomputed for its new position. A list with Min 1
// never becomes empty: deleting the last record yields one blank default.
func Delete(list []booklet.Record, index int, cfg ListConfig) ([]booklet.Record, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("record index %d out of range (list has %d)", index, len(list))
	}
	out := make([]booklet.Record, 0, len(list)-1)
	for i, rec := range list {
		if i == index {
			continue
		}
		out = append(out, rec.Clone())
	}
	if len(out) == 0 && cfg.Min >= 1 {
		return []booklet.Record{cfg.Blank(0)}, nil
	}
	if cfg.RoleField != "" && cfg.RoleOf != nil {
		for i := range out {
			out[i][cfg.RoleField] = cfg.RoleOf(i)
		}
	}
	return out, nil
}
