package models

import "slices"

// FieldFilter restricts which attributes of a tracked entity end up in the
// recorded diff. An empty filter allows everything. When Included is set,
// only those fields are considered; Excluded always wins over Included.
type FieldFilter struct {
	Included []string
	Excluded []string
}

func (f FieldFilter) Allows(field string) bool {
	if slices.Contains(f.Excluded, field) {
		return false
	}
	if len(f.Included) > 0 {
		return slices.Contains(f.Included, field)
	}
	return true
}

// Apply returns a copy of attrs restricted to the allowed fields.
func (f FieldFilter) Apply(attrs Attributes) Attributes {
	out := make(Attributes, len(attrs))
	for field, value := range attrs {
		if f.Allows(field) {
			out[field] = value
		}
	}
	return out
}
