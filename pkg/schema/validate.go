package schema

import "sort"

// Schema maps parameter names to their declared types.
type Schema map[string]Type

// Check compares held values against the schema. Values the schema does not
// declare are ignored. Mismatches come back as a *CheckError in name order.
func Check(s Schema, values map[string]any) error {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	var found []*Mismatch
	for _, name := range names {
		typ := s[name]
		value, ok := values[name]
		if !ok || typ.Validate(value) != nil {
			found = append(found, &Mismatch{Param: name, Want: typ.Name(), Value: value})
		}
	}
	if len(found) == 0 {
		return nil
	}
	return &CheckError{Mismatches: found}
}
