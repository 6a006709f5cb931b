package params

import (
	"fmt"
	"sort"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/schema"
)

// Declaration describes an authored parameter.
type Declaration struct {
	Name    string
	Type    schema.Type
	Default any
}

// Registry holds parameter metadata for one graph. It is passed explicitly to
// whatever needs it; there is no process-wide instance.
type Registry struct {
	decls map[string]Declaration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{decls: make(map[string]Declaration)}
}

// Declare adds or replaces a declaration. A nil default becomes the type's zero
// value; other defaults are coerced to the declared type.
func (r *Registry) Declare(name string, typ schema.Type, def any) error {
	if name == "" {
		return fmt.Errorf("parameter name is empty")
	}
	if typ == nil {
		return fmt.Errorf("parameter %s: nil type", name)
	}
	value := typ.Zero()
	if def != nil {
		coerced, err := typ.Coerce(def)
		if err != nil {
			return fmt.Errorf("parameter %s default: %w", name, err)
		}
		value = coerced
	}
	r.decls[name] = Declaration{Name: name, Type: typ, Default: value}
	return nil
}

// Lookup returns the declaration for name.
func (r *Registry) Lookup(name string) (Declaration, bool) {
	d, ok := r.decls[name]
	return d, ok
}

// Declarations returns all declarations sorted by name.
func (r *Registry) Declarations() []Declaration {
	out := make([]Declaration, 0, len(r.decls))
	for _, d := range r.decls {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Schema returns the declared types as a schema.Schema.
func (r *Registry) Schema() schema.Schema {
	s := make(schema.Schema, len(r.decls))
	for name, d := range r.decls {
		s[name] = d.Type
	}
	return s
}

// Seed writes the declared default of every parameter the store does not
// already hold with the declared kind. Live values survive a rebuild.
func (r *Registry) Seed(s *Store) {
	for _, d := range r.Declarations() {
		if s.Kind(d.Name) == d.Type.Kind() {
			continue
		}
		s.Set(d.Name, d.Default)
	}
}

// Validate checks the store's current values against the declared types.
// The error is a *schema.CheckError.
func (r *Registry) Validate(s *Store) error {
	return schema.Check(r.Schema(), s.Snapshot())
}

// Mismatches reports every declared parameter the store holds with the wrong
// type, or not at all, as a parameter_type_mismatch diagnostic.
func (r *Registry) Mismatches(s *Store) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, m := range schema.Mismatches(r.Validate(s)) {
		diags = append(diags, domain.Diagnostic{
			Code:    domain.DiagParamTypeMismatch,
			Subject: m.Param,
			Message: m.Error(),
		})
	}
	return diags
}

// RegistryFromRecords builds a registry from authored declarations. Invalid
// records are skipped and reported.
func RegistryFromRecords(records []domain.ParameterRecord) (*Registry, []domain.Diagnostic) {
	r := NewRegistry()
	var diags []domain.Diagnostic
	for _, rec := range records {
		typ, err := schema.ParseType(rec.Type)
		if err == nil {
			err = r.Declare(rec.Name, typ, rec.Default)
		}
		if err != nil {
			diags = append(diags, domain.Diagnostic{
				Code:    domain.DiagInvalidParameter,
				Subject: rec.Name,
				Message: err.Error(),
			})
		}
	}
	return r, diags
}
