package models

import (
	"fmt"
	"strings"

	"github.com/yigit/unidb/internal/pkg/validation"
)

// InputKind is the HTML input type rendered for a field
type InputKind string

// InputText is the only kind the forms render
const InputText InputKind = "text"

// Field describes one string-typed attribute of a module's records
type Field struct {
	Name   string    `json:"name"`
	Label  string    `json:"label"`  // form label
	Column string    `json:"column"` // table header
	Kind   InputKind `json:"kind"`
}

// Module binds an ordered field schema to a navigation path
type Module struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Title    string  `json:"title"`
	Singular string  `json:"singular"`
	Fields   []Field `json:"fields"`
}

// FieldNames returns the schema's field names in display order
func (m Module) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

// HasField reports whether name belongs to the schema
func (m Module) HasField(name string) bool {
	for _, f := range m.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// EmptyText is shown in the table when the collection has no records
func (m Module) EmptyText() string {
	return "No " + strings.ToLower(m.Title) + " added yet."
}

// Validate checks the descriptor itself, not record data
func (m Module) Validate() error {
	if !validation.NewStringValidation(m.Name).WithPattern(validation.CompiledPatterns.Identifier).Validate() {
		return fmt.Errorf("module %q: invalid name", m.Name)
	}
	if !validation.NewStringValidation(m.Path).WithPattern(validation.CompiledPatterns.Path).Validate() {
		return fmt.Errorf("module %q: invalid path %q", m.Name, m.Path)
	}
	if !validation.NewStringValidation(m.Title).WithMaxLength(validation.LabelMaxLength).Validate() ||
		!validation.NewStringValidation(m.Singular).WithMaxLength(validation.LabelMaxLength).Validate() {
		return fmt.Errorf("module %q: title and singular are required", m.Name)
	}
	if len(m.Fields) == 0 {
		return fmt.Errorf("module %q: no fields", m.Name)
	}

	seen := make(map[string]bool, len(m.Fields))
	for _, f := range m.Fields {
		if !validation.NewStringValidation(f.Name).WithPattern(validation.CompiledPatterns.Identifier).Validate() {
			return fmt.Errorf("module %q: invalid field name %q", m.Name, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("module %q: duplicate field %q", m.Name, f.Name)
		}
		seen[f.Name] = true

		if !validation.NewStringValidation(f.Label).WithMaxLength(validation.LabelMaxLength).Validate() ||
			!validation.NewStringValidation(f.Column).WithMaxLength(validation.LabelMaxLength).Validate() {
			return fmt.Errorf("module %q: field %q needs a label and a column header", m.Name, f.Name)
		}
		if f.Kind != InputText {
			return fmt.Errorf("module %q: field %q has unsupported input kind %q", m.Name, f.Name, f.Kind)
		}
	}
	return nil
}
