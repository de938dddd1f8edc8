package form

import "strings"

// Spec declares one field of a form.
type Spec struct {
	Name     string
	Label    string // defaults to Name
	Required bool
	Rule     Rule // optional format rule, only checked for non-empty values
}

// Errors holds the visible error flags of a field.
type Errors struct {
	Required bool
	Format   bool
}

// Any reports whether any error is visible.
func (e Errors) Any() bool {
	return e.Required || e.Format
}

// DeriveErrors computes the visible error flags of a field from its inputs.
// Nothing is reported for a field that has not been touched.
func DeriveErrors(value string, touched, required bool, rule Rule) Errors {
	if !touched {
		return Errors{}
	}
	trimmed := strings.TrimSpace(value)
	return Errors{
		Required: required && trimmed == "",
		Format:   rule != nil && trimmed != "" && !rule(trimmed),
	}
}

// Field owns the interaction state of one form field. A field starts
// pristine, becomes touched when it loses focus, and goes back to pristine
// whenever it regains focus.
type Field struct {
	spec    Spec
	id      string
	value   string
	touched bool
	derived Errors

	onChange func(name, value string)
	validate func(name string, invalid bool)
}

func newField(spec Spec, id, value string, onChange func(name, value string), validate func(name string, invalid bool)) *Field {
	f := &Field{
		spec:     spec,
		id:       id,
		value:    value,
		onChange: onChange,
		validate: validate,
	}
	f.reconcile()
	return f
}

// NewField creates a standalone field. Either callback may be nil; without
// an onChange callback the field keeps its own value.
func NewField(spec Spec, id string, onChange func(name, value string), validate func(name string, invalid bool)) *Field {
	return newField(spec, id, "", onChange, validate)
}

// ID returns the input identifier, stable for the lifetime of the field.
func (f *Field) ID() string { return f.id }

// Name returns the field name.
func (f *Field) Name() string { return f.spec.Name }

// Label returns the display label.
func (f *Field) Label() string {
	if f.spec.Label == "" {
		return f.spec.Name
	}
	return f.spec.Label
}

// Placeholder returns the hint shown in an empty input.
func (f *Field) Placeholder() string {
	return "Enter " + f.Label()
}

// Required reports whether the field must be non-empty.
func (f *Field) Required() bool { return f.spec.Required }

// Value returns the current value.
func (f *Field) Value() string { return f.value }

// Touched reports whether the field lost focus since it was last focused.
func (f *Field) Touched() bool { return f.touched }

// Errors returns the currently visible error flags.
func (f *Field) Errors() Errors { return f.derived }

// Messages returns the user-facing error messages in display order.
func (f *Field) Messages() []string {
	var msgs []string
	if f.derived.Required {
		msgs = append(msgs, f.Label()+" is required")
	}
	if f.derived.Format {
		msgs = append(msgs, f.Label()+" is not valid")
	}
	return msgs
}

// Focus restarts validation while the user edits the field: the touched flag
// is cleared and the owner is told the field has no error.
func (f *Field) Focus() {
	if f.validate != nil {
		f.validate(f.spec.Name, false)
	}
	f.touched = false
	f.reconcile()
}

// Blur marks the field as touched.
func (f *Field) Blur() {
	f.touched = true
	f.reconcile()
}

// SetValue handles an input event. The value goes through the change
// callback and comes back through the owner; a field without a change
// callback stores it directly.
func (f *Field) SetValue(value string) {
	if f.onChange == nil {
		f.setValue(value)
		return
	}
	f.onChange(f.spec.Name, value)
}

func (f *Field) setValue(value string) {
	f.value = value
	f.reconcile()
}

// reconcile recomputes the derived flags and notifies the owner only when
// they changed into a state showing an error.
func (f *Field) reconcile() {
	next := DeriveErrors(f.value, f.touched, f.spec.Required, f.spec.Rule)
	if next == f.derived {
		return
	}
	f.derived = next
	if next.Any() && f.validate != nil {
		f.validate(f.spec.Name, true)
	}
}
