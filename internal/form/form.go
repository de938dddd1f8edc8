// Package form implements an interactively validated form: per-field touched
// state and derived errors, an aggregated validity map, and a submit gate
// that opens only when every field is filled in and no field shows an error.
//
// A Form is driven by discrete UI events (focus, blur, value change, submit)
// and is not safe for concurrent use.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

var (
	// ErrSubmitDisabled is returned by Submit while the submit gate is closed.
	ErrSubmitDisabled = errors.New("form is not ready to submit")
	// ErrUnknownField is returned for events addressed to an undeclared field.
	ErrUnknownField = errors.New("unknown field")
)

// Record is the set of field values handed to the submit callback.
type Record map[string]string

// SubmitFunc receives a completed record. Returning an error keeps the form
// state as it was.
type SubmitFunc func(ctx context.Context, record Record) error

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used for validity and submission events.
func WithLogger(lgr logr.Logger) Option {
	return func(f *Form) {
		f.log = lgr
	}
}

// Form owns the field values, the aggregated validity map and the submit
// gate for a fixed set of fields.
type Form struct {
	specs      []Spec
	fields     map[string]*Field
	values     map[string]string
	validity   map[string]bool
	generation int
	nextID     int
	submit     SubmitFunc
	log        logr.Logger
}

// New creates a form for the declared fields. Field names must be unique and
// non-empty.
func New(specs []Spec, submit SubmitFunc, opts ...Option) (*Form, error) {
	if len(specs) == 0 {
		return nil, errors.New("form needs at least one field")
	}
	if submit == nil {
		return nil, errors.New("form needs a submit function")
	}
	f := &Form{
		specs:    append([]Spec(nil), specs...),
		values:   make(map[string]string, len(specs)),
		validity: make(map[string]bool, len(specs)),
		submit:   submit,
		log:      logr.Discard(),
	}
	for _, spec := range f.specs {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, errors.New("field name must not be empty")
		}
		if _, dup := f.values[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", spec.Name)
		}
		f.values[spec.Name] = ""
		f.validity[spec.Name] = false
	}
	for _, opt := range opts {
		opt(f)
	}
	f.mount()
	return f, nil
}

// mount builds a fresh state bundle for every field. Fresh fields are
// pristine and get new identifiers.
func (f *Form) mount() {
	f.fields = make(map[string]*Field, len(f.specs))
	for _, spec := range f.specs {
		f.fields[spec.Name] = newField(spec, f.allocID(spec.Name), f.values[spec.Name], f.changeFromField, f.setValidity)
	}
}

func (f *Form) allocID(name string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", name, f.nextID)
}

func (f *Form) changeFromField(name, value string) {
	// Field names come from the specs, so the lookup cannot fail here.
	_ = f.OnFieldChange(name, value)
}

// setValidity is the only channel through which a field writes its own entry
// of the validity map.
func (f *Form) setValidity(name string, invalid bool) {
	if f.validity[name] == invalid {
		return
	}
	f.validity[name] = invalid
	f.log.V(1).Info("field validity changed", "field", name, "invalid", invalid, "generation", f.generation)
}

// Field returns the controller for name.
func (f *Form) Field(name string) (*Field, bool) {
	fld, ok := f.fields[name]
	return fld, ok
}

// Fields returns the field controllers in declaration order.
func (f *Form) Fields() []*Field {
	out := make([]*Field, 0, len(f.specs))
	for _, spec := range f.specs {
		out = append(out, f.fields[spec.Name])
	}
	return out
}

// Value returns the stored value of name.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of the stored values.
func (f *Form) Values() Record {
	out := make(Record, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Validity returns a copy of the aggregated validity map; true means the
// field shows an error.
func (f *Form) Validity() map[string]bool {
	out := make(map[string]bool, len(f.validity))
	for k, v := range f.validity {
		out[k] = v
	}
	return out
}

// Generation counts successful submissions.
func (f *Form) Generation() int {
	return f.generation
}

// OnFieldChange stores a new value for name and hands it to the field.
// Validation state is left to the field's own derived flags.
func (f *Form) OnFieldChange(name, value string) error {
	fld, err := f.lookup(name)
	if err != nil {
		return err
	}
	f.values[name] = value
	fld.setValue(value)
	return nil
}

// SetValue routes an input event to the field named name.
func (f *Form) SetValue(name, value string) error {
	fld, err := f.lookup(name)
	if err == nil {
		fld.SetValue(value)
	}
	return err
}

// Focus routes a focus event to the field named name.
func (f *Form) Focus(name string) error {
	fld, err := f.lookup(name)
	if err == nil {
		fld.Focus()
	}
	return err
}

// Blur routes a blur event to the field named name.
func (f *Form) Blur(name string) error {
	fld, err := f.lookup(name)
	if err == nil {
		fld.Blur()
	}
	return err
}

func (f *Form) lookup(name string) (*Field, error) {
	fld, ok := f.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return fld, nil
}

// SubmitEnabled reports whether every value is non-blank and no field shows
// an error. It is derived on every call and never cached.
func (f *Form) SubmitEnabled() bool {
	for _, v := range f.values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	for _, invalid := range f.validity {
		if invalid {
			return false
		}
	}
	return true
}

// Submit hands the current values to the submit function and resets the
// form. It returns ErrSubmitDisabled without calling the submit function
// while the gate is closed.
func (f *Form) Submit(ctx context.Context) error {
	if !f.SubmitEnabled() {
		return ErrSubmitDisabled
	}
	if err := f.submit(ctx, f.Values()); err != nil {
		return fmt.Errorf("submit record: %w", err)
	}
	f.reset()
	f.log.Info("record submitted", "generation", f.generation)
	return nil
}

// reset clears values and validity and rebuilds every field.
func (f *Form) reset() {
	for _, spec := range f.specs {
		f.values[spec.Name] = ""
		f.validity[spec.Name] = false
	}
	f.generation++
	f.mount()
}
