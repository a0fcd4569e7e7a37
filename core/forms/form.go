package forms

import (
	"net/url"

	"github.com/trezcool/masomo-portal/core"
)

// Rule validates one field; it receives every value of the form so it can read its siblings.
type Rule func(values url.Values) Result

// Field declares a form input.
// Dependents are re-validated (when touched) whenever this field changes.
// Multi fields (checkbox groups) keep all their values in the payload.
type Field struct {
	Name       string
	Rule       Rule
	Dependents []string
	Multi      bool
}

// Payload is the submitted form: canonical values substituted over the raw input.
type Payload map[string]interface{}

// String returns the payload value of name as a string, or "" when it is not one.
func (p Payload) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Int returns the payload value of name as an int, or 0 when it is not one.
func (p Payload) Int(name string) int {
	n, _ := p[name].(int)
	return n
}

// Strings returns the payload value of name as a string slice.
func (p Payload) Strings(name string) []string {
	ss, _ := p[name].([]string)
	return ss
}

// Form tracks values, touched state and rule results of a set of fields.
// A Form is not safe for concurrent use.
type Form struct {
	fields  []Field
	index   map[string]int
	values  url.Values
	touched map[string]bool
	results map[string]Result
}

func NewForm(fields ...Field) *Form {
	f := &Form{
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, fld := range fields {
		f.index[fld.Name] = i
	}
	f.Reset()
	return f
}

// Reset clears values, errors and touched state.
func (f *Form) Reset() {
	f.values = url.Values{}
	f.touched = make(map[string]bool)
	f.results = make(map[string]Result)
}

// Fill sets several values without validating them.
func (f *Form) Fill(values url.Values) {
	for name, vals := range values {
		if _, ok := f.index[name]; ok {
			f.values[name] = append([]string(nil), vals...)
		}
	}
}

// Change stores the value of name and re-runs its rule, and those of its dependents, if touched.
func (f *Form) Change(name string, value ...string) Result {
	i, ok := f.index[name]
	if !ok {
		return Result{}
	}
	f.values[name] = append([]string(nil), value...)

	for _, dep := range f.fields[i].Dependents {
		if f.touched[dep] {
			f.run(dep)
		}
	}
	if f.touched[name] {
		return f.run(name)
	}
	return f.results[name]
}

// Blur marks name as touched and runs its rule.
func (f *Form) Blur(name string) Result {
	if _, ok := f.index[name]; !ok {
		return Result{}
	}
	f.touched[name] = true
	return f.run(name)
}

// Submit runs every rule, marks every field touched and returns the payload if all are valid.
func (f *Form) Submit() (Payload, bool) {
	ok := true
	for _, fld := range f.fields {
		f.touched[fld.Name] = true
		if res := f.run(fld.Name); !res.IsValid {
			ok = false
		}
	}
	if !ok {
		return nil, false
	}
	return f.payload(), true
}

func (f *Form) payload() Payload {
	p := make(Payload, len(f.fields))
	for _, fld := range f.fields {
		switch {
		case f.results[fld.Name].Value != nil:
			p[fld.Name] = f.results[fld.Name].Value
		case fld.Multi:
			p[fld.Name] = append([]string{}, f.values[fld.Name]...)
		default:
			p[fld.Name] = f.values.Get(fld.Name)
		}
	}
	return p
}

func (f *Form) run(name string) Result {
	fld := f.fields[f.index[name]]
	var res Result
	if fld.Rule != nil {
		res = fld.Rule(f.values)
	} else {
		res = valid()
	}
	f.results[name] = res
	return res
}

func (f *Form) Value(name string) string {
	return f.values.Get(name)
}

func (f *Form) Touched(name string) bool {
	return f.touched[name]
}

// Error returns the current error of name; untouched fields never report one.
func (f *Form) Error(name string) string {
	if !f.touched[name] {
		return ""
	}
	return f.results[name].Error
}

// Errors returns a *core.ValidationError listing the failing touched fields, or nil.
func (f *Form) Errors() error {
	var flds []core.FieldError
	for _, fld := range f.fields {
		if msg := f.Error(fld.Name); msg != "" {
			flds = append(flds, core.FieldError{Field: fld.Name, Error: msg})
		}
	}
	if len(flds) == 0 {
		return nil
	}
	return core.NewValidationError(core.ErrInvalidForm, flds...)
}
