// Package forms holds the field validation rules of the portal and the Form type composing them.
package forms

// Result is the outcome of a single rule.
// Error is non-empty iff IsValid is false; Value is only set on success, by canonicalizing rules.
type Result struct {
	IsValid bool
	Error   string
	Value   interface{}
}

func valid() Result {
	return Result{IsValid: true}
}

func validValue(v interface{}) Result {
	return Result{IsValid: true, Value: v}
}

func invalid(msg string) Result {
	return Result{Error: msg}
}
