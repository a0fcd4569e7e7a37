package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		value string
		tag   string
		want  bool
	}{
		{value: "jane@example.com", tag: EmailTag, want: true},
		{value: "jane@example", tag: EmailTag, want: false},
		{value: "jane doe@example.com", tag: EmailTag, want: false},
		{value: "Mary-Jane O'Neil", tag: PersonNameTag, want: true},
		{value: "R2D2", tag: PersonNameTag, want: false},
		{value: "jane\u00a0doe@example.com", tag: EmailTag, want: false},
		{value: "jane@exa\u2028mple.com", tag: EmailTag, want: false},
		{value: "Mary\u00a0Jane", tag: PersonNameTag, want: true},
		{value: "Mary\u3000Jane", tag: PersonNameTag, want: true},
		{value: "MSC-DA", tag: SpecCodeTag, want: true},
		{value: "msc-da", tag: SpecCodeTag, want: false},
		{value: "abC", tag: HasUpperTag, want: true},
		{value: "ABC", tag: HasLowerTag, want: false},
		{value: "abc1", tag: HasDigitTag, want: true},
		{value: "abc!", tag: HasSpecialTag, want: true},
		{value: "abc_", tag: HasSpecialTag, want: false},
		{value: "héllo", tag: "min=5", want: true},
		{value: "héllo", tag: "max=4", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.value, func(t *testing.T) {
			if got := Check(tt.value, tt.tag); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		key    string
		params []string
		want   string
	}{
		{key: RequiredTag, params: []string{"Email"}, want: "Email is required"},
		{key: EmailTag, want: "Please enter a valid email address"},
		{key: HasDigitTag, params: []string{"Password"}, want: "Password must contain at least one number"},
		{key: MinLenMsg, params: []string{"Name", "2"}, want: "Name must be at least 2 characters"},
		{key: SelectMsg, params: []string{"specialization"}, want: "Please select a specialization"},
		{key: PwdMismatchMsg, want: "Passwords do not match"},
		{key: "unknown_key", want: "unknown_key"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.key, tt.params...))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(ErrInvalidForm,
		FieldError{Field: "email", Error: "Email is required"},
		FieldError{Field: "name", Error: "Name is required"},
	)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "form has invalid fields: email: Email is required; name: Name is required", err.Error())
	assert.Equal(t, map[string]string{"email": "Email is required", "name": "Name is required"},
		err.(*ValidationError).FieldErrors())
	assert.False(t, IsValidationError(ErrInvalidForm))
}
