package forms

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr string
	}{
		{name: "empty", email: "", wantErr: "Email is required"},
		{name: "blank", email: "   ", wantErr: "Email is required"},
		{name: "no at", email: "john.doe.cd", wantErr: "Please enter a valid email address"},
		{name: "no dot", email: "john@doe", wantErr: "Please enter a valid email address"},
		{name: "inner space", email: "jo hn@doe.cd", wantErr: "Please enter a valid email address"},
		{name: "inner no-break space", email: "jo\u00a0hn@doe.cd", wantErr: "Please enter a valid email address"},
		{name: "valid", email: "john@doe.cd"},
		{name: "valid, padded", email: "  john@doe.cd "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEmail(tt.email)
			if res.Error != tt.wantErr || res.IsValid != (tt.wantErr == "") {
				t.Errorf("ValidateEmail() = %+v, wantErr %q", res, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		pwd     string
		opts    []PasswordOptions
		wantErr string
	}{
		{name: "empty", pwd: "", wantErr: "Password is required"},
		{name: "too short", pwd: "Ab1", wantErr: "Password must be at least 8 characters"},
		{name: "too long", pwd: "Ab1" + strings.Repeat("x", 126), wantErr: "Password must be no more than 128 characters"},
		{name: "no upper", pwd: "abcdefg1", wantErr: "Password must contain at least one uppercase letter"},
		{name: "no lower", pwd: "ABCDEFG1", wantErr: "Password must contain at least one lowercase letter"},
		{name: "no number", pwd: "Abcdefgh", wantErr: "Password must contain at least one number"},
		{name: "short and no upper reports length", pwd: "abc", wantErr: "Password must be at least 8 characters"},
		{
			name:    "special required",
			pwd:     "Abcdefg1",
			opts:    []PasswordOptions{{RequireSpecial: true}},
			wantErr: "Password must contain at least one special character",
		},
		{name: "special given", pwd: "Abcdefg1!", opts: []PasswordOptions{{RequireSpecial: true}}},
		{name: "custom min", pwd: "Abcdefg1", opts: []PasswordOptions{{MinLength: 10}}, wantErr: "Password must be at least 10 characters"},
		{name: "upper not required", pwd: "abcdefg1", opts: []PasswordOptions{{NoUpper: true}}},
		{name: "valid", pwd: "Abc12345"},
		{name: "valid, max length", pwd: "Ab1" + strings.Repeat("x", 125)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePassword(tt.pwd, tt.opts...)
			if res.Error != tt.wantErr || res.IsValid != (tt.wantErr == "") {
				t.Errorf("ValidatePassword() = %+v, wantErr %q", res, tt.wantErr)
			}
		})
	}
}

// valid iff 8 <= len <= 128 and at least one upper, one lower and one digit
func TestValidatePassword_iff(t *testing.T) {
	const alphabet = "aZ9!bY8 -cX"
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		b := make([]byte, rnd.Intn(140))
		for j := range b {
			b[j] = alphabet[rnd.Intn(len(alphabet))]
		}
		pwd := string(b)

		var upper, lower, digit bool
		for _, r := range pwd {
			upper = upper || unicode.IsUpper(r)
			lower = lower || unicode.IsLower(r)
			digit = digit || unicode.IsDigit(r)
		}
		want := len(pwd) >= 8 && len(pwd) <= 128 && upper && lower && digit

		if got := ValidatePassword(pwd).IsValid; got != want {
			t.Fatalf("ValidatePassword(%q).IsValid = %v, want %v", pwd, got, want)
		}
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		pwd  string
		want Strength
	}{
		{pwd: "", want: Strength{}},
		{pwd: "abc", want: Strength{Score: 1, Label: "Weak", Color: "#e74c3c"}},
		{pwd: "abcdefgh", want: Strength{Score: 2, Label: "Weak", Color: "#e74c3c"}},
		{pwd: "abcdefg1", want: Strength{Score: 3, Label: "Medium", Color: "#f39c12"}},
		{pwd: "Abcdefg1", want: Strength{Score: 4, Label: "Medium", Color: "#f39c12"}},
		{pwd: "Abcdefg1!", want: Strength{Score: 5, Label: "Strong", Color: "#27ae60"}},
		{pwd: "Password1!", want: Strength{Score: 5, Label: "Strong", Color: "#27ae60"}},
		{pwd: "Password1234!", want: Strength{Score: 6, Label: "Strong", Color: "#27ae60"}},
	}
	for _, tt := range tests {
		t.Run(tt.pwd, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordStrength(tt.pwd))
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		opts      []LengthOptions
		wantErr   string
		wantValue interface{}
	}{
		{name: "empty", input: "", wantErr: "Name is required"},
		{name: "blank", input: "  ", wantErr: "Name is required"},
		{name: "too short", input: "J", wantErr: "Name must be at least 2 characters"},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: "Name must be no more than 100 characters"},
		{name: "digits", input: "John 2", wantErr: "Name can only contain letters, spaces, hyphens, and apostrophes"},
		{name: "leading space", input: " John", wantErr: "Name cannot have leading or trailing spaces"},
		{name: "trailing space", input: "John ", wantErr: "Name cannot have leading or trailing spaces"},
		{name: "custom field", input: "", opts: []LengthOptions{{FieldName: "Full name"}}, wantErr: "Full name is required"},
		{name: "valid", input: "Jean-Luc O'Neil", wantValue: "Jean-Luc O'Neil"},
		{name: "valid, two chars", input: "Al", wantValue: "Al"},
		{name: "valid, no-break space", input: "Mary\u00a0Jane", wantValue: "Mary\u00a0Jane"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateName(tt.input, tt.opts...)
			assert.Equal(t, tt.wantErr, res.Error)
			assert.Equal(t, tt.wantErr == "", res.IsValid)
			assert.Equal(t, tt.wantValue, res.Value)
		})
	}
}

func randomName(rnd *rand.Rand) string {
	const alphabet = "abcXYZ -'"
	for {
		b := make([]byte, 2+rnd.Intn(99))
		for j := range b {
			b[j] = alphabet[rnd.Intn(len(alphabet))]
		}
		s := string(b)
		if s == strings.TrimSpace(s) {
			return s
		}
	}
}

func TestValidateName_properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		s := randomName(rnd)

		res := ValidateName(s)
		if !res.IsValid || res.Value != s {
			t.Fatalf("ValidateName(%q) = %+v, want valid and unchanged", s, res)
		}
		if padded := ValidateName(" " + s); padded.IsValid {
			t.Fatalf("ValidateName(%q) is valid, want untrimmed rejection", " "+s)
		}
		if padded := ValidateName(s + "\t"); padded.IsValid {
			t.Fatalf("ValidateName(%q) is valid, want untrimmed rejection", s+"\t")
		}
	}
}

func TestValidateTitleDescription(t *testing.T) {
	tests := []struct {
		name      string
		res       Result
		wantErr   string
		wantValue interface{}
	}{
		{name: "title empty", res: ValidateTitle(""), wantErr: "Title is required"},
		{name: "title short", res: ValidateTitle(" Go "), wantErr: "Title must be at least 3 characters"},
		{name: "title long", res: ValidateTitle(strings.Repeat("t", 201)), wantErr: "Title must be no more than 200 characters"},
		{name: "title trimmed", res: ValidateTitle("  Intro to Go "), wantValue: "Intro to Go"},
		{name: "title field name", res: ValidateTitle("", LengthOptions{FieldName: "Course title"}), wantErr: "Course title is required"},
		{name: "description short", res: ValidateDescription("too short"), wantErr: "Description must be at least 10 characters"},
		{name: "description long", res: ValidateDescription(strings.Repeat("d", 2001)), wantErr: "Description must be no more than 2000 characters"},
		{name: "description trimmed", res: ValidateDescription(" long enough text "), wantValue: "long enough text"},
		{name: "module description long", res: ValidateModuleDescription(strings.Repeat("d", 1001)), wantErr: "Module description must be no more than 1000 characters"},
		{name: "module description empty", res: ValidateModuleDescription(""), wantErr: "Module description is required"},
		{name: "runes not bytes", res: ValidateTitle("été"), wantValue: "été"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.res.Error)
			assert.Equal(t, tt.wantErr == "", tt.res.IsValid)
			assert.Equal(t, tt.wantValue, tt.res.Value)
		})
	}
}

func TestValidateSpecializationCode(t *testing.T) {
	tests := []struct {
		code      string
		wantErr   string
		wantValue interface{}
	}{
		{code: "", wantErr: "Specialization code is required"},
		{code: "m", wantErr: "Code must be at least 2 characters"},
		{code: strings.Repeat("A", 21), wantErr: "Code must be no more than 20 characters"},
		{code: "MSC_DA", wantErr: "Code can only contain uppercase letters, numbers, and hyphens"},
		{code: "msc-da", wantValue: "MSC-DA"},
		{code: " bsc-1 ", wantValue: "BSC-1"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			res := ValidateSpecializationCode(tt.code)
			assert.Equal(t, tt.wantErr, res.Error)
			assert.Equal(t, tt.wantValue, res.Value)
		})
	}
}

func TestIdempotence(t *testing.T) {
	rules := map[string]func(string) Result{
		"code":        ValidateSpecializationCode,
		"title":       func(s string) Result { return ValidateTitle(s) },
		"description": func(s string) Result { return ValidateDescription(s) },
		"category":    ValidateCategory,
		"name":        func(s string) Result { return ValidateName(s) },
	}
	inputs := map[string]string{
		"code":        " msc-da",
		"title":       " Intro to Go  ",
		"description": "\tAn introduction to Go\n",
		"category":    " Programming ",
		"name":        "Jean-Luc",
	}
	for name, rule := range rules {
		t.Run(name, func(t *testing.T) {
			first := rule(inputs[name])
			if !first.IsValid {
				t.Fatalf("rule(%q) = %+v, want valid", inputs[name], first)
			}
			second := rule(first.Value.(string))
			assert.True(t, second.IsValid)
			assert.Equal(t, first.Value, second.Value)
		})
	}
}

func TestValidateCategory(t *testing.T) {
	assert.Equal(t, Result{IsValid: true, Value: ""}, ValidateCategory(""))
	assert.Equal(t, Result{IsValid: true, Value: ""}, ValidateCategory("   "))
	assert.Equal(t, Result{IsValid: true, Value: "Data"}, ValidateCategory(" Data "))
	assert.Equal(t, Result{Error: "Category must be no more than 50 characters"}, ValidateCategory(strings.Repeat("c", 51)))
}

func TestValidateNumber(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		opts      []NumberOptions
		wantErr   string
		wantValue interface{}
	}{
		{name: "empty", raw: "", wantErr: "Number is required"},
		{name: "empty optional", raw: "", opts: []NumberOptions{{Optional: true}}},
		{name: "not a number", raw: "abc", wantErr: "Number must be a valid number"},
		{name: "sign only", raw: "-", wantErr: "Number must be a valid number"},
		{name: "below min", raw: "0", wantErr: "Number must be at least 1"},
		{name: "negative", raw: "-4", wantErr: "Number must be at least 1"},
		{name: "above max", raw: "1000", wantErr: "Number must be no more than 999"},
		{name: "field name", raw: "x", opts: []NumberOptions{{FieldName: "Order"}}, wantErr: "Order must be a valid number"},
		{name: "custom bounds", raw: "11", opts: []NumberOptions{{Min: 5, Max: 10}}, wantErr: "Number must be no more than 10"},
		{name: "min only", raw: "10", opts: []NumberOptions{{Min: 5}}, wantValue: 10},
		{name: "min only, below", raw: "4", opts: []NumberOptions{{Min: 5}}, wantErr: "Number must be at least 5"},
		{name: "min only, default max", raw: "1000", opts: []NumberOptions{{Min: 5}}, wantErr: "Number must be no more than 999"},
		{name: "max only", raw: "0", opts: []NumberOptions{{Max: 10}}, wantErr: "Number must be at least 1"},
		{name: "max only, above", raw: "11", opts: []NumberOptions{{Max: 10}}, wantErr: "Number must be no more than 10"},
		{name: "zero min", raw: "0", opts: []NumberOptions{{MinSet: true, Max: 10}}, wantValue: 0},
		{name: "overflow", raw: "99999999999999999999", wantErr: "Number must be no more than 999"},
		{name: "negative overflow", raw: "-99999999999999999999", wantErr: "Number must be at least 1"},
		{name: "leading integer", raw: "12abc", wantValue: 12},
		{name: "leading space", raw: " 7", wantValue: 7},
		{name: "decimal truncates", raw: "3.9", wantValue: 3},
		{name: "valid", raw: "999", wantValue: 999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateNumber(tt.raw, tt.opts...)
			assert.Equal(t, tt.wantErr, res.Error)
			assert.Equal(t, tt.wantErr == "", res.IsValid)
			assert.Equal(t, tt.wantValue, res.Value)
		})
	}
}

func TestValidateSelectAndCheckboxGroup(t *testing.T) {
	assert.Equal(t, "Please select a specialization", ValidateSelect("", "Specialization").Error)
	assert.Equal(t, "Please select a selection", ValidateSelect("", "").Error)
	assert.True(t, ValidateSelect("spec-1", "specialization").IsValid)

	assert.Equal(t, "Please select at least one course", ValidateCheckboxGroup(nil, "course").Error)
	assert.Equal(t, "Please select at least one item", ValidateCheckboxGroup([]string{}, "").Error)
	assert.True(t, ValidateCheckboxGroup([]string{"c1"}, "course").IsValid)
}

func TestValidatePasswordMatch(t *testing.T) {
	assert.Equal(t, Result{IsValid: true}, ValidatePasswordMatch("Abc12345", "Abc12345"))
	assert.Equal(t, Result{Error: "Passwords do not match"}, ValidatePasswordMatch("Abc12345", "abc12345"))
	assert.Equal(t, Result{Error: "Please confirm your password"}, ValidatePasswordMatch("Abc12345", ""))
}

func TestValidatePasswordChange(t *testing.T) {
	assert.Equal(t, Result{Error: "New password must be different from current password"}, ValidatePasswordChange("Abc12345", "Abc12345"))
	assert.True(t, ValidatePasswordChange("Abc12345", "Xyz12345").IsValid)
}
