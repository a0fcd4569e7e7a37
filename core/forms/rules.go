package forms

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-portal/core"
)

// PasswordOptions tunes ValidatePassword. Zero lengths fall back to 8 and 128.
type PasswordOptions struct {
	MinLength      int
	MaxLength      int
	NoUpper        bool
	NoLower        bool
	NoNumber       bool
	RequireSpecial bool
}

// LengthOptions tunes the free-text rules. Zero values fall back to the rule's defaults.
type LengthOptions struct {
	MinLength int
	MaxLength int
	FieldName string
}

// NumberOptions tunes ValidateNumber. A zero Max means 999 and a zero Min means 1
// unless MinSet is true.
type NumberOptions struct {
	Min       int
	MinSet    bool
	Max       int
	FieldName string
	Optional  bool
}

func (o LengthOptions) withDefaults(min, max int, fieldName string) LengthOptions {
	if o.MinLength == 0 {
		o.MinLength = min
	}
	if o.MaxLength == 0 {
		o.MaxLength = max
	}
	if o.FieldName == "" {
		o.FieldName = fieldName
	}
	return o
}

func lengthOpts(opts []LengthOptions, min, max int, fieldName string) LengthOptions {
	var o LengthOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return o.withDefaults(min, max, fieldName)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// checkLength runs the min/max rune-length tags against s.
func checkLength(s string, min, max int, fieldName string) (Result, bool) {
	if !core.Check(s, fmt.Sprintf("min=%d", min)) {
		return invalid(core.Message(core.MinLenMsg, fieldName, strconv.Itoa(min))), false
	}
	if !core.Check(s, fmt.Sprintf("max=%d", max)) {
		return invalid(core.Message(core.MaxLenMsg, fieldName, strconv.Itoa(max))), false
	}
	return Result{}, true
}

func ValidateEmail(email string) Result {
	if isBlank(email) {
		return invalid(core.Message(core.RequiredTag, "Email"))
	}
	if !core.Check(strings.TrimSpace(email), core.EmailTag) {
		return invalid(core.Message(core.EmailTag))
	}
	return valid()
}

// ValidatePassword reports the first failing check, in order:
// min length, max length, uppercase, lowercase, number, special character.
func ValidatePassword(pwd string, opts ...PasswordOptions) Result {
	var o PasswordOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MinLength == 0 {
		o.MinLength = 8
	}
	if o.MaxLength == 0 {
		o.MaxLength = 128
	}

	const field = "Password"
	if pwd == "" {
		return invalid(core.Message(core.RequiredTag, field))
	}
	if res, ok := checkLength(pwd, o.MinLength, o.MaxLength, field); !ok {
		return res
	}

	classes := []struct {
		skip bool
		tag  string
	}{
		{o.NoUpper, core.HasUpperTag},
		{o.NoLower, core.HasLowerTag},
		{o.NoNumber, core.HasDigitTag},
		{!o.RequireSpecial, core.HasSpecialTag},
	}
	for _, c := range classes {
		if !c.skip && !core.Check(pwd, c.tag) {
			return invalid(core.Message(c.tag, field))
		}
	}
	return valid()
}

// ValidateName rejects untrimmed input instead of trimming it.
func ValidateName(name string, opts ...LengthOptions) Result {
	o := lengthOpts(opts, 2, 100, "Name")
	if isBlank(name) {
		return invalid(core.Message(core.RequiredTag, o.FieldName))
	}

	trimmed := strings.TrimSpace(name)
	if res, ok := checkLength(trimmed, o.MinLength, o.MaxLength, o.FieldName); !ok {
		return res
	}
	if !core.Check(trimmed, core.PersonNameTag) {
		return invalid(core.Message(core.PersonNameTag, o.FieldName))
	}
	if name != trimmed {
		return invalid(core.Message(core.UntrimmedMsg, o.FieldName))
	}
	return validValue(trimmed)
}

func ValidateTitle(title string, opts ...LengthOptions) Result {
	return validateText(title, lengthOpts(opts, 3, 200, "Title"))
}

func ValidateDescription(desc string, opts ...LengthOptions) Result {
	return validateText(desc, lengthOpts(opts, 10, 2000, "Description"))
}

func ValidateModuleDescription(desc string) Result {
	return ValidateDescription(desc, LengthOptions{MinLength: 10, MaxLength: 1000, FieldName: "Module description"})
}

func validateText(s string, o LengthOptions) Result {
	if isBlank(s) {
		return invalid(core.Message(core.RequiredTag, o.FieldName))
	}
	trimmed := strings.TrimSpace(s)
	if res, ok := checkLength(trimmed, o.MinLength, o.MaxLength, o.FieldName); !ok {
		return res
	}
	return validValue(trimmed)
}

// ValidateSpecializationCode canonicalizes the code to its trimmed, upper-cased form.
func ValidateSpecializationCode(code string) Result {
	if isBlank(code) {
		return invalid(core.Message(core.RequiredTag, "Specialization code"))
	}
	canon := strings.ToUpper(strings.TrimSpace(code))
	if res, ok := checkLength(canon, 2, 20, "Code"); !ok {
		return res
	}
	if !core.Check(canon, core.SpecCodeTag) {
		return invalid(core.Message(core.SpecCodeTag))
	}
	return validValue(canon)
}

// ValidateCategory accepts an empty category.
func ValidateCategory(category string) Result {
	if isBlank(category) {
		return validValue("")
	}
	trimmed := strings.TrimSpace(category)
	if !core.Check(trimmed, "max=50") {
		return invalid(core.Message(core.MaxLenMsg, "Category", "50"))
	}
	return validValue(trimmed)
}

// ValidateNumber parses the leading integer of raw ("12abc" is 12) and checks its bounds.
// An empty optional value is valid with a nil Value.
func ValidateNumber(raw string, opts ...NumberOptions) Result {
	var o NumberOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Min == 0 && !o.MinSet {
		o.Min = 1
	}
	if o.Max == 0 {
		o.Max = 999
	}
	if o.FieldName == "" {
		o.FieldName = "Number"
	}

	if raw == "" {
		if o.Optional {
			return valid()
		}
		return invalid(core.Message(core.RequiredTag, o.FieldName))
	}

	n, ok := parseLeadingInt(raw)
	if !ok {
		return invalid(core.Message(core.NotNumberMsg, o.FieldName))
	}
	if n < o.Min {
		return invalid(core.Message(core.MinNumMsg, o.FieldName, strconv.Itoa(o.Min)))
	}
	if n > o.Max {
		return invalid(core.Message(core.MaxNumMsg, o.FieldName, strconv.Itoa(o.Max)))
	}
	return validValue(n)
}

// parseLeadingInt reads an optionally signed run of decimal digits after leading whitespace.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// ValidateSelect requires a selected value; fieldName is lower-cased in the message.
func ValidateSelect(value, fieldName string) Result {
	if fieldName == "" {
		fieldName = "Selection"
	}
	if value == "" {
		return invalid(core.Message(core.SelectMsg, strings.ToLower(fieldName)))
	}
	return valid()
}

func ValidateCheckboxGroup(items []string, fieldName string) Result {
	if fieldName == "" {
		fieldName = "item"
	}
	if len(items) == 0 {
		return invalid(core.Message(core.CheckboxMsg, fieldName))
	}
	return valid()
}

func ValidatePasswordMatch(pwd, confirm string) Result {
	if confirm == "" {
		return invalid(core.Message(core.ConfirmPwdMsg))
	}
	if pwd != confirm {
		return invalid(core.Message(core.PwdMismatchMsg))
	}
	return valid()
}

func ValidatePasswordChange(oldPwd, newPwd string) Result {
	if oldPwd == newPwd {
		return invalid(core.Message(core.PwdUnchangedMsg))
	}
	return valid()
}
