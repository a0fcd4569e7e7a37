package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// whitespace is a character-class body matching every Unicode space, not only ASCII ones.
const whitespace = `\s\v\p{Z}\x{FEFF}`

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags, regexes & texts
	RequiredTag  = "required"
	requiredText = "{0} is required"

	EmailTag   = "lms_email"
	emailText  = "Please enter a valid email address"
	emailRegex = regexp.MustCompile(`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)

	PersonNameTag   = "person_name"
	personNameText  = "{0} can only contain letters, spaces, hyphens, and apostrophes"
	personNameRegex = regexp.MustCompile(`^[a-zA-Z` + whitespace + `'-]+$`)

	SpecCodeTag   = "spec_code"
	specCodeText  = "Code can only contain uppercase letters, numbers, and hyphens"
	specCodeRegex = regexp.MustCompile(`^[A-Z0-9-]+$`)

	HasUpperTag   = "has_upper"
	hasUpperText  = "{0} must contain at least one uppercase letter"
	hasUpperRegex = regexp.MustCompile(`[A-Z]`)

	HasLowerTag   = "has_lower"
	hasLowerText  = "{0} must contain at least one lowercase letter"
	hasLowerRegex = regexp.MustCompile(`[a-z]`)

	HasDigitTag   = "has_digit"
	hasDigitText  = "{0} must contain at least one number"
	hasDigitRegex = regexp.MustCompile(`[0-9]`)

	HasSpecialTag   = "has_special"
	hasSpecialText  = "{0} must contain at least one special character"
	hasSpecialRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

	// plain messages (no validator tag behind them)
	MinLenMsg       = "min_len"
	MaxLenMsg       = "max_len"
	MinNumMsg       = "min_num"
	MaxNumMsg       = "max_num"
	NotNumberMsg    = "not_number"
	UntrimmedMsg    = "untrimmed"
	SelectMsg       = "select_one"
	CheckboxMsg     = "select_at_least_one"
	ConfirmPwdMsg   = "confirm_password"
	PwdMismatchMsg  = "password_mismatch"
	PwdUnchangedMsg = "password_unchanged"

	messages = map[string]string{
		MinLenMsg:       "{0} must be at least {1} characters",
		MaxLenMsg:       "{0} must be no more than {1} characters",
		MinNumMsg:       "{0} must be at least {1}",
		MaxNumMsg:       "{0} must be no more than {1}",
		NotNumberMsg:    "{0} must be a valid number",
		UntrimmedMsg:    "{0} cannot have leading or trailing spaces",
		SelectMsg:       "Please select a {0}",
		CheckboxMsg:     "Please select at least one {0}",
		ConfirmPwdMsg:   "Please confirm your password",
		PwdMismatchMsg:  "Passwords do not match",
		PwdUnchangedMsg: "New password must be different from current password",
	}
)

// Instantiate the validator for use.
func init() {
	Validate, Translator = NewValidator()
}

// NewValidator returns a validator with the english translations and the LMS custom validators registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	InitValidators(validate, translator)
	return validate, translator
}

// InitValidators registers the english error messages, the custom validators and their texts.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	customs := []struct {
		tag, text string
		regex     *regexp.Regexp
	}{
		{EmailTag, emailText, emailRegex},
		{PersonNameTag, personNameText, personNameRegex},
		{SpecCodeTag, specCodeText, specCodeRegex},
		{HasUpperTag, hasUpperText, hasUpperRegex},
		{HasLowerTag, hasLowerText, hasLowerRegex},
		{HasDigitTag, hasDigitText, hasDigitRegex},
		{HasSpecialTag, hasSpecialText, hasSpecialRegex},
	}
	for _, c := range customs {
		_ = validate.RegisterValidation(c.tag, regexValidation(c.regex))
		RegisterCustomTranslation(validate, translator, c.tag, c.text)
	}
	RegisterCustomTranslation(validate, translator, RequiredTag, requiredText, true)

	for key, text := range messages {
		_ = translator.Add(key, text, false)
	}
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Check runs the validation tag against a single value.
func Check(value interface{}, tag string) bool {
	return Validate.Var(value, tag) == nil
}

// Message renders the translated message registered under key.
func Message(key string, params ...string) string {
	s, err := Translator.T(key, params...)
	if err != nil {
		return key
	}
	return s
}

// Custom Global Validators

// regexValidation only allows strings matching rx.
func regexValidation(rx *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return rx.MatchString(fl.Field().String())
	}
}
