package forms

import "net/url"

// form field names, as sent to the API
const (
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldOldPassword      = "oldPassword"
	FieldNewPassword      = "newPassword"
	FieldConfirmPassword  = "confirmPassword"
	FieldName             = "name"
	FieldSpecializationID = "specializationId"
	FieldCourseIDs        = "courseIds"
	FieldCode             = "code"
	FieldTitle            = "title"
	FieldDescription      = "description"
	FieldCategory         = "category"
	FieldOrder            = "order"
)

func single(name string, rule func(string) Result) Field {
	return Field{Name: name, Rule: func(v url.Values) Result { return rule(v.Get(name)) }}
}

func required(name, msg string) Field {
	return Field{Name: name, Rule: func(v url.Values) Result {
		if v.Get(name) == "" {
			return invalid(msg)
		}
		return valid()
	}}
}

func LoginForm() *Form {
	return NewForm(
		single(FieldEmail, ValidateEmail),
		required(FieldPassword, "Password is required"),
	)
}

func ChangePasswordForm() *Form {
	old := required(FieldOldPassword, "Current password is required")
	old.Dependents = []string{FieldNewPassword}

	return NewForm(
		old,
		Field{
			Name: FieldNewPassword,
			Rule: func(v url.Values) Result {
				if res := ValidatePassword(v.Get(FieldNewPassword)); !res.IsValid {
					return res
				}
				return ValidatePasswordChange(v.Get(FieldOldPassword), v.Get(FieldNewPassword))
			},
			Dependents: []string{FieldConfirmPassword},
		},
		Field{
			Name: FieldConfirmPassword,
			Rule: func(v url.Values) Result {
				return ValidatePasswordMatch(v.Get(FieldNewPassword), v.Get(FieldConfirmPassword))
			},
		},
	)
}

func userFields() []Field {
	return []Field{
		single(FieldName, func(s string) Result { return ValidateName(s, LengthOptions{FieldName: "Name"}) }),
		single(FieldEmail, ValidateEmail),
		single(FieldPassword, func(s string) Result { return ValidatePassword(s) }),
		single(FieldSpecializationID, func(s string) Result { return ValidateSelect(s, "specialization") }),
	}
}

func StudentForm() *Form {
	return NewForm(userFields()...)
}

func InstructorForm() *Form {
	courses := Field{
		Name:  FieldCourseIDs,
		Multi: true,
		Rule:  func(v url.Values) Result { return ValidateCheckboxGroup(v[FieldCourseIDs], "course") },
	}
	return NewForm(append(userFields(), courses)...)
}

func SpecializationForm() *Form {
	return NewForm(
		single(FieldName, func(s string) Result {
			return ValidateTitle(s, LengthOptions{MinLength: 3, MaxLength: 100, FieldName: "Specialization name"})
		}),
		single(FieldCode, ValidateSpecializationCode),
		single(FieldDescription, func(s string) Result {
			return ValidateDescription(s, LengthOptions{MinLength: 10, MaxLength: 500, FieldName: "Description"})
		}),
	)
}

func courseFields() []Field {
	return []Field{
		single(FieldTitle, func(s string) Result { return ValidateTitle(s, LengthOptions{FieldName: "Course title"}) }),
		single(FieldDescription, func(s string) Result { return ValidateDescription(s, LengthOptions{FieldName: "Description"}) }),
	}
}

func CourseForm() *Form {
	return NewForm(append(courseFields(), single(FieldCategory, ValidateCategory))...)
}

// AdminCourseForm creates a course inside a specialization.
func AdminCourseForm() *Form {
	return NewForm(courseFields()...)
}

func ModuleForm() *Form {
	return NewForm(
		single(FieldTitle, func(s string) Result { return ValidateTitle(s, LengthOptions{FieldName: "Module title"}) }),
		single(FieldDescription, ValidateModuleDescription),
		single(FieldOrder, func(s string) Result {
			return ValidateNumber(s, NumberOptions{Min: 1, Max: 999, FieldName: "Order"})
		}),
	)
}
