package main

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	lmsapi "github.com/trezcool/masomo-portal/apps/api"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/forms"
	"github.com/trezcool/masomo-portal/core/session"
)

func newAdminCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "admin",
		Short:             "Administration: users, specializations and courses",
		PersistentPreRunE: a.require(session.AdminOnly),
	}
	cmd.AddCommand(newAddUserCommand(a, session.RoleStudent))
	cmd.AddCommand(newAddUserCommand(a, session.RoleInstructor))
	cmd.AddCommand(newAdminUsersCommand(a))
	cmd.AddCommand(newSetPasswordCommand(a))
	cmd.AddCommand(newSpecializationsCommand(a))
	cmd.AddCommand(newCreateSpecializationCommand(a))
	cmd.AddCommand(newAdminCreateCourseCommand(a))
	cmd.AddCommand(newAdminDeleteCourseCommand(a))
	cmd.AddCommand(newSeedCommand(a))
	return cmd
}

// newAddUserCommand builds add-student or add-instructor.
func newAddUserCommand(a *app, role string) *cobra.Command {
	var name, email, specializationID string
	var courseIDs []string

	cmd := &cobra.Command{
		Use:   "add-" + role,
		Short: "Create a " + role + " account; the password is prompted next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pwd, err := readPassword(cmd, "Password")
			if err != nil {
				return err
			}
			values := url.Values{
				forms.FieldName:             {name},
				forms.FieldEmail:            {core.CleanString(email, true /* lower */)},
				forms.FieldPassword:         {pwd},
				forms.FieldSpecializationID: {specializationID},
			}

			var usr lmsapi.User
			if role == session.RoleInstructor {
				values[forms.FieldCourseIDs] = courseIDs
				p, err := submit(forms.InstructorForm(), values)
				if err != nil {
					return err
				}
				usr, err = a.client.AddInstructor(cmd.Context(), lmsapi.NewInstructor{
					Name:             p.String(forms.FieldName),
					Email:            p.String(forms.FieldEmail),
					Password:         p.String(forms.FieldPassword),
					SpecializationID: p.String(forms.FieldSpecializationID),
					CourseIDs:        p.Strings(forms.FieldCourseIDs),
				})
				if err != nil {
					return errors.Wrap(err, "adding instructor")
				}
			} else {
				p, err := submit(forms.StudentForm(), values)
				if err != nil {
					return err
				}
				usr, err = a.client.AddStudent(cmd.Context(), lmsapi.NewStudent{
					Name:             p.String(forms.FieldName),
					Email:            p.String(forms.FieldEmail),
					Password:         p.String(forms.FieldPassword),
					SpecializationID: p.String(forms.FieldSpecializationID),
				})
				if err != nil {
					return errors.Wrap(err, "adding student")
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s <%s> (%s)\n", usr.Role, usr.Name, usr.Email, usr.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&specializationID, "specialization", "", "specialization id")
	if role == session.RoleInstructor {
		cmd.Flags().StringSliceVar(&courseIDs, "course", nil, "course id to assign (repeatable)")
	}
	return cmd
}

func newAdminUsersCommand(a *app) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != "" && !session.ValidRole(role) {
				return errors.Errorf("invalid role %q: must be one of %v", role, session.AllRoles)
			}
			users, err := lmsapi.Fetch(cmd.Context(), a.client.AdminUsers(role))
			if err != nil {
				return errors.Wrap(err, "listing users")
			}
			sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })

			tw := newTable(cmd.OutOrStdout(), "ID\tNAME\tEMAIL\tROLE")
			for _, usr := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", usr.UserID, usr.Name, usr.Email, usr.Role)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "only users of this role")
	return cmd
}

func newSetPasswordCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <user-id>",
		Short: "Reset a user's password; the password is prompted next",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := readPassword(cmd, "New password")
			if err != nil {
				return err
			}
			if res := forms.ValidatePassword(pwd); !res.IsValid {
				return core.NewValidationError(core.ErrInvalidForm, core.FieldError{Field: forms.FieldPassword, Error: res.Error})
			}
			if err := a.client.ChangeUserPassword(cmd.Context(), args[0], pwd); err != nil {
				return errors.Wrap(err, "setting password")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")
			return nil
		},
	}
}

func newSpecializationsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "specializations",
		Short: "List specializations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs, err := lmsapi.Fetch(cmd.Context(), a.client.Specializations())
			if err != nil {
				return errors.Wrap(err, "listing specializations")
			}
			sort.Slice(specs, func(i, j int) bool { return specs[i].Code < specs[j].Code })

			tw := newTable(cmd.OutOrStdout(), "ID\tCODE\tNAME")
			for _, s := range specs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.SpecializationID, s.Code, s.Name)
			}
			return tw.Flush()
		},
	}
}

func newCreateSpecializationCommand(a *app) *cobra.Command {
	var name, code, description string

	cmd := &cobra.Command{
		Use:   "create-specialization",
		Short: "Create a specialization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := submit(forms.SpecializationForm(), url.Values{
				forms.FieldName:        {name},
				forms.FieldCode:        {code},
				forms.FieldDescription: {description},
			})
			if err != nil {
				return err
			}

			spec, err := a.client.CreateSpecialization(cmd.Context(), lmsapi.SpecializationInput{
				Name:        p.String(forms.FieldName),
				Code:        p.String(forms.FieldCode),
				Description: p.String(forms.FieldDescription),
			})
			if err != nil {
				return errors.Wrap(err, "creating specialization")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created specialization %s %s (%s)\n", spec.Code, spec.Name, spec.SpecializationID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "specialization name")
	cmd.Flags().StringVar(&code, "code", "", "short code, e.g. MSC-DA")
	cmd.Flags().StringVar(&description, "description", "", "description")
	return cmd
}

func newAdminCreateCourseCommand(a *app) *cobra.Command {
	var title, description, specializationID, instructorID string

	cmd := &cobra.Command{
		Use:   "create-course",
		Short: "Create a course inside a specialization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if res := forms.ValidateSelect(specializationID, "specialization"); !res.IsValid {
				return core.NewValidationError(core.ErrInvalidForm, core.FieldError{Field: forms.FieldSpecializationID, Error: res.Error})
			}
			p, err := submit(forms.AdminCourseForm(), url.Values{
				forms.FieldTitle:       {title},
				forms.FieldDescription: {description},
			})
			if err != nil {
				return err
			}

			crs, err := a.client.AdminCreateCourse(cmd.Context(), lmsapi.CourseInput{
				Title:            p.String(forms.FieldTitle),
				Description:      p.String(forms.FieldDescription),
				SpecializationID: specializationID,
				InstructorID:     instructorID,
			})
			if err != nil {
				return errors.Wrap(err, "creating course")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created course %s (%s)\n", crs.Title, crs.CourseID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "course title")
	cmd.Flags().StringVar(&description, "description", "", "course description")
	cmd.Flags().StringVar(&specializationID, "specialization", "", "specialization id")
	cmd.Flags().StringVar(&instructorID, "instructor", "", "instructor id (optional)")
	return cmd
}

func newAdminDeleteCourseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-course <course-id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.AdminDeleteCourse(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "deleting course")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted course %s\n", args[0])
			return nil
		},
	}
}

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo specializations, instructors and courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.SeedCourses(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "seeding courses")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\ncourses: %d, instructors: %d, modules: %d, specializations: %d\n",
				res.Message, res.CreatedCount, res.InstructorsCreatedCount, res.ModulesCreatedCount, res.SpecializationsCreated)
			for _, e := range res.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", e)
			}
			return nil
		},
	}
}
