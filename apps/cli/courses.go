package main

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	lmsapi "github.com/trezcool/masomo-portal/apps/api"
	"github.com/trezcool/masomo-portal/core/forms"
	"github.com/trezcool/masomo-portal/core/session"
)

func newCoursesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "courses",
		Short:             "Browse and manage courses",
		PersistentPreRunE: a.require(session.Authenticated),
	}
	cmd.AddCommand(newCoursesListCommand(a))
	cmd.AddCommand(newCoursesShowCommand(a))
	cmd.AddCommand(newCoursesCreateCommand(a))
	return cmd
}

func newCoursesListCommand(a *app) *cobra.Command {
	var filter lmsapi.CourseFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the courses visible to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			courses, err := lmsapi.Fetch(cmd.Context(), a.client.Courses(filter))
			if err != nil {
				return errors.Wrap(err, "listing courses")
			}
			sort.Slice(courses, func(i, j int) bool { return courses[i].Title < courses[j].Title })

			tw := newTable(cmd.OutOrStdout(), "ID\tTITLE\tCATEGORY\tINSTRUCTOR")
			for _, crs := range courses {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", crs.CourseID, crs.Title, crs.Category, crs.InstructorID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.InstructorID, "instructor", "", "only courses of this instructor")
	cmd.Flags().StringVar(&filter.Category, "category", "", "only courses of this category")
	return cmd
}

func newCoursesShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <course-id>",
		Short: "Show a course and its modules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// both requests run concurrently
			courseQ := a.client.Course(args[0])
			modulesQ := a.client.Modules(args[0])
			defer modulesQ.Close()

			crs, err := lmsapi.Fetch(cmd.Context(), courseQ)
			if err != nil {
				return errors.Wrap(err, "getting course")
			}
			modules, err := modulesQ.Wait(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "listing modules")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n", crs.Title, crs.Description)
			if crs.Category != "" {
				fmt.Fprintf(out, "category: %s\n", crs.Category)
			}
			printModules(cmd, modules)
			return nil
		},
	}
}

func newCoursesCreateCommand(a *app) *cobra.Command {
	var title, description, category string

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a course you teach",
		Args:    cobra.NoArgs,
		PreRunE: a.require(session.InstructorOnly),
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := submit(forms.CourseForm(), url.Values{
				forms.FieldTitle:       {title},
				forms.FieldDescription: {description},
				forms.FieldCategory:    {category},
			})
			if err != nil {
				return err
			}

			crs, err := a.client.CreateCourse(cmd.Context(), lmsapi.CourseInput{
				Title:       p.String(forms.FieldTitle),
				Description: p.String(forms.FieldDescription),
				Category:    p.String(forms.FieldCategory),
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
	cmd.Flags().StringVar(&category, "category", "", "course category (optional)")
	return cmd
}

func newModulesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "modules",
		Short:             "Browse and manage course modules",
		PersistentPreRunE: a.require(session.Authenticated),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <course-id>",
		Short: "List the modules of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modules, err := lmsapi.Fetch(cmd.Context(), a.client.Modules(args[0]))
			if err != nil {
				return errors.Wrap(err, "listing modules")
			}
			printModules(cmd, modules)
			return nil
		},
	})

	var title, description, order string
	create := &cobra.Command{
		Use:     "create <course-id>",
		Short:   "Add a module to a course",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.require(session.InstructorOnly),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := submit(forms.ModuleForm(), url.Values{
				forms.FieldTitle:       {title},
				forms.FieldDescription: {description},
				forms.FieldOrder:       {order},
			})
			if err != nil {
				return err
			}

			mod, err := a.client.CreateModule(cmd.Context(), args[0], lmsapi.ModuleInput{
				Title:       p.String(forms.FieldTitle),
				Description: p.String(forms.FieldDescription),
				Order:       p.Int(forms.FieldOrder),
			})
			if err != nil {
				return errors.Wrap(err, "creating module")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created module %d. %s (%s)\n", mod.Order, mod.Title, mod.ModuleID)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "module title")
	create.Flags().StringVar(&description, "description", "", "module description")
	create.Flags().StringVar(&order, "order", "1", "position of the module in the course")
	cmd.AddCommand(create)

	return cmd
}

func printModules(cmd *cobra.Command, modules []lmsapi.Module) {
	sort.Slice(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })

	tw := newTable(cmd.OutOrStdout(), "#\tID\tTITLE")
	for _, mod := range modules {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", strconv.Itoa(mod.Order), mod.ModuleID, mod.Title)
	}
	_ = tw.Flush()
}
