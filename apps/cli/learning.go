package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	lmsapi "github.com/trezcool/masomo-portal/apps/api"
	"github.com/trezcool/masomo-portal/core/session"
)

func newEnrollCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "enroll <course-id>",
		Short:   "Enroll in a course",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.require(session.Authenticated),
		RunE: func(cmd *cobra.Command, args []string) error {
			enr, err := a.client.CreateEnrollment(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "enrolling")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enrolled in %s (%s)\n", enr.CourseID, enr.EnrollmentID)
			return nil
		},
	}
}

func newEnrollmentsCommand(a *app) *cobra.Command {
	var courseID string

	cmd := &cobra.Command{
		Use:     "enrollments",
		Short:   "List your enrollments, or those of a course you teach",
		Args:    cobra.NoArgs,
		PreRunE: a.require(session.Authenticated),
		RunE: func(cmd *cobra.Command, _ []string) error {
			enrollments, err := lmsapi.Fetch(cmd.Context(), a.client.Enrollments(courseID))
			if err != nil {
				return errors.Wrap(err, "listing enrollments")
			}
			tw := newTable(cmd.OutOrStdout(), "ID\tCOURSE\tSTUDENT\tSTATUS")
			for _, enr := range enrollments {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", enr.EnrollmentID, enr.CourseID, enr.StudentID, enr.Status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&courseID, "course", "", "only enrollments of this course")
	return cmd
}

func newProgressCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "progress",
		Short:             "Track your progress through courses",
		PersistentPreRunE: a.require(session.Authenticated),
	}

	var courseID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List your progress records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := lmsapi.Fetch(cmd.Context(), a.client.Progress(courseID))
			if err != nil {
				return errors.Wrap(err, "listing progress")
			}
			tw := newTable(cmd.OutOrStdout(), "COURSE\tMODULE\tSTATUS")
			for _, p := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.CourseID, p.ModuleID, p.Status)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&courseID, "course", "", "only progress of this course")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "complete <course-id> <module-id>",
		Short: "Mark a module as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.client.MarkProgressComplete(cmd.Context(), args[0], args[1]); err != nil {
				return errors.Wrap(err, "marking module complete")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Module %s completed.\n", args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats <course-id>",
		Short: "Show your completion of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := lmsapi.Fetch(cmd.Context(), a.client.ProgressStats(args[0]))
			if err != nil {
				return errors.Wrap(err, "getting progress stats")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d modules completed (%.0f%%)\n", stats.Completed, stats.Total, stats.Percentage)
			return nil
		},
	})

	return cmd
}
