package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	lmsapi "github.com/trezcool/masomo-portal/apps/api"
	"github.com/trezcool/masomo-portal/core/session"
)

func newUploadCommand(a *app) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:     "upload <file>",
		Short:   "Upload course material and print its URL",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.require(session.Authenticated),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "opening file")
			}
			defer f.Close()

			u, err := a.client.UploadFile(cmd.Context(), lmsapi.Upload{
				FileName:   filepath.Base(args[0]),
				Content:    f,
				FolderPath: folder,
			})
			if err != nil {
				return errors.Wrap(err, "uploading file")
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "destination folder")
	return cmd
}
