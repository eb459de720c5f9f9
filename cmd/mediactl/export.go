package main

import (
	"fmt"
	"os"

	"media-report/internal/export"
	"media-report/internal/model"
	"media-report/internal/service"

	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	var start, end, team, user, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write merged reports to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := service.Filter{Team: model.Team(team), Username: user}
			var err error
			if f.Start, err = optionalDate(start); err != nil {
				return err
			}
			if f.End, err = optionalDate(end); err != nil {
				return err
			}
			sheet, err := a.reports().Export(cmd.Context(), f)
			if err != nil {
				return err
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteXLSX(file, sheet); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(sheet.Rows), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first effective date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last effective date, YYYY-MM-DD")
	cmd.Flags().StringVar(&team, "team", "", "team code")
	cmd.Flags().StringVar(&user, "user", "", "username")
	cmd.Flags().StringVarP(&out, "out", "o", export.FileName, "output file")
	return cmd
}

func optionalDate(s string) (*model.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
