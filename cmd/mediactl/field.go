package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"media-report/internal/model"

	"github.com/spf13/cobra"
)

func fieldCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "field", Short: "Manage team fields"}

	var req model.FieldRequest
	var team, typ string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a dynamic field to a team's form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Team = model.Team(team)
			req.FieldType = model.FieldType(typ)
			f, err := a.fields().Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created field %s (id %d) for %s\n", f.Name, f.ID, f.Team.Label())
			return nil
		},
	}
	add.Flags().StringVar(&team, "team", "", "team code")
	add.Flags().StringVar(&req.Name, "name", "", "field name used in submissions")
	add.Flags().StringVar(&req.Label, "label", "", "label shown on the form and in exports")
	add.Flags().StringVar(&typ, "type", string(model.FieldText), "one of text, number, date, textarea, boolean")
	add.Flags().BoolVar(&req.Required, "required", false, "reject submissions without a value")
	add.MarkFlagRequired("team")
	add.MarkFlagRequired("name")
	add.MarkFlagRequired("label")

	var listTeam string
	list := &cobra.Command{
		Use:   "list",
		Short: "List static and dynamic fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			teams := model.Teams
			if listTeam != "" {
				teams = []model.Team{model.Team(listTeam)}
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TEAM\tKIND\tID\tKEY\tLABEL\tTYPE")
			for _, t := range teams {
				for _, f := range cat.StaticFields(t) {
					fmt.Fprintf(w, "%s\tstatic\t-\t%s\t%s\tnumber\n", t, f.Key, f.Label)
				}
				dyn, err := cat.DynamicFields(cmd.Context(), t)
				if err != nil {
					return err
				}
				for _, f := range dyn {
					fmt.Fprintf(w, "%s\tdynamic\t%d\t%s\t%s\t%s\n", t, f.ID, f.Name, f.Label, f.FieldType)
				}
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&listTeam, "team", "", "only this team")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a dynamic field and its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid field id %q", args[0])
			}
			if err := a.fields().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted field %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}
