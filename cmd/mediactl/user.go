package main

import (
	"fmt"
	"text/tabwriter"

	"media-report/internal/model"

	"github.com/spf13/cobra"
)

func userCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage user accounts"}

	var req model.UserRequest
	var team, contact string
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username = args[0]
			req.Team = model.Team(team)
			if contact != "" {
				req.Contact = &contact
			}
			u, err := a.users().Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d, %s)\n", u.Username, u.ID, u.Team.Label())
			return nil
		},
	}
	add.Flags().StringVar(&req.Password, "password", "", "initial password")
	add.Flags().StringVar(&team, "team", "", "team code, e.g. video_editor")
	add.Flags().StringVar(&contact, "contact", "", "contact number")
	add.Flags().BoolVar(&req.IsStaff, "staff", false, "grant administrator access")
	add.MarkFlagRequired("password")
	add.MarkFlagRequired("team")

	setTeam := &cobra.Command{
		Use:   "team <username> <team>",
		Short: "Move a user to another team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.users().SetTeam(cmd.Context(), args[0], model.Team(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now in %s\n", u.Username, u.Team.Label())
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user and all of their reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.users().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.users().List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tTEAM\tSTAFF")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", u.ID, u.Username, u.Team, u.IsStaff)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(add, setTeam, del, list)
	return cmd
}
