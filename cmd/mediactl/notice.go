package main

import (
	"fmt"

	"media-report/internal/model"

	"github.com/spf13/cobra"
)

func noticeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "notice", Short: "Manage the notice board"}

	var req model.NoticeRequest
	var author string
	post := &cobra.Command{
		Use:   "post",
		Short: "Publish a notice to every user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var by *model.User
			if author != "" {
				u, err := a.users().Get(cmd.Context(), author)
				if err != nil {
					return err
				}
				by = u
			}
			n, err := a.notices().Create(cmd.Context(), by, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted notice %d\n", n.ID)
			return nil
		},
	}
	post.Flags().StringVar(&req.Title, "title", "", "notice title")
	post.Flags().StringVar(&req.Content, "content", "", "notice body")
	post.Flags().StringVar(&author, "author", "", "username shown as the author")
	post.MarkFlagRequired("title")
	post.MarkFlagRequired("content")

	cmd.AddCommand(post)
	return cmd
}
