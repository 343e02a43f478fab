package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/model"
)

func newMemberCommand(opts *options) *cobra.Command {
	memberCmd := &cobra.Command{
		Use:   "member",
		Short: "Manage group members",
	}
	memberCmd.AddCommand(newMemberAddCommand(opts), newMemberListCommand(opts))
	return memberCmd
}

func newMemberAddCommand(opts *options) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Add a member to the group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing member id %q: %w", args[0], err)
			}

			root, err := opts.root()
			if err != nil {
				return err
			}
			g, err := loadGroup(root)
			if err != nil {
				return err
			}

			if err := g.members.Add(model.Member{ID: userID, Name: args[1], Email: email}); err != nil {
				return err
			}
			if err := g.members.Save(root); err != nil {
				return err
			}
			if _, err := g.commit(cmd.Context(), opts.logger, "member: add "+args[1], false); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (#%d)\n", args[1], userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "member email")
	return cmd
}

func newMemberListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List group members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := opts.root()
			if err != nil {
				return err
			}
			g, err := loadGroup(root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range g.members.All() {
				if m.Email != "" {
					fmt.Fprintf(out, "%d\t%s\t%s\n", m.ID, m.Name, m.Email)
					continue
				}
				fmt.Fprintf(out, "%d\t%s\n", m.ID, m.Name)
			}
			return nil
		},
	}
}
