package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bloglist/internal/blogs/wire"
)

func newUserCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd(opts))
	return cmd
}

func newUserAddCmd(opts *options) *cobra.Command {
	var name, username, password string

	c := &cobra.Command{
		Use:   "add",
		Short: "Register a user with the configured storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := opts.load(ctx)
			if err != nil {
				return err
			}

			components, err := wire.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = components.Close(ctx) }()

			user, err := components.Auth.Register(ctx, name, username, password)
			if err != nil {
				return fmt.Errorf("register %q: %w", username, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created user %q (%s)\n", user.Username, user.ID)
			return err
		},
	}

	c.Flags().StringVar(&name, "name", "", "display name")
	c.Flags().StringVar(&username, "username", "", "username")
	c.Flags().StringVar(&password, "password", "", "password")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}
