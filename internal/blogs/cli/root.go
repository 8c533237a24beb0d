// Package cli содержит команды административной утилиты blogsctl.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bloglist/internal/blogs/config"
)

// Сведения о сборке, задаются через -ldflags.
var (
	Version   = "dev"
	CommitSHA = "none"
)

type options struct {
	envPath string
}

func (o *options) load(ctx context.Context) (*config.Config, error) {
	return config.Load(ctx, o.envPath)
}

// NewRootCmd создает корневую команду blogsctl.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "blogsctl",
		Short:         "Administrative tool for the blogs service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.envPath, "env", config.DefaultEnvPath, "path to the .env file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newUserCmd(opts))
	root.AddCommand(newMigrateCmd(opts))

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "blogsctl %s (%s)\n", Version, CommitSHA)
			return err
		},
	}
}
