package main

import (
	"context"

	"github.com/folbricht/makigami"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func newRootCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "makigami",
		Short: "Build and search probabilistically-indexed log archives.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				makigami.Log.SetOutput(cmd.ErrOrStderr())
				makigami.Log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.AddCommand(newBuildCommand(ctx), newSearchCommand(ctx))
	return cmd
}
