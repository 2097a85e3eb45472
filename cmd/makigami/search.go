package main

import (
	"context"
	"os"

	"github.com/folbricht/makigami"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	indexPath string
}

func newSearchCommand(ctx context.Context) *cobra.Command {
	var opt searchOptions

	cmd := &cobra.Command{
		Use:   "search <archive> <pattern>",
		Short: "Stream decompressed chunks that may contain a pattern.",
		Long: `Walks an archive's index and tests each chunk's filter against the pattern's
8-byte windows. Chunks the filter cannot rule out are range-read, decompressed,
and written to standard output verbatim - this is a candidate set, not an
exact match: the caller is responsible for any further line-level scan.`,
		Example: `  makigami search access.log.zst "GET /health"
  makigami search gs://bucket/access.log.zst "GET /health"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(ctx, opt, args[0], args[1])
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.StringVar(&opt.indexPath, "idx", "", "index locator (default derived from the archive locator)")
	return cmd
}

func runSearch(ctx context.Context, opt searchOptions, archiveLocator, pattern string) error {
	store, err := makigami.OpenStorage(archiveLocator, opt.indexPath)
	if err != nil {
		return err
	}
	return makigami.Search(store, []byte(pattern), os.Stdout)
}
