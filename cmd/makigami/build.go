package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/folbricht/makigami"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	archivePath string
	indexPath   string
	chunkSize   uint64
	workers     int
	level       int
}

func newBuildCommand(ctx context.Context) *cobra.Command {
	var opt buildOptions

	cmd := &cobra.Command{
		Use:   "build <input>",
		Short: "Partition a log file into a compressed, filter-indexed archive.",
		Long: `Splits input on line boundaries into fixed-target-size chunks, compresses each
chunk independently, and builds a per-chunk probabilistic membership filter.
Chunks appear in input order in both the archive and the index regardless of
how the build pipeline's workers complete.`,
		Example: `  makigami build access.log --zst access.zst --idx access.idx`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(ctx, opt, args[0])
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.StringVar(&opt.archivePath, "zst", "", "output archive path (default: input's stem + .zst, alongside input)")
	flags.StringVar(&opt.indexPath, "idx", "", "output index path (default: input's stem + .idx, alongside input)")
	flags.Uint64Var(&opt.chunkSize, "chunk-size", makigami.DefaultChunkSize, "target chunk size in bytes")
	flags.IntVar(&opt.workers, "workers", 0, "number of filter-building workers (default: number of CPUs)")
	flags.IntVar(&opt.level, "level", makigami.DefaultCompressionLevel, "zstd compression level")
	return cmd
}

func runBuild(ctx context.Context, opt buildOptions, input string) error {
	archivePath := opt.archivePath
	if archivePath == "" {
		archivePath = withStemExtension(input, ".zst")
	}
	indexPath := opt.indexPath
	if indexPath == "" {
		indexPath = withStemExtension(input, ".idx")
	}

	bopt := makigami.DefaultBuildOptions()
	if opt.chunkSize > 0 {
		bopt.ChunkSize = opt.chunkSize
	}
	if opt.workers > 0 {
		bopt.Workers = opt.workers
	}
	bopt.Level = opt.level

	return makigami.Build(ctx, input, archivePath, indexPath, bopt)
}

// withStemExtension derives a sibling of input named after input's file
// stem plus ext, e.g. "access.log" + ".zst" -> "access.zst" in the same
// directory as input - the convention the default_output_names_if_omitted
// helper in the original implementation uses.
func withStemExtension(input, ext string) string {
	return filepath.Join(filepath.Dir(input), fileStem(input)+ext)
}

// fileStem returns the base name of path with its final extension
// stripped, except for a dotfile with no extension of its own (e.g.
// ".bashrc"), which has no extension to strip and is returned whole.
func fileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}
