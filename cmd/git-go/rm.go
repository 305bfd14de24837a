package main

import (
	"fmt"
	"io"

	git "github.com/brodalo/gogit"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

type rmCmdFlags struct {
	cached      bool
	skipMissing bool
}

func newRmCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm path...",
		Short: "Remove files from the working tree and from the index",
		Args:  cobra.MinimumNArgs(1),
	}

	flags := rmCmdFlags{}
	cmd.Flags().BoolVar(&flags.cached, "cached", false, "Unstage the paths only, leaving the working tree untouched.")
	cmd.Flags().BoolVar(&flags.skipMissing, "skip-missing", false, "Ignore paths that aren't in the index instead of failing.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return rmCmd(cmd.OutOrStdout(), cfg, flags, args)
	}

	return cmd
}

func rmCmd(out io.Writer, cfg *globalFlags, flags rmCmdFlags, paths []string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	idx, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("could not read index: %w", err)
	}

	opts := git.RmOptions{
		DeleteFiles: !flags.cached,
		SkipMissing: flags.skipMissing,
	}
	if err := r.Remove(idx, paths, opts); err != nil {
		return err
	}

	return r.WriteIndex(idx)
}
