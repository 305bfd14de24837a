package main

import (
	"fmt"
	"io"

	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newCheckIgnoreCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-ignore path...",
		Short: "Check paths against the ignore rules",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return checkIgnoreCmd(cmd.OutOrStdout(), cfg, args)
	}

	return cmd
}

func checkIgnoreCmd(out io.Writer, cfg *globalFlags, paths []string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	idx, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("could not read index: %w", err)
	}

	matcher, err := r.LoadIgnoreMatcher(cfg.env, idx)
	if err != nil {
		return fmt.Errorf("could not load ignore rules: %w", err)
	}

	for _, p := range paths {
		if matcher.Match(p) {
			fmt.Fprintln(out, p)
		}
	}
	return nil
}
