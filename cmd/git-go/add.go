package main

import (
	"fmt"
	"io"

	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newAddCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add path...",
		Short: "Add file contents to the index",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return addCmd(cmd.OutOrStdout(), cfg, args)
	}

	return cmd
}

func addCmd(out io.Writer, cfg *globalFlags, paths []string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	idx, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("could not read index: %w", err)
	}

	if err := r.Add(idx, paths); err != nil {
		return err
	}

	return r.WriteIndex(idx)
}
