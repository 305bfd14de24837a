package main

import (
	"io"

	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout commit path",
		Short: "Materialize a commit or tree into an empty directory",
		Args:  cobra.ExactArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return checkoutCmd(cmd.OutOrStdout(), cfg, args[0], args[1])
	}

	return cmd
}

func checkoutCmd(out io.Writer, cfg *globalFlags, commitOrTree, path string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	return r.Checkout(commitOrTree, path)
}
