package main

import (
	"fmt"
	"io"

	"github.com/brodalo/gogit/ginternals/object"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newRevParseCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rev-parse name",
		Short: "Resolve a name to an object id",
		Args:  cobra.ExactArgs(1),
	}

	typ := cmd.Flags().String("type", "", "Expected type of the object (blob, commit, tag, tree).")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return revParseCmd(cmd.OutOrStdout(), cfg, args[0], *typ)
	}

	return cmd
}

func revParseCmd(out io.Writer, cfg *globalFlags, name, typ string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	if typ == "" {
		oid, err := r.Resolve(name)
		if err != nil {
			return fmt.Errorf("not a valid object name %s: %w", name, err)
		}
		fmt.Fprintln(out, oid.String())
		return nil
	}

	want, err := object.NewTypeFromString(typ)
	if err != nil {
		return fmt.Errorf("%s: %w", typ, err)
	}

	oid, err := r.ResolveAs(name, want)
	if err != nil {
		return fmt.Errorf("not a valid object name %s: %w", name, err)
	}
	fmt.Fprintln(out, oid.String())
	return nil
}
