package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newShowRefCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-ref",
		Short: "List references",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return showRefCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func showRefCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	var names []string
	err = r.WalkReferences(func(ref *ginternals.Reference) error {
		names = append(names, ref.Name())
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not list references: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		ref, err := r.Reference(name)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", name, err)
		}
		fmt.Fprintf(out, "%s %s\n", ref.Target().String(), name)
	}
	return nil
}
