package main

import (
	"fmt"
	"io"
	"path"

	git "github.com/brodalo/gogit"
	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/object"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newLsTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-tree [-r] tree",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
	}

	recursive := cmd.Flags().BoolP("r", "r", false, "Recurse into sub-trees.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsTreeCmd(cmd.OutOrStdout(), cfg, args[0], *recursive)
	}

	return cmd
}

func lsTreeCmd(out io.Writer, cfg *globalFlags, treeName string, recursive bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	treeID, err := r.ResolveAs(treeName, object.TypeTree)
	if err != nil {
		return fmt.Errorf("not a valid object name %s: %w", treeName, err)
	}

	return lsTreeWalk(out, r, treeID, recursive, "")
}

func lsTreeWalk(out io.Writer, r *git.Repository, treeID ginternals.Oid, recursive bool, prefix string) error {
	tree, err := r.Tree(treeID)
	if err != nil {
		return fmt.Errorf("could not load tree %s: %w", treeID.String(), err)
	}

	for _, e := range tree.Entries() {
		fullPath := path.Join(prefix, e.Path)
		if !recursive || !e.Mode.IsTree() {
			fmt.Fprintf(out, "%06o %s %s\t%s\n", e.Mode, e.Mode.ObjectType().String(), e.ID.String(), fullPath)
			continue
		}
		if err := lsTreeWalk(out, r, e.ID, recursive, fullPath); err != nil {
			return err
		}
	}
	return nil
}
