package main

import (
	"fmt"
	"io"
	"strings"

	git "github.com/brodalo/gogit"
	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [commit]",
		Short: "Display the history of a given commit as a Graphviz graph",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		start := ginternals.Head
		if len(args) > 0 {
			start = args[0]
		}
		return logCmd(cmd.OutOrStdout(), cfg, start)
	}

	return cmd
}

func logCmd(out io.Writer, cfg *globalFlags, start string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.Resolve(start)
	if err != nil {
		return fmt.Errorf("not a valid object name %s: %w", start, err)
	}

	fmt.Fprintln(out, "digraph gitgo-log{")
	fmt.Fprintln(out, "  node[shape=rect]")
	if err := logWalk(out, r, oid, map[ginternals.Oid]struct{}{}); err != nil {
		return err
	}
	fmt.Fprintln(out, "}")
	return nil
}

// logWalk emits a node for oid and an edge to each of its parents,
// then recurses into them, skipping oids already seen so a merged
// history is only visited once.
func logWalk(out io.Writer, r *git.Repository, oid ginternals.Oid, seen map[ginternals.Oid]struct{}) error {
	if _, ok := seen[oid]; ok {
		return nil
	}
	seen[oid] = struct{}{}

	c, err := r.Commit(oid)
	if err != nil {
		return fmt.Errorf("could not load commit %s: %w", oid.String(), err)
	}

	message := strings.ReplaceAll(c.Message(), `\`, `\\`)
	message = strings.ReplaceAll(message, `"`, `\"`)
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}

	sha := oid.String()
	fmt.Fprintf(out, "  c_%s [label=\"%s: %s\"]\n", sha, sha[:7], message)

	for _, parent := range c.ParentIDs() {
		fmt.Fprintf(out, "  c_%s -> c_%s;\n", sha, parent.String())
	}
	for _, parent := range c.ParentIDs() {
		if err := logWalk(out, r, parent, seen); err != nil {
			return err
		}
	}
	return nil
}
