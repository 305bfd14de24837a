package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	git "github.com/brodalo/gogit"
	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newTagCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag [-a] [name [object]]",
		Short: "List tags, or create a new one",
		Args:  cobra.MaximumNArgs(2),
	}

	annotated := cmd.Flags().BoolP("annotate", "a", false, "Create an annotated tag object.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name, target := "", ginternals.Head
		if len(args) > 0 {
			name = args[0]
		}
		if len(args) > 1 {
			target = args[1]
		}
		return tagCmd(cmd.OutOrStdout(), cfg, name, target, *annotated)
	}

	return cmd
}

func tagCmd(out io.Writer, cfg *globalFlags, name, target string, annotated bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	if name == "" {
		return listTags(out, r)
	}

	_, err = r.CreateTag(name, target, git.TagOptions{Annotated: annotated})
	return err
}

func listTags(out io.Writer, r *git.Repository) error {
	var names []string
	err := r.WalkReferences(func(ref *ginternals.Reference) error {
		if strings.HasPrefix(ref.Name(), "refs/tags/") {
			names = append(names, ginternals.LocalTagShortName(ref.Name()))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not list tags: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
