package main

import (
	"fmt"
	"io"

	git "github.com/brodalo/gogit"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newStatusCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the working tree status",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return statusCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func statusCmd(out io.Writer, cfg *globalFlags) (err error) {
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

	st, err := r.Status(idx, matcher)
	if err != nil {
		return err
	}

	if st.Branch != "" {
		fmt.Fprintf(out, "On branch %s.\n", st.Branch)
	} else {
		fmt.Fprintf(out, "HEAD detached at %s\n", st.Detached.String())
	}

	fmt.Fprintln(out, "Changes to be committed:")
	for _, s := range st.Staged {
		switch s.Kind {
		case git.StatusModified:
			fmt.Fprintf(out, "  modified: %s\n", s.Path)
		case git.StatusAdded:
			fmt.Fprintf(out, "  added:    %s\n", s.Path)
		case git.StatusDeleted:
			fmt.Fprintf(out, "  deleted:  %s\n", s.Path)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Changes not staged for commit:")
	for _, s := range st.Worktree {
		switch s.Kind {
		case git.StatusModified:
			fmt.Fprintf(out, "  modified: %s\n", s.Path)
		case git.StatusDeleted:
			fmt.Fprintf(out, "  deleted:  %s\n", s.Path)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Untracked files:")
	for _, s := range st.Worktree {
		if s.Kind == git.StatusUntracked {
			fmt.Fprintf(out, "  %s\n", s.Path)
		}
	}

	return nil
}
