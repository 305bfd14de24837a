package main

import (
	"errors"
	"fmt"
	"io"

	git "github.com/brodalo/gogit"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record changes to the repository",
		Args:  cobra.NoArgs,
	}

	message := cmd.Flags().StringP("message", "m", "", "Use the given message as the commit message.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commitCmd(cmd.OutOrStdout(), cfg, *message)
	}

	return cmd
}

func commitCmd(out io.Writer, cfg *globalFlags, message string) (err error) {
	if message == "" {
		return errors.New("a commit message is required: use -m")
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	idx, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("could not read index: %w", err)
	}

	c, err := r.CreateCommit(idx, message, git.CommitOptions{})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", c.ID().String())
	return nil
}
