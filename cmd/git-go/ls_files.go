package main

import (
	"fmt"
	"io"
	"time"

	"github.com/brodalo/gogit/index"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newLsFilesCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-files",
		Short: "List all the staged files",
		Args:  cobra.NoArgs,
	}

	verbose := cmd.Flags().Bool("verbose", false, "Show everything.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsFilesCmd(cmd.OutOrStdout(), cfg, *verbose)
	}

	return cmd
}

func lsFilesCmd(out io.Writer, cfg *globalFlags, verbose bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	idx, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("could not read index: %w", err)
	}

	if verbose {
		fmt.Fprintf(out, "Index file format v%d, containing %d entries.\n", idx.Version, len(idx.Entries))
	}

	for _, e := range idx.Entries {
		fmt.Fprintln(out, e.Path)
		if !verbose {
			continue
		}
		fmt.Fprintf(out, "  %s with perms: %o\n", modeTypeLabel(e.ModeType), e.ModePerm)
		fmt.Fprintf(out, "  on blob: %s\n", e.OID.String())
		fmt.Fprintf(out, "  created: %s\n", time.Unix(int64(e.CTimeSec), int64(e.CTimeNano)).UTC())
		fmt.Fprintf(out, "  modified: %s\n", time.Unix(int64(e.MTimeSec), int64(e.MTimeNano)).UTC())
		fmt.Fprintf(out, "  device: %d, inode: %d\n", e.Dev, e.Ino)
		fmt.Fprintf(out, "  uid: %d gid: %d\n", e.UID, e.GID)
		fmt.Fprintf(out, "  flags: stage=%d assume_valid=%t\n", e.Stage, e.AssumeValid)
	}
	return nil
}

func modeTypeLabel(t index.ModeType) string {
	switch t {
	case index.RegularFile:
		return "regular file"
	case index.SymLink:
		return "symlink"
	case index.GitLink:
		return "git link"
	default:
		return "unknown"
	}
}
