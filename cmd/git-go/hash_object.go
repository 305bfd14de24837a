package main

import (
	"fmt"
	"io"
	"os"

	"github.com/brodalo/gogit/ginternals/object"
	"github.com/brodalo/gogit/internal/errutil"
	"github.com/spf13/cobra"
)

func newHashObjectCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-object FILE",
		Short: "Compute object ID and optionally creates a blob from a file",
		Args:  cobra.ExactArgs(1),
	}

	typ := cmd.Flags().StringP("type", "t", "blob", "Specify the type")
	write := cmd.Flags().BoolP("write", "w", false, "Actually write the object into the object database.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return hashObjectCmd(cmd.OutOrStdout(), cfg, args[0], *typ, *write)
	}

	return cmd
}

func hashObjectCmd(out io.Writer, cfg *globalFlags, filePath, typ string, write bool) (err error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	objType, err := object.NewTypeFromString(typ)
	if err != nil {
		return fmt.Errorf("unsupported object type %s: %w", typ, err)
	}

	o := object.New(objType, content)
	switch objType {
	case object.TypeCommit:
		if _, err := o.AsCommit(); err != nil {
			return fmt.Errorf("invalid commit file: %w", err)
		}
	case object.TypeTree:
		if _, err := o.AsTree(); err != nil {
			return fmt.Errorf("invalid tree file: %w", err)
		}
	case object.TypeTag:
		if _, err := o.AsTag(); err != nil {
			return fmt.Errorf("invalid tag file: %w", err)
		}
	}

	if !write {
		if _, err := o.Compress(); err != nil {
			return err
		}
		fmt.Fprintln(out, o.ID().String())
		return nil
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.WriteObject(o)
	if err != nil {
		return fmt.Errorf("could not write object: %w", err)
	}
	fmt.Fprintln(out, oid.String())
	return nil
}
