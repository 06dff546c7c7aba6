package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	var force bool
	var delete string

	cmd := &cobra.Command{
		Use:   "tag [name] [target]",
		Short: "Create, list, or delete lightweight tags",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := openRepo()
			if err != nil {
				return err
			}

			if delete != "" {
				return r.DeleteTag(delete)
			}
			if len(args) == 0 {
				names, err := r.ListTags()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			spec := "HEAD"
			if len(args) == 2 {
				spec = args[1]
			}
			target, ok, err := r.Refs.Resolve(spec)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("tag: %q does not resolve to a commit", spec)
			}
			return r.CreateTag(args[0], target, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing tag")
	cmd.Flags().StringVarP(&delete, "delete", "d", "", "delete the named tag")
	return cmd
}
