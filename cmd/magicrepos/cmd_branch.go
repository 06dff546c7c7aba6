package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	var delete string

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "List, create, or delete branches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := openRepo()
			if err != nil {
				return err
			}

			if delete != "" {
				return r.DeleteBranch(delete)
			}
			if len(args) == 1 {
				return r.CreateBranch(args[0])
			}

			names, err := r.ListBranches()
			if err != nil {
				return err
			}
			current, onBranch, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				marker := "  "
				if onBranch && name == current {
					marker = "* "
				}
				fmt.Fprintf(out, "%s%s\n", marker, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&delete, "delete", "d", "", "delete the named branch")
	return cmd
}
