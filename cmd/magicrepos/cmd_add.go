package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "add <files...>",
		Short: "Stage files for the next commit",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := openRepo()
			if err != nil {
				return err
			}
			if all {
				return r.StageAll()
			}
			if len(args) == 0 {
				return fmt.Errorf("add: specify at least one file, or pass -A")
			}
			for _, path := range args {
				if err := r.Stage(path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "A", false, "stage every file in the working tree")
	return cmd
}
