package main

import (
	"github.com/brinevcs/magicrepos/pkg/repo"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var soft, mixed, hard bool

	cmd := &cobra.Command{
		Use:   "reset <commit>",
		Short: "Move HEAD, and optionally the index and working tree, to a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := repo.ResetMixed
			switch {
			case soft:
				mode = repo.ResetSoft
			case hard:
				mode = repo.ResetHard
			case mixed:
				mode = repo.ResetMixed
			}

			r, _, err := openRepo()
			if err != nil {
				return err
			}
			return r.Reset(args[0], mode)
		},
	}

	cmd.Flags().BoolVar(&soft, "soft", false, "move HEAD only")
	cmd.Flags().BoolVar(&mixed, "mixed", false, "move HEAD and rebuild the index (default)")
	cmd.Flags().BoolVar(&hard, "hard", false, "move HEAD, rebuild the index, and overwrite the working tree")
	cmd.MarkFlagsMutuallyExclusive("soft", "mixed", "hard")

	return cmd
}
