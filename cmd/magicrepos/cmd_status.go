package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working tree status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := openRepo()
			if err != nil {
				return err
			}
			st, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			branch := "HEAD"
			if name, ok, err := r.CurrentBranch(); err == nil && ok {
				branch = name
			}
			fmt.Fprintf(out, "on %s\n", branch)

			if len(st.Staged) > 0 {
				fmt.Fprintln(out, "\nstaged:")
				for _, c := range st.Staged {
					fmt.Fprintf(out, "  %s %s\n", changeGlyph(c.Kind), filepath.ToSlash(c.Path))
				}
			}
			if len(st.Unstaged) > 0 {
				fmt.Fprintln(out, "\nunstaged:")
				for _, c := range st.Unstaged {
					fmt.Fprintf(out, "  %s %s\n", changeGlyph(c.Kind), filepath.ToSlash(c.Path))
				}
			}
			if len(st.Untracked) > 0 {
				fmt.Fprintln(out, "\nuntracked:")
				for _, p := range st.Untracked {
					fmt.Fprintf(out, "  %s\n", filepath.ToSlash(p))
				}
			}
			return nil
		},
	}
}
