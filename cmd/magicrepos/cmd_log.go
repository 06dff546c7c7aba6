package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var oneline bool
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := openRepo()
			if err != nil {
				return err
			}
			head, ok, err := r.Refs.ResolveHead()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			commits, err := r.Log(head, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			current := head
			for _, c := range commits {
				if oneline {
					fmt.Fprintf(out, "%s %s\n", shortHash(current.String()), c.Message)
				} else {
					fmt.Fprintf(out, "commit %s\n", current)
					fmt.Fprintf(out, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
					fmt.Fprintf(out, "Date:   %s\n", time.Unix(c.Author.Seconds, 0).Format("2006-01-02 15:04:05 ")+c.Author.Offset)
					fmt.Fprintln(out)
					fmt.Fprintf(out, "    %s\n\n", c.Message)
				}
				if len(c.Parents) == 0 {
					break
				}
				current = c.Parents[0]
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "show one line per commit")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of commits to show")
	return cmd
}
