package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull [remote]",
		Short: "Fetch every branch a remote advertises into refs/remotes/{remote}",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remoteArg := "origin"
			if len(args) == 1 {
				remoteArg = args[0]
			}

			r, cfg, err := openRepo()
			if err != nil {
				return err
			}
			url, err := resolveRemote(cfg, remoteArg)
			if err != nil {
				return err
			}

			stream, err := dialSSH(url)
			if err != nil {
				return err
			}
			defer stream.Close()

			remoteName := remoteArg
			if strings.Contains(remoteArg, "@") {
				remoteName = "origin"
			}
			advertised, err := pullOverStream(stream, r, url, remoteName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fetched %d ref(s) from %s/%s\n", len(advertised), url.Owner, url.Repo)
			return nil
		},
	}
}
