package main

import (
	"fmt"
	"strings"

	"github.com/brinevcs/magicrepos/internal/config"
	"github.com/spf13/cobra"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push [remote]",
		Short: "Push every local branch to a remote",
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

			if err := pushOverStream(stream, r, url); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed to %s/%s\n", url.Owner, url.Repo)
			return nil
		},
	}
}

// resolveRemote treats remoteArg as a literal URL when it contains "@"
// (returning any parse error), and otherwise as a configured remote name.
func resolveRemote(cfg *config.Config, remoteArg string) (*RemoteURL, error) {
	if strings.Contains(remoteArg, "@") {
		return ParseRemoteURL(remoteArg)
	}
	raw, ok := cfg.RemoteURL(remoteArg)
	if !ok {
		return nil, fmt.Errorf("remote %q is not configured", remoteArg)
	}
	return ParseRemoteURL(raw)
}
