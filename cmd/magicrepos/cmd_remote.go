package main

import (
	"fmt"
	"sort"

	"github.com/brinevcs/magicrepos/internal/config"
	"github.com/spf13/cobra"
)

func newRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage repository remotes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := openRepo()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(cfg.Remote))
			for name := range cfg.Remote {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, cfg.Remote[name])
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add or update a named remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cfg, err := openRepo()
			if err != nil {
				return err
			}
			if _, err := ParseRemoteURL(args[1]); err != nil {
				return err
			}
			cfg.SetRemote(args[0], args[1])
			if err := config.Save(r.ControlDir, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added remote %q -> %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
