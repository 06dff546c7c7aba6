package main

import (
	"fmt"
	"io"
	"os"

	"github.com/brinevcs/magicrepos/pkg/server"
	"github.com/spf13/cobra"
)

// stdStream pairs os.Stdin and os.Stdout into the single io.ReadWriter the
// session dispatch loop consumes, matching the transport oracle's contract
// of two opaque byte streams to an already-authenticated process.
type stdStream struct{}

func (stdStream) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdStream) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func newServeCmd() *cobra.Command {
	var root string

	// The transport passes owner/repo; the session reads the target from
	// the negotiate message, so the argument is not used.
	cmd := &cobra.Command{
		Use:    "serve [owner/repo]",
		Short:  "Run one session against stdin/stdout (invoked by the remote transport)",
		Args:   cobra.MaximumNArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := os.Getenv("USER")
			if identity == "" {
				return fmt.Errorf("serve: cannot determine caller identity (USER unset)")
			}
			if root == "" {
				root = os.Getenv("MAGICREPOS_ROOT")
			}
			if root == "" {
				return fmt.Errorf("serve: repository root is required (--root or MAGICREPOS_ROOT)")
			}

			var stream io.ReadWriter = stdStream{}
			return server.Serve(stream, identity, server.NewRoot(root), &server.OwnerWriteOracle{})
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "filesystem root holding {owner}/{repo}.mr bare repositories")
	return cmd
}
