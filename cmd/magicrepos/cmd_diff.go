package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/brinevcs/magicrepos/pkg/diffengine"
	"github.com/brinevcs/magicrepos/pkg/index"
	"github.com/brinevcs/magicrepos/pkg/object"
	"github.com/brinevcs/magicrepos/pkg/repo"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var staged bool

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show changes between the working tree, the index, and HEAD",
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
			if staged {
				for _, c := range st.Staged {
					if err := diffChange(out, r, c, true); err != nil {
						return err
					}
				}
				return nil
			}
			for _, c := range st.Unstaged {
				if err := diffChange(out, r, c, false); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "show staged changes (index vs HEAD)")
	return cmd
}

// diffChange renders one status change as a unified diff. For staged
// changes the old side is HEAD's tree and the new side is the index; for
// unstaged changes the old side is the index and the new side is the
// working tree.
func diffChange(out io.Writer, r *repo.Repo, c repo.Change, staged bool) error {
	oldData, oldOK, err := readOldSide(r, c.Path, staged)
	if err != nil {
		return err
	}
	newData, newOK, err := readNewSide(r, c.Path, staged)
	if err != nil {
		return err
	}
	if !oldOK && !newOK {
		return nil
	}

	result := diffengine.Diff(string(oldData), string(newData), c.Path, c.Path)
	printUnifiedDiff(out, result)
	return nil
}

func readOldSide(r *repo.Repo, path string, staged bool) ([]byte, bool, error) {
	if staged {
		return readHeadBlob(r, path)
	}
	return readIndexBlob(r, path)
}

func readNewSide(r *repo.Repo, path string, staged bool) ([]byte, bool, error) {
	if staged {
		return readIndexBlob(r, path)
	}
	return readWorkingFile(r, path)
}

func readHeadBlob(r *repo.Repo, path string) ([]byte, bool, error) {
	headHash, ok, err := r.Refs.ResolveHead()
	if err != nil || !ok {
		return nil, false, err
	}
	commit, err := r.Store.ReadCommit(headHash)
	if err != nil {
		return nil, false, err
	}
	flat, err := r.ReadTreeRecursive(commit.TreeHash)
	if err != nil {
		return nil, false, err
	}
	for _, f := range flat {
		if f.Path == path {
			return readBlobData(r, f.Hash)
		}
	}
	return nil, false, nil
}

func readIndexBlob(r *repo.Repo, path string) ([]byte, bool, error) {
	idx, err := index.Load(filepath.Join(r.ControlDir, "index"))
	if err != nil {
		return nil, false, err
	}
	e, ok := idx.Lookup(path)
	if !ok {
		return nil, false, nil
	}
	return readBlobData(r, e.Hash)
}

func readBlobData(r *repo.Repo, h object.Hash) ([]byte, bool, error) {
	blob, err := r.Store.ReadBlob(h)
	if err != nil {
		return nil, false, err
	}
	return blob.Data, true, nil
}

func readWorkingFile(r *repo.Repo, path string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func printUnifiedDiff(out io.Writer, result diffengine.Result) {
	if len(result.Hunks) == 0 {
		return
	}
	fmt.Fprintf(out, "--- %s\n", result.OldPath)
	fmt.Fprintf(out, "+++ %s\n", result.NewPath)
	for _, h := range result.Hunks {
		fmt.Fprintf(out, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, line := range h.Lines {
			switch line.Kind {
			case diffengine.Added:
				fmt.Fprintf(out, "+%s\n", line.Text)
			case diffengine.Removed:
				fmt.Fprintf(out, "-%s\n", line.Text)
			default:
				fmt.Fprintf(out, " %s\n", line.Text)
			}
		}
	}
}
