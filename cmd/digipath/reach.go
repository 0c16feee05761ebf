package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/digipath/bfs"
)

type reachFlags struct {
	to       string
	depth    int
	forward  bool
	backward bool
	excluded []string
}

func newReachCmd(a *app) *cobra.Command {
	f := &reachFlags{}
	cmd := &cobra.Command{
		Use:   "reach <origin>",
		Short: "List digimon reachable from origin, ignoring ABI",
		Long: `Reach walks the graph breadth-first from origin and prints every digimon it
reaches with its distance in transitions. With --to it prints the fewest-
transition route instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReach(cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.to, "to", "", "print the route to this digimon")
	cmd.Flags().IntVar(&f.depth, "depth", 0, "maximum distance (0 = unlimited)")
	cmd.Flags().BoolVar(&f.forward, "forward", false, "follow digivolutions only")
	cmd.Flags().BoolVar(&f.backward, "backward", false, "follow de-digivolutions only")
	cmd.Flags().StringSliceVarP(&f.excluded, "exclude", "x", nil, "digimon ID to avoid (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("forward", "backward")

	return cmd
}

func (a *app) runReach(out io.Writer, origin string, f *reachFlags) error {
	ds, err := a.loadDataset()
	if err != nil {
		return err
	}

	opts := []bfs.Option{bfs.WithMaxDepth(f.depth), bfs.WithExcluded(f.excluded...)}
	switch {
	case f.forward:
		opts = append(opts, bfs.WithForwardOnly())
	case f.backward:
		opts = append(opts, bfs.WithBackwardOnly())
	}

	res, err := bfs.BFS(ds.Graph, origin, opts...)
	if err != nil {
		return err
	}

	if f.to != "" {
		path, err := res.PathTo(f.to)
		if err != nil {
			fmt.Fprintf(out, "%s is not reachable from %s\n", f.to, origin)
			return nil
		}
		fmt.Fprintln(out, strings.Join(path, " → "))
		return nil
	}

	for _, id := range res.Order {
		name := id
		if d, ok := ds.Graph.Digimon(id); ok {
			name = d.Name
		}
		fmt.Fprintf(out, "%d\t%s\t%s\n", res.Depth[id], id, name)
	}

	return nil
}
