package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/digipath/dataset"
	"github.com/katalvlaran/digipath/pathfind"
)

type findFlags struct {
	moves         []string
	excluded      []string
	initialABI    int
	informational bool
	maxExpansions int
	asJSON        bool
}

func newFindCmd(a *app) *cobra.Command {
	f := &findFlags{}
	cmd := &cobra.Command{
		Use:   "find <origin> <target>",
		Short: "Find the cheapest route between two digimon",
		Long: `Find searches for a route from origin to target, securing every --move on the
way and never passing through an --exclude'd digimon. Routes are ranked by
the total ABI threshold of the evolutions taken, then by length.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFind(cmd.OutOrStdout(), args[0], args[1], f)
		},
	}
	cmd.Flags().StringSliceVarP(&f.moves, "move", "m", nil, "move ID that must be learned (repeatable)")
	cmd.Flags().StringSliceVarP(&f.excluded, "exclude", "x", nil, "digimon ID to avoid (repeatable)")
	cmd.Flags().IntVar(&f.initialABI, "abi", 0, "ABI held at the origin")
	cmd.Flags().BoolVar(&f.informational, "informational", false, "treat ABI thresholds as cost only")
	cmd.Flags().IntVar(&f.maxExpansions, "max-expansions", -1, "frontier pop limit (default from config, 0 = unlimited)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (a *app) runFind(out io.Writer, origin, target string, f *findFlags) error {
	ds, err := a.loadDataset()
	if err != nil {
		return err
	}

	limit := f.maxExpansions
	if limit < 0 {
		limit = a.cfg.Relay.MaxExpansions
	}
	opts := []pathfind.Option{
		pathfind.WithMoves(f.moves...),
		pathfind.WithExcluded(f.excluded...),
		pathfind.WithInitialABI(f.initialABI),
		pathfind.WithMaxExpansions(limit),
	}
	if f.informational {
		opts = append(opts, pathfind.WithInformationalABI())
	}

	start := time.Now()
	res, err := pathfind.Search(ds.Graph, origin, target, opts...)
	if err != nil {
		return err
	}
	a.logger.Debug("search done",
		"outcome", res.Outcome,
		"popped", res.Stats.Popped,
		"elapsed", time.Since(start),
	)

	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printRoute(out, ds, origin, target, res)

	return nil
}

// printRoute renders a result as an aligned table.
func printRoute(out io.Writer, ds *dataset.Dataset, origin, target string, res *pathfind.Result) {
	if !res.Found() {
		fmt.Fprintf(out, "no route from %s to %s: %s\n", origin, target, res.Outcome)
		return
	}

	fmt.Fprintf(out, "%s → %s: cost %d, %d transitions", origin, target, res.Cost, len(res.Path)-1)
	if res.Stats.Truncated {
		fmt.Fprint(out, " (search truncated, may not be optimal)")
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tVIA\tABI\tLEARNS")
	for i, st := range res.Path {
		name := st.DigimonID
		if d, ok := ds.Graph.Digimon(st.DigimonID); ok && d.Name != "" {
			name = d.Name
		}
		via := "start"
		if st.Direction != nil {
			via = fmt.Sprintf("%s lv%d", st.Direction, st.LevelsGained)
			if st.Requirements != nil && st.Requirements.ABI > 0 {
				via += fmt.Sprintf(" (abi≥%d)", st.Requirements.ABI)
			}
		}
		learns := make([]string, len(st.LearnedMoves))
		for j, m := range st.LearnedMoves {
			learns[j] = fmt.Sprintf("%s (%s)", m, ds.MoveName(m))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", i+1, st.DigimonID, name, via, st.ABI, strings.Join(learns, ", "))
	}
	_ = tw.Flush()
}
