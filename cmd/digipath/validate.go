package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/digipath/dataset"
)

var errDatasetFindings = errors.New("dataset has findings")

func newValidateCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset for consistency",
		Long: `Validate loads the dataset and reports evolutions to unknown digimon, moves
nobody can learn, digimon without evolutions and requirement keys that were
ignored. With --strict any finding is an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.OutOrStdout(), strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when there are findings")

	return cmd
}

func (a *app) runValidate(out io.Writer, strict bool) error {
	ds, err := a.loadDataset()
	if err != nil {
		return err
	}

	rep := dataset.Validate(ds)
	fmt.Fprintf(out, "%d digimon, %d evolutions, %d moves\n",
		ds.Graph.DigimonCount(), ds.Graph.EvolutionCount(), len(ds.Moves))
	if rep.Clean() {
		fmt.Fprintln(out, "dataset is clean")
		return nil
	}

	for _, ev := range rep.Dangling {
		fmt.Fprintf(out, "dangling evolution: %s → %s\n", ev.From, ev.To)
	}
	for _, id := range rep.UnlearnableMoves {
		fmt.Fprintf(out, "unlearnable move: %s (%s)\n", id, ds.MoveName(id))
	}
	for _, id := range rep.Isolated {
		fmt.Fprintf(out, "isolated digimon: %s\n", id)
	}
	for _, key := range rep.UnknownRequirementKeys {
		fmt.Fprintf(out, "ignored requirement: %s\n", key)
	}

	if strict {
		return errDatasetFindings
	}

	return nil
}
