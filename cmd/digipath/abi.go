package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/digipath/abi"
	"github.com/katalvlaran/digipath/core"
)

func newABICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "abi <stage> <level>",
		Short: "Show ABI gains and the best ABI per EXP for a stage and level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := core.ParseStage(args[0])
			if err != nil {
				return err
			}
			level, err := strconv.Atoi(args[1])
			if err != nil || level < 1 {
				return fmt.Errorf("level must be a positive integer, got %q", args[1])
			}

			return a.runABI(cmd.OutOrStdout(), stage, level)
		},
	}
}

func (a *app) runABI(out io.Writer, stage core.Stage, level int) error {
	ds, err := a.loadDataset()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s lv%d\n", stage, level)
	for _, dir := range []core.Direction{core.Forward, core.Backward} {
		gain, ok := abi.Gain(stage, dir, level)
		if !ok {
			fmt.Fprintf(out, "  %-12s n/a\n", dir)
			continue
		}
		fmt.Fprintf(out, "  %-12s +%d ABI (%.2f)\n", dir, abi.Units(stage, dir, level), gain)
	}

	adv := abi.Optimal(ds.Exp, stage, level)
	if adv.Gain == 0 {
		fmt.Fprintln(out, "advice: no EXP data for this level")
		return nil
	}
	fmt.Fprintf(out, "advice: %s at lv%d (+%.2f ABI for %d EXP)\n", adv.Direction, adv.TargetLevel, adv.Gain, adv.ExpRequired)

	return nil
}
