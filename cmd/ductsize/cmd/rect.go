package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"Airduct/internal/calc/autodesign"
	"Airduct/internal/calc/duct"
	"Airduct/internal/calc/rect"
	"Airduct/internal/calc/worstcase"
)

func rectCmd(g *globals) *cobra.Command {
	var (
		in       rect.Input
		diameter float64
		policy   string
	)
	cmd := &cobra.Command{
		Use:   "rect",
		Short: "List rectangular ducts matching a target area",
		Long: `List rectangular ducts whose clear area is close to a target.

The target is either --area in square feet or the clear area of a round
duct given with --diameter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if diameter > 0 {
				in.TargetAreaSqFt = duct.RoundArea(diameter)
			}
			in.Policy = rect.Policy(policy)
			if in.Policy == "" {
				in.Policy = rect.Policy(g.cfg.Sizing.DefaultPolicy)
			}
			if err := duct.CheckInsulation(in.InsulationIn); err != nil {
				return err
			}
			cs, err := rect.Search(in)
			if err != nil {
				return err
			}
			res := rect.NewResponse(in.Policy, cs)
			return g.emit(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Target %s sq ft, %s policy (%s to %s)\n\n",
					num(in.TargetAreaSqFt, 3), res.Policy, num(res.Band.Min, 2), num(res.Band.Max, 2))
				printCandidates(w, res.Candidates)
			})
		},
	}
	cmd.Flags().Float64Var(&in.TargetAreaSqFt, "area", 0, "target clear area in sq ft")
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "take the target from a round duct of this clear diameter")
	cmd.Flags().Float64Var(&in.CFM, "cfm", 0, "airflow in CFM")
	cmd.Flags().Float64Var(&in.InsulationIn, "insulation", 0, "liner thickness in inches (0, 0.75, 1)")
	cmd.Flags().StringVar(&policy, "policy", "", "selection policy (narrow, spread)")
	cmd.MarkFlagsMutuallyExclusive("area", "diameter")
	_ = cmd.MarkFlagRequired("cfm")
	return cmd
}

func sizeCmd(g *globals) *cobra.Command {
	var (
		in                   autodesign.Input
		mode, preset, policy string
	)
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size a round duct and its rectangular alternatives in one step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Mode = autodesign.Mode(mode)
			in.Preset = worstcase.PresetID(preset)
			in.Policy = rect.Policy(policy)
			if in.Policy == "" {
				in.Policy = rect.Policy(g.cfg.Sizing.DefaultPolicy)
			}
			res, err := autodesign.Duct(in)
			if err != nil {
				return err
			}
			return g.emit(cmd, res, func(w io.Writer) {
				printRound(w, res.Round)
				if res.WorstCase != nil {
					fmt.Fprintf(w, "Governed by\t%s\n", res.WorstCase.GovernedBy)
				}
				for _, warn := range res.Warnings {
					fmt.Fprintf(w, "Warning\t%s\n", warn)
				}
				fmt.Fprintf(w, "\nRectangular alternatives (%s)\n", res.Policy)
				printCandidates(w, res.Alternatives)
			})
		},
	}
	cmd.Flags().Float64Var(&in.CFM, "cfm", 0, "airflow in CFM")
	cmd.Flags().StringVar(&mode, "mode", string(autodesign.ModeFriction), "sizing mode (friction, velocity, worst-case)")
	cmd.Flags().Float64Var(&in.FrictionRate, "friction", 0, "friction rate in in.wg/100ft")
	cmd.Flags().Float64Var(&in.VelocityFPM, "velocity", 0, "velocity limit in FPM")
	cmd.Flags().StringVar(&preset, "preset", "", "worst-case limits (low, medium, custom)")
	cmd.Flags().Float64Var(&in.InsulationIn, "insulation", 0, "liner thickness in inches (0, 0.75, 1)")
	cmd.Flags().StringVar(&policy, "policy", "", "selection policy (narrow, spread)")
	_ = cmd.MarkFlagRequired("cfm")
	return cmd
}
