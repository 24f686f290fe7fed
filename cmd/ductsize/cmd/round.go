package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"Airduct/internal/calc/duct"
	"Airduct/internal/calc/round"
	"Airduct/internal/calc/worstcase"
)

func roundCmd(g *globals) *cobra.Command {
	var (
		cfm, friction, velocity, insulation float64
	)
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Size a round duct for a friction rate or a velocity limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := round.Input{CFM: cfm, InsulationIn: insulation}
			switch {
			case friction > 0 && velocity > 0:
				return fmt.Errorf("give either --friction or --velocity, not both")
			case friction > 0:
				in.Mode, in.Target = round.ModeFriction, friction
			case velocity > 0:
				in.Mode, in.Target = round.ModeVelocity, velocity
			default:
				return fmt.Errorf("one of --friction or --velocity is required")
			}
			if err := duct.CheckInsulation(insulation); err != nil {
				return err
			}

			res, err := round.Calculate(in)
			if err != nil {
				return err
			}
			return g.emit(cmd, res, func(w io.Writer) {
				printRound(w, res)
				fmt.Fprintf(w, "Notes\t%s\n", res.Notes)
			})
		},
	}
	cmd.Flags().Float64Var(&cfm, "cfm", 0, "airflow in CFM")
	cmd.Flags().Float64Var(&friction, "friction", 0, "friction rate in in.wg/100ft")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "velocity limit in FPM")
	cmd.Flags().Float64Var(&insulation, "insulation", 0, "liner thickness in inches (0, 0.75, 1)")
	_ = cmd.MarkFlagRequired("cfm")
	return cmd
}

func printRound(w io.Writer, r round.Result) {
	size := num(r.NominalSizeIn, 0) + " in"
	if r.NonStandard {
		size += " (non-standard)"
	}
	fmt.Fprintf(w, "Nominal size\t%s\n", size)
	fmt.Fprintf(w, "Clear diameter\t%s in\n", num(r.InteriorDiameterIn, 2))
	fmt.Fprintf(w, "Area\t%s sq ft\n", num(r.AreaSqFt, 3))
	fmt.Fprintf(w, "Velocity\t%s FPM\n", num(r.VelocityFPM, 0))
	fmt.Fprintf(w, "Friction\t%s in.wg/100ft\n", num(r.FrictionRate, 3))
}

func worstcaseCmd(g *globals) *cobra.Command {
	var (
		in     worstcase.Input
		preset string
	)
	cmd := &cobra.Command{
		Use:   "worstcase",
		Short: "Size for both a friction and a velocity limit and keep the larger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Preset = worstcase.PresetID(preset)
			if err := duct.CheckInsulation(in.InsulationIn); err != nil {
				return err
			}
			res, err := worstcase.Calculate(in)
			if err != nil {
				return err
			}
			return g.emit(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Limits\t%s in.wg/100ft, %s FPM\n", num(res.FrictionRate, 3), num(res.VelocityFPM, 0))
				fmt.Fprintf(w, "By friction\t%s in\n", num(res.ByFriction.NominalSizeIn, 0))
				fmt.Fprintf(w, "By velocity\t%s in\n", num(res.ByVelocity.NominalSizeIn, 0))
				fmt.Fprintf(w, "Governed by\t%s\n", res.GovernedBy)
				printRound(w, res.Recommended)
				fmt.Fprintf(w, "Notes\t%s\n", res.Notes)
			})
		},
	}
	cmd.Flags().Float64Var(&in.CFM, "cfm", 0, "airflow in CFM")
	cmd.Flags().StringVar(&preset, "preset", "", "named limits (low, medium, custom)")
	cmd.Flags().Float64Var(&in.FrictionRate, "friction", 0, "friction rate for custom limits")
	cmd.Flags().Float64Var(&in.VelocityFPM, "velocity", 0, "velocity limit for custom limits")
	cmd.Flags().Float64Var(&in.InsulationIn, "insulation", 0, "liner thickness in inches (0, 0.75, 1)")
	_ = cmd.MarkFlagRequired("cfm")
	return cmd
}
